package keys

import "errors"

// Sentinel errors for the key-parsing error taxonomy. Wrap with %w and
// check with errors.Is; the UnexpectedData/UnexpectedNumber/PrivPubMismatch
// variants below carry the offending values alongside one of these.
var (
	ErrEmptyKey       = errors.New("keys: empty public-key line")
	ErrNoKey          = errors.New("keys: public-key line has a keytype but no blob")
	ErrWrongKeyType   = errors.New("keys: keytype does not contain ssh-ed25519")
	ErrWrongKeyLength = errors.New("keys: wrong key length")

	ErrTorsionKey = errors.New("keys: public key has a torsion component")
	ErrInvalidKey = errors.New("keys: bytes do not decode to a curve point")

	ErrNoBeginStr       = errors.New("keys: armor has no BEGIN line")
	ErrNoEndStr         = errors.New("keys: armor has no END line")
	ErrEndBeforeBegin   = errors.New("keys: armor END line precedes BEGIN line")
	ErrEarlyEOF         = errors.New("keys: container ended before expected")
	ErrUnexpectedData   = errors.New("keys: container field did not match the expected literal")
	ErrUnexpectedNumber = errors.New("keys: container field had an unexpected length")
	ErrPrivPubMismatch  = errors.New("keys: derived public key does not match the stored one")
)

// UnexpectedDataError records a literal-match failure while parsing the
// OpenSSH container, along with what was expected and what was found.
type UnexpectedDataError struct {
	Expected []byte
	Got      []byte
}

func (e *UnexpectedDataError) Error() string {
	return ErrUnexpectedData.Error()
}

func (e *UnexpectedDataError) Unwrap() error { return ErrUnexpectedData }

// UnexpectedNumberError records a length-field mismatch while parsing the
// OpenSSH container.
type UnexpectedNumberError struct {
	Expected int
	Got      int
}

func (e *UnexpectedNumberError) Error() string {
	return ErrUnexpectedNumber.Error()
}

func (e *UnexpectedNumberError) Unwrap() error { return ErrUnexpectedNumber }

// PrivPubMismatchError records the two disagreeing public keys found while
// parsing a private-key container.
type PrivPubMismatchError struct {
	EncodedPublic *PublicKey
	FromPrivate   *PublicKey
}

func (e *PrivPubMismatchError) Error() string {
	return ErrPrivPubMismatch.Error()
}

func (e *PrivPubMismatchError) Unwrap() error { return ErrPrivPubMismatch }
