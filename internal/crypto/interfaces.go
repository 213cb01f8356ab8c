// Package crypto seals values kept in the operator profile database.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer encrypts and authenticates short values at rest.
//
// It knows nothing about tokens or the database: it turns plaintext into an
// opaque printable string and back. A value sealed under one profile secret
// cannot be opened under another.
type Sealer interface {
	// Seal encrypts plaintext and returns base64(nonce || ciphertext).
	Seal(plaintext []byte) (string, error)

	// Open reverses Seal. It returns [ErrCorrupted] when the blob is
	// malformed and [ErrWrongSecret] when authentication fails.
	Open(sealed string) ([]byte, error)
}
