// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// SaltSize is the length of the per-profile key derivation salt.
const SaltSize = 16

var (
	// ErrEmptySecret is returned when a sealer is built without a secret.
	ErrEmptySecret = errors.New("profile secret is empty")
	// ErrCorrupted is returned for blobs that are not valid sealed values.
	ErrCorrupted = errors.New("sealed value is corrupted")
	// ErrWrongSecret is returned when a blob fails authentication, usually
	// because the profile secret changed.
	ErrWrongSecret = errors.New("sealed value does not match profile secret")
)

// KDFParams are the Argon2id parameters used to derive the sealing key.
type KDFParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultKDFParams follow the OWASP Argon2id recommendation
// (1 pass, 64 MiB, 4 lanes).
var DefaultKDFParams = KDFParams{Time: 1, Memory: 64 * 1024, Threads: 4}

type xchachaSealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 256-bit key from secret and salt with Argon2id and
// returns an XChaCha20-Poly1305 [Sealer].
func NewSealer(secret string, salt []byte, params KDFParams) (Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	key := argon2.IDKey([]byte(secret), salt, params.Time, params.Memory, params.Threads, chacha20poly1305.KeySize)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	return &xchachaSealer{aead: aead}, nil
}

// GenerateSalt returns SaltSize random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// Seal implements [Sealer].
func (s *xchachaSealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Sealer].
func (s *xchachaSealer) Open(sealed string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize+s.aead.Overhead() {
		return nil, ErrCorrupted
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongSecret
	}

	return plaintext, nil
}
