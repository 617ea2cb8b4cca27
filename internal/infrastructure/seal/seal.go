// Package seal encrypts in-flight sign-in credentials for the attempt
// store. Unlike password storage, sealing must be reversible: the verify
// step replays the password to the upstream API.
package seal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrInvalidSeal = errors.New("sealed credentials are malformed or tampered with")

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Sealer encrypts credentials with XChaCha20-Poly1305. The key is derived
// from the configured secret, so operators supply a passphrase rather than
// raw key bytes.
type Sealer struct {
	key [32]byte
}

func New(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("seal: secret must not be empty")
	}
	return &Sealer{key: sha256.Sum256([]byte(secret))}, nil
}

// Seal returns nonce||ciphertext for the credential pair.
func (s *Sealer) Seal(email, password string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("seal nonce: %w", err)
	}

	payload, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	return append(nonce, aead.Seal(nil, nonce, payload, nil)...), nil
}

// Open decrypts a sealed credential pair produced by Seal.
func (s *Sealer) Open(sealed []byte) (string, string, error) {
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return "", "", ErrInvalidSeal
	}

	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return "", "", fmt.Errorf("seal: %w", err)
	}

	nonce, ciphertext := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", ErrInvalidSeal
	}

	var creds credentials
	if err := json.Unmarshal(payload, &creds); err != nil {
		return "", "", ErrInvalidSeal
	}
	return creds.Email, creds.Password, nil
}
