// Package crypto provides authenticated encryption for bank tokens at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// keySalt is fixed on purpose: the same secret must always derive the
	// same key, otherwise previously stored tokens become unreadable.
	keySalt       = "multibank_salt_v1"
	keyIterations = 100000
	keyLength     = 32 // AES-256
)

var (
	ErrEmptySecret      = errors.New("encryption secret must not be empty")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Encryptor encrypts and decrypts stored bank credentials.
// The AES-256-GCM key is derived once from the configured secret
// via PBKDF2-SHA256 with a fixed salt and iteration count.
type Encryptor struct {
	aead cipher.AEAD
}

// NewEncryptor derives the encryption key from secret and prepares the cipher.
func NewEncryptor(secret string) (*Encryptor, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := pbkdf2.Key([]byte(secret), []byte(keySalt), keyIterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encryptor{aead: aead}, nil
}

// Encrypt encrypts plaintext and returns a base64-encoded ciphertext.
// The random nonce is prepended, so identical plaintexts never produce
// identical ciphertexts.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any corruption of the ciphertext, or a secret
// that no longer matches the one used to encrypt, yields ErrDecryptionFailed.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	nonceSize := e.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrDecryptionFailed
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
