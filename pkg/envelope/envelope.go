package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

const (
	// KeySize is the required key length for AES-256-GCM.
	KeySize = 32

	// blobVersion tags the ciphertext layout so key-derivation parameter
	// upgrades remain decryptable. Layout v1: version byte, 12-byte nonce,
	// ciphertext with appended GCM tag.
	blobVersion byte = 1
)

// Encrypt seals plaintext under the given 32-byte key using AES-256-GCM.
// A fresh random nonce is generated per call and stored inside the returned
// blob, so the blob is self-describing.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	aesGCM, err := newGCM(key, ErrEncryptionFailed)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	blob := make([]byte, 0, 1+len(nonce)+len(plaintext)+aesGCM.Overhead())
	blob = append(blob, blobVersion)
	blob = append(blob, nonce...)
	blob = aesGCM.Seal(blob, nonce, plaintext, nil)

	return blob, nil
}

// Decrypt opens a blob produced by Encrypt. It returns ErrDecryptionFailed
// when the authentication tag does not verify, which is the normal outcome
// when the caller derived the key from a wrong master password. Structural
// problems with the blob itself are reported as ErrInvalidCiphertext.
func Decrypt(blob, key []byte) ([]byte, error) {
	aesGCM, err := newGCM(key, ErrDecryptionFailed)
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()
	if len(blob) < 1+nonceSize+aesGCM.Overhead() {
		return nil, ErrInvalidCiphertext
	}
	if blob[0] != blobVersion {
		return nil, ErrInvalidCiphertext
	}

	nonce, ciphertext := blob[1:1+nonceSize], blob[1+nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	return plaintext, nil
}

// EncryptString seals a string and returns the blob base64-encoded for
// storage in text columns.
func EncryptString(plaintext string, key []byte) (string, error) {
	blob, err := Encrypt([]byte(plaintext), key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptString reverses EncryptString.
func DecryptString(encoded string, key []byte) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}
	plaintext, err := Decrypt(blob, key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func newGCM(key []byte, sentinel error) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errors.Join(sentinel, ErrInvalidKeyLength)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(sentinel, err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(sentinel, err)
	}
	return aesGCM, nil
}
