package envelope_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/envelope"
)

func newKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, envelope.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()
	key := newKey(t)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty string", ""},
		{"simple secret", "s3cret"},
		{"api key", "sk_live_1234567890abcdef"},
		{"unicode", "пароль 世界 🔐"},
		{"long text", "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			blob, err := envelope.EncryptString(tt.plaintext, key)
			require.NoError(t, err)
			require.NotEqual(t, tt.plaintext, blob)

			decrypted, err := envelope.DecryptString(blob, key)
			require.NoError(t, err)
			require.Equal(t, tt.plaintext, decrypted)
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	t.Parallel()

	blob, err := envelope.Encrypt([]byte("vault entry"), newKey(t))
	require.NoError(t, err)

	plaintext, err := envelope.Decrypt(blob, newKey(t))
	require.ErrorIs(t, err, envelope.ErrDecryptionFailed)
	require.Nil(t, plaintext, "wrong key must never yield plaintext")
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	t.Parallel()
	key := newKey(t)

	blob, err := envelope.Encrypt([]byte("vault entry"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0x01
	_, err = envelope.Decrypt(blob, key)
	require.ErrorIs(t, err, envelope.ErrDecryptionFailed)
}

func TestDecrypt_MalformedBlob(t *testing.T) {
	t.Parallel()
	key := newKey(t)

	tests := []struct {
		name string
		blob []byte
	}{
		{"nil blob", nil},
		{"truncated blob", []byte{1, 2, 3}},
		{"unknown version", append([]byte{0xFF}, bytes.Repeat([]byte{0}, 64)...)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := envelope.Decrypt(tt.blob, key)
			require.ErrorIs(t, err, envelope.ErrInvalidCiphertext)
		})
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	t.Parallel()
	key := newKey(t)

	blob1, err := envelope.Encrypt([]byte("same plaintext"), key)
	require.NoError(t, err)
	blob2, err := envelope.Encrypt([]byte("same plaintext"), key)
	require.NoError(t, err)

	require.NotEqual(t, blob1, blob2, "each call must use a fresh nonce")
}

func TestEncrypt_InvalidKeyLength(t *testing.T) {
	t.Parallel()

	_, err := envelope.Encrypt([]byte("x"), []byte("short"))
	require.ErrorIs(t, err, envelope.ErrInvalidKeyLength)

	_, err = envelope.Decrypt([]byte("irrelevant"), []byte("short"))
	require.ErrorIs(t, err, envelope.ErrInvalidKeyLength)
}

func TestDecryptString_BadBase64(t *testing.T) {
	t.Parallel()

	_, err := envelope.DecryptString("not-base64!!!", newKey(t))
	require.ErrorIs(t, err, envelope.ErrInvalidCiphertext)
}
