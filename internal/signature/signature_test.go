// internal/signature/signature_test.go
package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignFormat(t *testing.T) {
	header := Sign([]byte("secret"), []byte(`{"action":"closed"}`))

	assert.True(t, strings.HasPrefix(header, "sha256="))
	assert.Len(t, header, len("sha256=")+64)
}

func TestVerify_RoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	body := []byte(`{"action":"closed","pull_request":{"merged":true}}`)

	err := Verify(secret, body, Sign(secret, body))
	assert.NoError(t, err)
}

func TestVerify_RejectsMutations(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	body := []byte(`{"action":"closed"}`)
	header := Sign(secret, body)

	t.Run("every single-byte body mutation fails", func(t *testing.T) {
		for i := range body {
			mutated := append([]byte(nil), body...)
			mutated[i] ^= 0x01
			err := Verify(secret, mutated, header)
			require.ErrorIs(t, err, ErrSignatureMismatch, "mutation at byte %d verified", i)
		}
	})

	t.Run("every single-byte secret mutation fails", func(t *testing.T) {
		for i := range secret {
			mutated := append([]byte(nil), secret...)
			mutated[i] ^= 0x01
			err := Verify(mutated, body, header)
			require.ErrorIs(t, err, ErrSignatureMismatch, "mutation at byte %d verified", i)
		}
	})
}

func TestVerify_HeaderValidation(t *testing.T) {
	secret := []byte("secret")
	body := []byte("payload")

	t.Run("missing header", func(t *testing.T) {
		assert.ErrorIs(t, Verify(secret, body, ""), ErrMissingSignature)
	})

	t.Run("wrong prefix", func(t *testing.T) {
		assert.ErrorIs(t, Verify(secret, body, "sha1=abcdef"), ErrMalformedSignature)
	})

	t.Run("non-hex digest", func(t *testing.T) {
		assert.ErrorIs(t, Verify(secret, body, "sha256=not-hex!"), ErrMalformedSignature)
	})

	t.Run("wrong digest length still mismatches, not malformed", func(t *testing.T) {
		assert.ErrorIs(t, Verify(secret, body, "sha256=abcdef"), ErrSignatureMismatch)
	})
}

func TestVerify_WrongSecret(t *testing.T) {
	body := []byte("payload")
	header := Sign([]byte("the-real-secret"), body)

	assert.ErrorIs(t, Verify([]byte("a-rotated-secret"), body, header), ErrSignatureMismatch)
}
