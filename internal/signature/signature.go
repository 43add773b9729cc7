// internal/signature/signature.go

// Package signature implements the shared-secret HMAC scheme used on the
// webhook route. The digest is always computed over the exact bytes received
// on the wire; hashing a re-serialized payload would reject legitimate
// deliveries whose whitespace or key order differ.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const prefix = "sha256="

var (
	// ErrMissingSignature means no signature header was supplied.
	ErrMissingSignature = errors.New("missing signature header")
	// ErrMalformedSignature means the header is not in 'sha256=<hex>' form.
	ErrMalformedSignature = errors.New("malformed signature header")
	// ErrSignatureMismatch means the digest does not match the body.
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// Sign computes the signature header value for a payload.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return prefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature header against the raw request body. The
// comparison is constant-time. A nil return means the signature is valid.
func Verify(secret, body []byte, header string) error {
	if header == "" {
		return ErrMissingSignature
	}
	if !strings.HasPrefix(header, prefix) {
		return ErrMalformedSignature
	}
	provided, err := hex.DecodeString(header[len(prefix):])
	if err != nil {
		return ErrMalformedSignature
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	if !hmac.Equal(provided, mac.Sum(nil)) {
		return ErrSignatureMismatch
	}
	return nil
}
