// Package signer signs opaque values for cookie transport using
// HMAC-SHA256. The signed form is "value.signature" with the signature
// base64url-encoded; verification is constant-time.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	// ErrInvalidFormat indicates the signed value is not "value.signature".
	ErrInvalidFormat = errors.New("invalid signed value format")

	// ErrInvalidSignature indicates the signature does not match the value.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Signer signs and verifies opaque string values
type Signer struct {
	secret []byte
}

// New creates a signer from a shared secret
func New(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the value with its signature appended
func (s *Signer) Sign(value string) string {
	return value + "." + s.signature(value)
}

// Verify checks a signed value and returns the original value.
// Values may themselves contain dots; the signature is everything after
// the last one.
func (s *Signer) Verify(signed string) (string, error) {
	idx := strings.LastIndex(signed, ".")
	if idx <= 0 || idx == len(signed)-1 {
		return "", ErrInvalidFormat
	}
	value := signed[:idx]
	sig := signed[idx+1:]

	if !hmac.Equal([]byte(sig), []byte(s.signature(value))) {
		return "", ErrInvalidSignature
	}
	return value, nil
}

func (s *Signer) signature(value string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
