// Package pairtoken is a short HMAC-SHA256-authenticated token binding
// an IPv4 address, used to let an external identity claim association
// with an existing tunnel IP. It follows the HMAC-then-encode shape
// used throughout the golang-jwt/jwt dependency this module already
// carries for the HTTP frontend's bearer tokens (reusing the same
// "InvalidJwt" error kind name for pair-token failures), rather than
// inventing a bespoke scheme.
package pairtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/netip"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/HappyLadySauce/errors"
)

// Codec signs and verifies pair tokens with a fixed HMAC secret. No
// expiry is encoded (see DESIGN.md for the rationale).
type Codec struct {
	secret []byte
}

// New builds a Codec over secret. An empty secret is rejected: it would
// make every token forgeable.
func New(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.WithCode(code.ErrServiceInvalidJWTSecret, "pairtoken: secret must not be empty")
	}
	return &Codec{secret: secret}, nil
}

// Sign encodes addr and its HMAC-SHA256 tag (keyed by the codec secret)
// into an opaque, URL-safe string.
func (c *Codec) Sign(addr netip.Addr) (string, error) {
	if !addr.Is4() {
		return "", errors.WithCode(code.ErrServiceInvalidKey, "pairtoken: only IPv4 addresses are supported")
	}
	octets := addr.As4()
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(octets[:])
	tag := mac.Sum(nil)

	payload := make([]byte, 0, 4+len(tag))
	payload = append(payload, octets[:]...)
	payload = append(payload, tag...)
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Verify decodes token and checks its HMAC tag in constant time,
// recovering the bound IPv4 address. Any malformed or tampered token
// fails with a single ErrServiceInvalidJWT kind, never a more specific
// decode error — the codec is opaque to its callers.
func (c *Codec) Verify(token string) (netip.Addr, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != 4+sha256.Size {
		return netip.Addr{}, errors.WithCode(code.ErrServiceInvalidJWT, "pairtoken: malformed token")
	}

	octets := raw[:4]
	gotTag := raw[4:]

	mac := hmac.New(sha256.New, c.secret)
	mac.Write(octets)
	wantTag := mac.Sum(nil)

	if subtle.ConstantTimeCompare(gotTag, wantTag) != 1 {
		return netip.Addr{}, errors.WithCode(code.ErrServiceInvalidJWT, "pairtoken: signature mismatch")
	}

	return netip.AddrFrom4([4]byte(octets)), nil
}
