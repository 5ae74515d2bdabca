package pairtoken

import (
	"net/netip"
	"testing"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/HappyLadySauce/errors"
)

// TestRoundTrip verifies that verify(sign(ip)) == ip for any IPv4.
func TestRoundTrip(t *testing.T) {
	c, err := New([]byte("a-fixed-test-secret"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, s := range []string{"10.2.0.1", "0.0.0.0", "255.255.255.255", "192.168.1.100"} {
		addr := netip.MustParseAddr(s)
		token, err := c.Sign(addr)
		if err != nil {
			t.Fatalf("Sign(%s): %v", s, err)
		}
		got, err := c.Verify(token)
		if err != nil {
			t.Fatalf("Verify(%s): %v", s, err)
		}
		if got != addr {
			t.Fatalf("round trip mismatch: signed %s, verified %s", addr, got)
		}
	}
}

// TestTamperedTokenFailsVerification verifies that any single-bit
// modification of the token fails verification.
func TestTamperedTokenFailsVerification(t *testing.T) {
	c, err := New([]byte("a-fixed-test-secret"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	token, err := c.Sign(netip.MustParseAddr("10.2.0.1"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	raw := []byte(token)
	flipped := false
	for i := range raw {
		orig := raw[i]
		// Flip one bit of one base64 character, verify, then restore it
		// before moving on to the next character. flipped records that
		// at least one flip produced a token different from the original.
		raw[i] ^= 0x01
		if string(raw) != token {
			flipped = true
		}
		if _, err := c.Verify(string(raw)); err == nil {
			t.Fatalf("expected tampered token at byte %d to fail verification", i)
		} else if !errors.IsCode(err, code.ErrServiceInvalidJWT) {
			t.Fatalf("expected ErrServiceInvalidJWT, got %v", err)
		}
		raw[i] = orig
	}
	if !flipped {
		t.Fatal("test bug: no byte flip actually changed the token")
	}
}

// TestVerifyRejectsMalformedInput covers non-base64 and short/garbage
// tokens without panicking.
func TestVerifyRejectsMalformedInput(t *testing.T) {
	c, err := New([]byte("secret"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, tok := range []string{"", "not base64!!", "AAAA"} {
		if _, err := c.Verify(tok); !errors.IsCode(err, code.ErrServiceInvalidJWT) {
			t.Fatalf("Verify(%q): expected ErrServiceInvalidJWT, got %v", tok, err)
		}
	}
}

// TestNewRejectsEmptySecret: an empty HMAC key would make every token
// forgeable.
func TestNewRejectsEmptySecret(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected an error for an empty secret")
	}
}

// TestSignRejectsIPv6: only IPv4 addresses are supported.
func TestSignRejectsIPv6(t *testing.T) {
	c, err := New([]byte("secret"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Sign(netip.MustParseAddr("::1")); err == nil {
		t.Fatal("expected an error for an IPv6 address")
	}
}
