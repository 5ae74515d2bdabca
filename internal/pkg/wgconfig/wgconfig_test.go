package wgconfig

import (
	"encoding/base64"
	"net/netip"
	"strings"
	"testing"
)

// TestRenderWithPrivateKey verifies that a generated key pair yields a
// config with the literal private key, in the exact line order and
// layout the client config format requires.
func TestRenderWithPrivateKey(t *testing.T) {
	priv := make([]byte, 32)
	for i := range priv {
		priv[i] = byte(i)
	}
	serverPub := make([]byte, 32)
	for i := range serverPub {
		serverPub[i] = byte(32 - i)
	}

	got := Render(Params{
		Address:         netip.MustParseAddr("10.2.0.1"),
		PrivateKey:      priv,
		ServerPublicKey: serverPub,
		Endpoint:        "vpn.example:51820",
	})

	want := strings.Join([]string{
		"[Interface]",
		"Address = 10.2.0.1",
		"PrivateKey = " + base64.StdEncoding.EncodeToString(priv),
		"ListenPort = 51820",
		"",
		"[Peer]",
		"PublicKey = " + base64.StdEncoding.EncodeToString(serverPub),
		"Endpoint = vpn.example:51820",
		"AllowedIPs = 0.0.0.0/0, ::/0",
	}, "\n")

	if got != want {
		t.Fatalf("rendered config mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatal("rendered config must not end with a trailing newline")
	}
}

// TestRenderWithoutPrivateKey verifies that an imported public key with
// no stored private half renders the placeholder instead.
func TestRenderWithoutPrivateKey(t *testing.T) {
	got := Render(Params{
		Address:         netip.MustParseAddr("10.2.0.2"),
		PrivateKey:      nil,
		ServerPublicKey: make([]byte, 32),
		Endpoint:        "vpn.example:51820",
	})

	if !strings.Contains(got, "PrivateKey = <INSERT PRIVATE KEY>") {
		t.Fatalf("expected the insert-private-key placeholder, got:\n%s", got)
	}
}

// TestRenderFieldOrder ensures every field appears on the exact line
// index the format mandates, so any conforming WireGuard parser would
// recover the same fields.
func TestRenderFieldOrder(t *testing.T) {
	got := Render(Params{
		Address:         netip.MustParseAddr("10.2.0.1"),
		PrivateKey:      []byte("01234567890123456789012345678901"[:32]),
		ServerPublicKey: make([]byte, 32),
		Endpoint:        "vpn.example:51820",
	})

	lines := strings.Split(got, "\n")
	wantPrefixes := []string{
		"[Interface]",
		"Address = ",
		"PrivateKey = ",
		"ListenPort = ",
		"",
		"[Peer]",
		"PublicKey = ",
		"Endpoint = ",
		"AllowedIPs = ",
	}
	if len(lines) != len(wantPrefixes) {
		t.Fatalf("expected %d lines, got %d: %q", len(wantPrefixes), len(lines), lines)
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("line %d: expected prefix %q, got %q", i, prefix, lines[i])
		}
	}
}
