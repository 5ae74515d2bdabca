package wgnl

import (
	"net"
	"net/netip"
	"testing"
	"time"
)

// TestEncodeParseAllowedIPsRoundTrip exercises the nested AllowedIPs
// attribute array both directions without a live netlink socket.
func TestEncodeParseAllowedIPsRoundTrip(t *testing.T) {
	want := []netip.Prefix{
		netip.MustParsePrefix("10.2.0.1/32"),
		netip.MustParsePrefix("0.0.0.0/0"),
		netip.MustParsePrefix("2001:db8::1/128"),
	}

	encoded, err := encodeAllowedIPs(want)
	if err != nil {
		t.Fatalf("encodeAllowedIPs: %v", err)
	}
	got, err := parseAllowedIPs(encoded)
	if err != nil {
		t.Fatalf("parseAllowedIPs: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d prefixes, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("prefix %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

// TestEncodeParsePeerRoundTrip covers the fields a PeerUpdate can set and
// a subsequent GetDevice-style parse recovers: public key, preshared key,
// and allowed IPs. Remove/flags are write-only directives and are not
// expected to reappear on parse.
func TestEncodeParsePeerRoundTrip(t *testing.T) {
	var pub, psk [32]byte
	for i := range pub {
		pub[i] = byte(i)
	}
	for i := range psk {
		psk[i] = byte(255 - i)
	}

	upd := PeerUpdate{
		PublicKey:    &pub,
		PresharedKey: &psk,
		AllowedIPs:   []netip.Prefix{netip.MustParsePrefix("10.2.0.5/32")},
	}

	encoded, err := encodePeer(upd)
	if err != nil {
		t.Fatalf("encodePeer: %v", err)
	}
	got, err := parsePeer(encoded)
	if err != nil {
		t.Fatalf("parsePeer: %v", err)
	}
	if got.PublicKey != pub {
		t.Fatalf("public key mismatch: got %x, want %x", got.PublicKey, pub)
	}
	if got.PresharedKey == nil || *got.PresharedKey != psk {
		t.Fatalf("preshared key mismatch: got %v, want %x", got.PresharedKey, psk)
	}
	if len(got.AllowedIPs) != 1 || got.AllowedIPs[0] != upd.AllowedIPs[0] {
		t.Fatalf("allowed IPs mismatch: got %v, want %v", got.AllowedIPs, upd.AllowedIPs)
	}
}

// TestEncodePeersRoundTrip covers the WGDEVICE_A_PEERS array wrapper:
// multiple peers keyed by positional index.
func TestEncodePeersRoundTrip(t *testing.T) {
	var pub1, pub2 [32]byte
	pub1[0] = 1
	pub2[0] = 2

	encoded, err := encodePeers([]PeerUpdate{
		{PublicKey: &pub1},
		{PublicKey: &pub2, Remove: true},
	})
	if err != nil {
		t.Fatalf("encodePeers: %v", err)
	}
	got, err := parsePeers(encoded)
	if err != nil {
		t.Fatalf("parsePeers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(got))
	}
	if got[0].PublicKey != pub1 || got[1].PublicKey != pub2 {
		t.Fatalf("public keys out of order or mismatched: %v", got)
	}
}

// TestCopyKey rejects any length other than exactly 32 bytes, since a
// short or long key indicates a decode bug rather than a valid key.
func TestCopyKey(t *testing.T) {
	if copyKey(make([]byte, 31)) != nil {
		t.Fatal("expected nil for a 31-byte input")
	}
	if copyKey(make([]byte, 33)) != nil {
		t.Fatal("expected nil for a 33-byte input")
	}
	raw := make([]byte, 32)
	raw[0] = 0xAB
	k := copyKey(raw)
	if k == nil || k[0] != 0xAB {
		t.Fatalf("expected a 32-byte key copy, got %v", k)
	}
}

// TestParseSockaddrIPv4 decodes a raw struct sockaddr_in as WGPEER_A_ENDPOINT
// returns it: family (LE uint16), port (BE uint16), 4-byte address.
func TestParseSockaddrIPv4(t *testing.T) {
	b := []byte{2, 0, 0x1F, 0x90, 10, 2, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0}
	addr := parseSockaddr(b)
	if addr == nil {
		t.Fatal("expected a non-nil address")
	}
	if addr.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", addr.Port)
	}
	if !addr.IP.Equal(net.IPv4(10, 2, 0, 1)) {
		t.Fatalf("expected 10.2.0.1, got %s", addr.IP)
	}
}

// TestParseSockaddrUnknownFamilyOrShortInput returns nil rather than
// panicking on truncated or unrecognized input.
func TestParseSockaddrUnknownFamilyOrShortInput(t *testing.T) {
	if parseSockaddr(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
	if parseSockaddr([]byte{99, 0, 0, 0}) != nil {
		t.Fatal("expected nil for an unrecognized address family")
	}
	if parseSockaddr([]byte{2, 0, 0, 0}) != nil {
		t.Fatal("expected nil for a truncated IPv4 sockaddr")
	}
}

// TestParseTimespecZeroIsZeroTime verifies that a peer which has never
// handshaked reports a zeroed timespec, which must decode to the zero
// time.Time rather than the Unix epoch.
func TestParseTimespecZeroIsZeroTime(t *testing.T) {
	if got := parseTimespec(make([]byte, 16)); !got.IsZero() {
		t.Fatalf("expected the zero time, got %v", got)
	}
	if got := parseTimespec(nil); !got.IsZero() {
		t.Fatalf("expected the zero time for short input, got %v", got)
	}
}

func TestParseTimespecNonZero(t *testing.T) {
	want := time.Unix(1700000000, 500)
	b := make([]byte, 16)
	putLE64(b[0:8], uint64(want.Unix()))
	putLE64(b[8:16], uint64(500))

	got := parseTimespec(b)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
