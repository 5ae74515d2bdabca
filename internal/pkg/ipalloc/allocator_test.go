package ipalloc

import (
	"net/netip"
	"testing"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/HappyLadySauce/errors"
)

// TestAllocateSkipsNetworkAddress verifies that the first allocation out
// of 10.2.0.0/24 is 10.2.0.1, not the network address itself.
func TestAllocateSkipsNetworkAddress(t *testing.T) {
	c, err := New(netip.MustParsePrefix("10.2.0.0/24"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	addr, err := c.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if addr.String() != "10.2.0.1" {
		t.Fatalf("expected 10.2.0.1, got %s", addr)
	}
}

// TestAllocateSequential verifies that successive allocations from an
// empty cursor are duplicate-free and in address order.
func TestAllocateSequential(t *testing.T) {
	c, err := New(netip.MustParsePrefix("10.2.0.0/30"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// /30 has exactly two usable host addresses: .1 and .2 (.0 network, .3 broadcast).
	first, err := c.Allocate()
	if err != nil {
		t.Fatalf("Allocate 1: %v", err)
	}
	second, err := c.Allocate()
	if err != nil {
		t.Fatalf("Allocate 2: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct addresses, got %s twice", first)
	}
	if first.String() != "10.2.0.1" || second.String() != "10.2.0.2" {
		t.Fatalf("expected 10.2.0.1 then 10.2.0.2, got %s then %s", first, second)
	}

	if _, err := c.Allocate(); !errors.IsCode(err, code.ErrServiceIPPoolExhausted) {
		t.Fatalf("expected pool exhausted past the broadcast boundary, got %v", err)
	}
}

// TestAdvanceSkipsAlreadyAssigned models the startup rule: the allocator
// is advanced past every already-recorded config before serving new
// requests.
func TestAdvanceSkipsAlreadyAssigned(t *testing.T) {
	c, err := New(netip.MustParsePrefix("10.2.0.0/29"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Advance(2)

	addr, err := c.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if addr.String() != "10.2.0.3" {
		t.Fatalf("expected 10.2.0.3 after advancing past .1 and .2, got %s", addr)
	}
}

// TestAdvancePastEndExhausts ensures advancing more than the prefix holds
// leaves the cursor exhausted rather than wrapping or panicking.
func TestAdvancePastEndExhausts(t *testing.T) {
	c, err := New(netip.MustParsePrefix("10.2.0.0/30"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Advance(100)

	if _, err := c.Allocate(); !errors.IsCode(err, code.ErrServiceIPPoolExhausted) {
		t.Fatalf("expected pool exhausted, got %v", err)
	}
}

// TestNewRejectsIPv6 ensures the allocator refuses a non-IPv4 prefix
// rather than silently misbehaving.
func TestNewRejectsIPv6(t *testing.T) {
	if _, err := New(netip.MustParsePrefix("2001:db8::/32")); err == nil {
		t.Fatal("expected an error for an IPv6 prefix")
	}
}
