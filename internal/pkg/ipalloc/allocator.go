// Package ipalloc is a single, non-reclaiming cursor over the host
// addresses of a configured IPv4 CIDR: an iterator advanced past every
// already-assigned address on startup, never rewound on deletion.
package ipalloc

import (
	"net/netip"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/pkg/utils/ip"
	"github.com/HappyLadySauce/errors"
)

// Cursor iterates the host addresses of a fixed IPv4 prefix in order.
// Not safe for concurrent use; callers serialize via the reconciler's
// shared mutex.
type Cursor struct {
	prefix netip.Prefix
	next   netip.Addr
	done   bool
}

// New builds a cursor over prefix, positioned at its first host address.
// For a /24 this is prefix.Addr()+1 (skipping the network address); the
// broadcast address is excluded by Allocate's bounds check.
func New(prefix netip.Prefix) (*Cursor, error) {
	if !prefix.Addr().Is4() {
		return nil, errors.WithCode(code.ErrServiceIPPoolExhausted, "ipalloc: only IPv4 prefixes are supported")
	}
	base := prefix.Masked()
	first := base.Addr().Next()
	return &Cursor{prefix: base, next: first}, nil
}

// Allocate returns the next host address in the prefix, advancing the
// cursor. Returns code.ErrServiceIPPoolExhausted once the prefix is
// exhausted.
func (c *Cursor) Allocate() (netip.Addr, error) {
	if c.done || !c.inRange(c.next) {
		c.done = true
		return netip.Addr{}, errors.WithCode(code.ErrServiceIPPoolExhausted, "ipalloc: address pool exhausted")
	}
	addr := c.next
	c.advance()
	return addr, nil
}

// Advance skips n addresses without returning them, used on startup to
// position the cursor past addresses already recorded in the store,
// before serving any new allocations.
func (c *Cursor) Advance(n int) {
	for i := 0; i < n && !c.done; i++ {
		if !c.inRange(c.next) {
			c.done = true
			return
		}
		c.advance()
	}
}

func (c *Cursor) advance() {
	n := c.next.Next()
	if !n.IsValid() {
		c.done = true
		return
	}
	c.next = n
}

// inRange reports whether addr is a usable host address inside the
// prefix: strictly between the network and broadcast addresses.
func (c *Cursor) inRange(addr netip.Addr) bool {
	if !addr.IsValid() || !c.prefix.Contains(addr) {
		return false
	}
	return addr != ip.LastIPv4(c.prefix)
}
