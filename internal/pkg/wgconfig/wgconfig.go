// Package wgconfig renders the client-facing WireGuard config text: a
// fixed-field, fixed-order [Interface]/[Peer] block with no trailing
// newline.
package wgconfig

import (
	"encoding/base64"
	"fmt"
	"net/netip"
	"strings"
)

// insertPrivateKeyPlaceholder is emitted verbatim when the server never
// learned the client's private key (the user supplied only a public key).
const insertPrivateKeyPlaceholder = "<INSERT PRIVATE KEY>"

// ClientListenPort is the fixed client-side listen port written into
// every emitted config.
const ClientListenPort = 51820

// Params is everything Render needs to produce one client config.
type Params struct {
	// Address is the client's assigned tunnel IPv4.
	Address netip.Addr
	// PrivateKey is the client's raw 32-byte private key, or nil if
	// unknown. Render base64-encodes it.
	PrivateKey []byte
	// ServerPublicKey is the managed interface's raw public key bytes.
	// Render base64-encodes it.
	ServerPublicKey []byte
	// Endpoint is the external "host:port" the client dials.
	Endpoint string
}

// Render produces the client config text: no trailing newline, lines in
// the fixed order above.
func Render(p Params) string {
	priv := insertPrivateKeyPlaceholder
	if len(p.PrivateKey) > 0 {
		priv = base64.StdEncoding.EncodeToString(p.PrivateKey)
	}

	lines := []string{
		"[Interface]",
		fmt.Sprintf("Address = %s", p.Address),
		fmt.Sprintf("PrivateKey = %s", priv),
		fmt.Sprintf("ListenPort = %d", ClientListenPort),
		"",
		"[Peer]",
		fmt.Sprintf("PublicKey = %s", base64.StdEncoding.EncodeToString(p.ServerPublicKey)),
		fmt.Sprintf("Endpoint = %s", p.Endpoint),
		"AllowedIPs = 0.0.0.0/0, ::/0",
	}
	return strings.Join(lines, "\n")
}
