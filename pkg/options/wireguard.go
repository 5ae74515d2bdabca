package options

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/spf13/pflag"

	"github.com/nexuspointwg/corectl/internal/pkg/wgconfig"
	"github.com/nexuspointwg/corectl/pkg/utils/network"
)

// WireGuardOptions carries the reconciler's environment inputs: the
// client CIDR, the managed interface, the external endpoint clients dial,
// the double-VPN lookup table number, and the HMAC secret for pair
// tokens. Parsed here, consumed as plain values by internal/service.
type WireGuardOptions struct {
	// CIDR is the IPv4 prefix the allocator hands out client addresses
	// from, e.g. 10.2.0.0/24.
	CIDR string `json:"cidr" mapstructure:"cidr"`

	// Interface is the managed WireGuard interface name, e.g. wg0.
	Interface string `json:"interface" mapstructure:"interface"`

	// Endpoint is the external host:port advertised in emitted client
	// configs, e.g. vpn.example:51820.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`

	// DVPNTable is the alternate rtnetlink routing table number that
	// double-VPN source rules steer traffic into.
	DVPNTable uint32 `json:"dvpn-table" mapstructure:"dvpn-table"`

	// PairSecret is the HMAC-SHA256 key used to sign/verify pair tokens.
	PairSecret string `json:"pair-secret" mapstructure:"pair-secret"`
}

func NewWireGuardOptions() *WireGuardOptions {
	return &WireGuardOptions{
		CIDR:       "10.2.0.0/24",
		Interface:  "wg0",
		Endpoint:   "",
		DVPNTable:  100,
		PairSecret: "",
	}
}

// ResolveEndpoint fills in Endpoint from this host's own reachable
// address when the operator left it blank, combining the detected
// address with the fixed client listen port. It is a no-op once
// Endpoint is set, whether by flag, config file, or an earlier call.
func (o *WireGuardOptions) ResolveEndpoint(ctx context.Context) error {
	if strings.TrimSpace(o.Endpoint) != "" {
		return nil
	}
	ip, err := network.GetServerIP(ctx, "")
	if err != nil {
		return fmt.Errorf("wireguard.endpoint not set and address auto-detection failed: %w", err)
	}
	o.Endpoint = fmt.Sprintf("%s:%d", ip, wgconfig.ClientListenPort)
	return nil
}

func (o *WireGuardOptions) Validate() []error {
	var errs []error
	if p, err := netip.ParsePrefix(o.CIDR); err != nil {
		errs = append(errs, fmt.Errorf("wireguard.cidr must be a valid IPv4 CIDR: %w", err))
	} else if !p.Addr().Is4() {
		errs = append(errs, fmt.Errorf("wireguard.cidr must be a valid IPv4 CIDR: %s is not IPv4", o.CIDR))
	}
	if strings.TrimSpace(o.Interface) == "" {
		errs = append(errs, fmt.Errorf("wireguard.interface is required"))
	}
	if strings.TrimSpace(o.Endpoint) == "" {
		errs = append(errs, fmt.Errorf("wireguard.endpoint is required"))
	}
	if o.DVPNTable == 0 {
		errs = append(errs, fmt.Errorf("wireguard.dvpn-table must be nonzero"))
	}
	if strings.TrimSpace(o.PairSecret) == "" {
		errs = append(errs, fmt.Errorf("wireguard.pair-secret is required"))
	}
	return errs
}

func (o *WireGuardOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.CIDR, "wireguard.cidr", o.CIDR, "Client IPv4 CIDR the allocator hands out addresses from, e.g. 10.2.0.0/24")
	fs.StringVar(&o.Interface, "wireguard.interface", o.Interface, "Managed WireGuard interface name, e.g. wg0")
	fs.StringVar(&o.Endpoint, "wireguard.endpoint", o.Endpoint, "External endpoint advertised to clients, e.g. vpn.example:51820")
	fs.Uint32Var(&o.DVPNTable, "wireguard.dvpn-table", o.DVPNTable, "Alternate routing table number for the double-VPN policy rule")
	fs.StringVar(&o.PairSecret, "wireguard.pair-secret", o.PairSecret, "HMAC-SHA256 secret used to sign/verify pair tokens")
}

// Prefix parses CIDR, which Validate has already confirmed well-formed.
func (o *WireGuardOptions) Prefix() netip.Prefix {
	p, _ := netip.ParsePrefix(o.CIDR)
	return p
}
