// Package wgnl is a typed façade over the generic-netlink WireGuard
// commands (GetDevice/SetDevice), built directly on mdlayher/genetlink —
// the same ABI wgctrl-go's Linux backend talks.
package wgnl

import (
	"encoding/binary"
	"net"
	"net/netip"
	"time"

	"github.com/mdlayher/genetlink"
	mdlnetlink "github.com/mdlayher/netlink"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/HappyLadySauce/errors"
)

// Peer mirrors one kernel WGPEER_A_* nested attribute set. Fields absent
// from the kernel response default to zero/empty/nil.
type Peer struct {
	PublicKey           [32]byte
	PresharedKey        *[32]byte
	Endpoint            *net.UDPAddr
	PersistentKeepalive time.Duration
	LastHandshake       time.Time
	TxBytes             uint64
	RxBytes             uint64
	AllowedIPs          []netip.Prefix
}

// Interface mirrors the kernel's WGDEVICE_A_* response to GetDevice.
type Interface struct {
	Index      int
	Name       string
	PrivateKey *[32]byte
	PublicKey  *[32]byte
	ListenPort int
	FwMark     int
	Peers      []Peer
}

// PeerUpdate is one element of an Update's peer list.
type PeerUpdate struct {
	PublicKey    *[32]byte
	PresharedKey *[32]byte
	AllowedIPs   []netip.Prefix
	Remove       bool
}

// Update is the SetDevice request body.
type Update struct {
	ReplacePeers bool
	Peers        []PeerUpdate
}

// Client is a generic-netlink handle bound to the "wireguard" family.
// Not safe for concurrent use; callers serialize via the reconciler's
// shared mutex, except the stats worker, which owns its own Client.
type Client struct {
	conn   *genetlink.Conn
	family genetlink.Family
}

// Dial opens the generic-netlink connection and resolves the WireGuard
// family id.
func Dial() (*Client, error) {
	conn, err := genetlink.Dial(nil)
	if err != nil {
		return nil, errors.WithCode(code.ErrNetlinkIO, "%s", err.Error())
	}
	family, err := conn.GetFamily(genlName)
	if err != nil {
		_ = conn.Close()
		return nil, errors.WithCode(code.ErrNetlinkNotFound, "wireguard generic-netlink family not registered: %s", err.Error())
	}
	return &Client{conn: conn, family: family}, nil
}

// Close releases the generic-netlink connection.
func (c *Client) Close() error { return c.conn.Close() }

// GetInterface issues GetDevice with the DUMP flag and consumes the
// multi-part response, merging any peer-list fragments into a single
// Interface.
func (c *Client) GetInterface(name string) (*Interface, error) {
	ae := mdlnetlink.NewAttributeEncoder()
	ae.String(deviceAIfname, name)
	attrs, err := ae.Encode()
	if err != nil {
		return nil, errors.WithCode(code.ErrNetlinkDecode, "%s", err.Error())
	}

	msgs, err := c.execute(cmdGetDevice, mdlnetlink.HeaderFlagsRequest|mdlnetlink.HeaderFlagsDump, attrs)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, errors.WithCode(code.ErrNetlinkUnexpectedResponse, "empty GetDevice response")
	}

	iface, err := parseDevice(msgs[0].Data)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs[1:] {
		frag, err := parseDevice(m.Data)
		if err != nil {
			return nil, err
		}
		iface.Peers = append(iface.Peers, frag.Peers...)
	}
	return iface, nil
}

// Update issues SetDevice. When upd.ReplacePeers is true the
// WGDEVICE_F_REPLACE_PEERS flag is set, atomically replacing the entire
// kernel peer set — the mechanism startup reconciliation uses.
func (c *Client) Update(ifaceIndex int, upd Update) error {
	ae := mdlnetlink.NewAttributeEncoder()
	ae.Uint32(deviceAIfindex, uint32(ifaceIndex))
	if upd.ReplacePeers {
		ae.Uint32(deviceAFlags, deviceFReplacePeers)
	}
	ae.Do(deviceAPeers, func() ([]byte, error) {
		return encodePeers(upd.Peers)
	})

	attrs, err := ae.Encode()
	if err != nil {
		return errors.WithCode(code.ErrNetlinkDecode, "%s", err.Error())
	}

	_, err = c.execute(cmdSetDevice, mdlnetlink.HeaderFlagsRequest|mdlnetlink.HeaderFlagsAcknowledge, attrs)
	return err
}

// AddPeer is a convenience, non-replacing Update adding a single peer.
func (c *Client) AddPeer(ifaceIndex int, pub [32]byte, allowedIPs []netip.Prefix) error {
	return c.Update(ifaceIndex, Update{
		Peers: []PeerUpdate{{PublicKey: &pub, AllowedIPs: allowedIPs}},
	})
}

// RemovePeer is a convenience, non-replacing Update removing a single
// peer by public key (REMOVE_ME).
func (c *Client) RemovePeer(ifaceIndex int, pub [32]byte) error {
	return c.Update(ifaceIndex, Update{
		Peers: []PeerUpdate{{PublicKey: &pub, Remove: true}},
	})
}

func (c *Client) execute(cmd uint8, flags mdlnetlink.HeaderFlags, attrs []byte) ([]genetlink.Message, error) {
	msg := genetlink.Message{
		Header: genetlink.Header{Command: cmd, Version: genlVersion},
		Data:   attrs,
	}
	msgs, err := c.conn.Execute(msg, c.family.ID, flags)
	if err != nil {
		return nil, errors.WithCode(code.ErrNetlinkIO, "%s", err.Error())
	}
	return msgs, nil
}

func parseDevice(data []byte) (*Interface, error) {
	ad, err := mdlnetlink.NewAttributeDecoder(data)
	if err != nil {
		return nil, errors.WithCode(code.ErrNetlinkDecode, "%s", err.Error())
	}

	iface := &Interface{}
	for ad.Next() {
		switch ad.Type() {
		case deviceAIfindex:
			iface.Index = int(ad.Uint32())
		case deviceAIfname:
			iface.Name = ad.String()
		case deviceAPrivateKey:
			iface.PrivateKey = copyKey(ad.Bytes())
		case deviceAPublicKey:
			iface.PublicKey = copyKey(ad.Bytes())
		case deviceAListenPort:
			iface.ListenPort = int(ad.Uint16())
		case deviceAFwmark:
			iface.FwMark = int(ad.Uint32())
		case deviceAPeers:
			ad.Do(func(b []byte) error {
				peers, err := parsePeers(b)
				if err != nil {
					return err
				}
				iface.Peers = peers
				return nil
			})
		}
	}
	if err := ad.Err(); err != nil {
		return nil, errors.WithCode(code.ErrNetlinkDecode, "%s", err.Error())
	}
	return iface, nil
}

// parsePeers decodes WGDEVICE_A_PEERS: an array of nested attributes
// whose own type field is just an index (0, 1, 2, ...), each wrapping one
// WGPEER nested attribute set.
func parsePeers(b []byte) ([]Peer, error) {
	ad, err := mdlnetlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, errors.WithCode(code.ErrNetlinkDecode, "%s", err.Error())
	}

	var peers []Peer
	for ad.Next() {
		var p Peer
		ad.Do(func(peerBytes []byte) error {
			parsed, err := parsePeer(peerBytes)
			if err != nil {
				return err
			}
			p = parsed
			return nil
		})
		peers = append(peers, p)
	}
	return peers, ad.Err()
}

func parsePeer(b []byte) (Peer, error) {
	ad, err := mdlnetlink.NewAttributeDecoder(b)
	if err != nil {
		return Peer{}, err
	}

	var p Peer
	for ad.Next() {
		switch ad.Type() {
		case peerAPublicKey:
			copy(p.PublicKey[:], ad.Bytes())
		case peerAPresharedKey:
			p.PresharedKey = copyKey(ad.Bytes())
		case peerAEndpoint:
			p.Endpoint = parseSockaddr(ad.Bytes())
		case peerAPersistentKeepaliveInterval:
			p.PersistentKeepalive = time.Duration(ad.Uint16()) * time.Second
		case peerALastHandshakeTime:
			p.LastHandshake = parseTimespec(ad.Bytes())
		case peerARxBytes:
			p.RxBytes = ad.Uint64()
		case peerATxBytes:
			p.TxBytes = ad.Uint64()
		case peerAAllowedips:
			ad.Do(func(allowedBytes []byte) error {
				ips, err := parseAllowedIPs(allowedBytes)
				if err != nil {
					return err
				}
				p.AllowedIPs = ips
				return nil
			})
		}
	}
	return p, ad.Err()
}

func parseAllowedIPs(b []byte) ([]netip.Prefix, error) {
	ad, err := mdlnetlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, err
	}

	var prefixes []netip.Prefix
	for ad.Next() {
		var addr netip.Addr
		var bits int
		ad.Do(func(entryBytes []byte) error {
			entryAD, err := mdlnetlink.NewAttributeDecoder(entryBytes)
			if err != nil {
				return err
			}
			for entryAD.Next() {
				switch entryAD.Type() {
				case allowedipAIpaddr:
					raw := entryAD.Bytes()
					if len(raw) == 4 {
						addr = netip.AddrFrom4([4]byte(raw))
					} else if len(raw) == 16 {
						addr = netip.AddrFrom16([16]byte(raw))
					}
				case allowedipACidrMask:
					bits = int(entryAD.Uint8())
				}
			}
			return entryAD.Err()
		})
		if addr.IsValid() {
			prefixes = append(prefixes, netip.PrefixFrom(addr, bits))
		}
	}
	return prefixes, ad.Err()
}

func encodePeers(peers []PeerUpdate) ([]byte, error) {
	ae := mdlnetlink.NewAttributeEncoder()
	for i, p := range peers {
		idx := uint16(i)
		p := p
		ae.Do(idx, func() ([]byte, error) { return encodePeer(p) })
	}
	return ae.Encode()
}

func encodePeer(p PeerUpdate) ([]byte, error) {
	ae := mdlnetlink.NewAttributeEncoder()
	var flags uint32
	if p.PublicKey != nil {
		ae.Bytes(peerAPublicKey, p.PublicKey[:])
	}
	if p.PresharedKey != nil {
		ae.Bytes(peerAPresharedKey, p.PresharedKey[:])
	}
	if p.Remove {
		flags |= peerFRemoveMe
	}
	if len(p.AllowedIPs) > 0 {
		flags |= peerFReplaceAllowedips
		ae.Do(peerAAllowedips, func() ([]byte, error) { return encodeAllowedIPs(p.AllowedIPs) })
	}
	if flags != 0 {
		ae.Uint32(peerAFlags, flags)
	}
	return ae.Encode()
}

func encodeAllowedIPs(ips []netip.Prefix) ([]byte, error) {
	ae := mdlnetlink.NewAttributeEncoder()
	for i, p := range ips {
		idx := uint16(i)
		p := p
		ae.Do(idx, func() ([]byte, error) {
			inner := mdlnetlink.NewAttributeEncoder()
			if p.Addr().Is4() {
				addr4 := p.Addr().As4()
				inner.Uint16(allowedipAFamily, 2) // AF_INET
				inner.Bytes(allowedipAIpaddr, addr4[:])
			} else {
				addr16 := p.Addr().As16()
				inner.Uint16(allowedipAFamily, 10) // AF_INET6
				inner.Bytes(allowedipAIpaddr, addr16[:])
			}
			inner.Uint8(allowedipACidrMask, uint8(p.Bits()))
			return inner.Encode()
		})
	}
	return ae.Encode()
}

func copyKey(b []byte) *[32]byte {
	if len(b) != 32 {
		return nil
	}
	var k [32]byte
	copy(k[:], b)
	return &k
}

// parseSockaddr decodes a raw struct sockaddr_in/sockaddr_in6 as returned
// by WGPEER_A_ENDPOINT.
func parseSockaddr(b []byte) *net.UDPAddr {
	if len(b) < 4 {
		return nil
	}
	family := binary.LittleEndian.Uint16(b[0:2])
	switch family {
	case 2: // AF_INET
		if len(b) < 8 {
			return nil
		}
		port := binary.BigEndian.Uint16(b[2:4])
		ip := net.IP(b[4:8])
		return &net.UDPAddr{IP: ip, Port: int(port)}
	case 10: // AF_INET6
		if len(b) < 24 {
			return nil
		}
		port := binary.BigEndian.Uint16(b[2:4])
		ip := net.IP(b[8:24])
		return &net.UDPAddr{IP: ip, Port: int(port)}
	default:
		return nil
	}
}

func parseTimespec(b []byte) time.Time {
	if len(b) < 16 {
		return time.Time{}
	}
	sec := int64(binary.LittleEndian.Uint64(b[0:8]))
	nsec := int64(binary.LittleEndian.Uint64(b[8:16]))
	if sec == 0 && nsec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, nsec)
}
