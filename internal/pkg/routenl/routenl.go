// Package routenl provides the two narrow rtnetlink operations the
// reconciler needs: installing a host route for a client's tunnel IP,
// and toggling the per-client "double-VPN" source-based policy rule.
package routenl

import (
	"encoding/binary"
	"net/netip"

	mdlnetlink "github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"

	"github.com/nexuspointwg/corectl/internal/pkg/netlink"
)

// DVPNRulePriority is the fixed policy-rule priority used for every
// double-VPN source rule.
const DVPNRulePriority = 1000

// Client wraps the rtnetlink transport with route/rule operations. Not
// safe for concurrent use; callers serialize via the reconciler's shared
// mutex.
type Client struct {
	conn *netlink.Conn
}

// Dial opens the rtnetlink socket used for route/rule programming.
func Dial() (*Client, error) {
	c, err := netlink.Dial()
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// Close releases the underlying socket.
func (c *Client) Close() error { return c.conn.Close() }

// AddHostRoute installs a /32 unicast route to addr out of ifaceIndex:
// protocol BOOT, scope LINK, table MAIN. AlreadyExists is not treated
// specially here; callers (the reconciler) decide whether to swallow it.
func (c *Client) AddHostRoute(addr netip.Addr, ifaceIndex int) error {
	if !addr.Is4() {
		panic("routenl: AddHostRoute requires an IPv4 address")
	}
	octets := addr.As4()

	body := make([]byte, 0, 64)
	body = append(body, rtmsgHeader(unix.AF_INET, 32, unix.RTPROT_BOOT, unix.RT_SCOPE_LINK, unix.RTN_UNICAST, unix.RT_TABLE_MAIN)...)
	body = appendRTA(body, unix.RTA_DST, octets[:])
	body = appendRTA(body, unix.RTA_OIF, u32le(uint32(ifaceIndex)))

	msg := mdlnetlink.Message{
		Header: mdlnetlink.Header{
			Type:  mdlnetlink.HeaderType(unix.RTM_NEWROUTE),
			Flags: mdlnetlink.HeaderFlagsRequest | mdlnetlink.HeaderFlagsCreate | mdlnetlink.HeaderFlagsAcknowledge,
		},
		Data: body,
	}
	return c.conn.Send(msg)
}

// ChangeRule enables or disables the `from addr lookup table priority
// 1000` policy rule. Enabling issues NEW_RULE with CREATE|EXCL; disabling
// issues DEL_RULE. The rule's base table is LOCAL and its action is
// TO_TBL, matching the kernel's own default-rule shape.
func (c *Client) ChangeRule(addr netip.Addr, table uint32, enable bool) error {
	if !addr.Is4() {
		panic("routenl: ChangeRule requires an IPv4 address")
	}
	octets := addr.As4()

	body := make([]byte, 0, 64)
	body = append(body, fibRuleHeader(unix.AF_INET, unix.RT_TABLE_LOCAL, unix.FR_ACT_TO_TBL, 32)...)
	body = appendRTA(body, unix.RTA_PRIORITY, u32le(DVPNRulePriority))
	body = appendRTA(body, unix.RTA_TABLE, u32le(table))
	body = appendRTA(body, unix.RTA_SRC, octets[:])

	var msgType mdlnetlink.HeaderType
	var flags mdlnetlink.HeaderFlags
	if enable {
		msgType = mdlnetlink.HeaderType(unix.RTM_NEWRULE)
		flags = mdlnetlink.HeaderFlagsRequest | mdlnetlink.HeaderFlagsCreate | mdlnetlink.HeaderFlagsExcl | mdlnetlink.HeaderFlagsAcknowledge
	} else {
		msgType = mdlnetlink.HeaderType(unix.RTM_DELRULE)
		flags = mdlnetlink.HeaderFlagsRequest | mdlnetlink.HeaderFlagsAcknowledge
	}

	msg := mdlnetlink.Message{
		Header: mdlnetlink.Header{Type: msgType, Flags: flags},
		Data:   body,
	}
	return c.conn.Send(msg)
}

// rtmsgHeader packs a struct rtmsg (include/uapi/linux/rtnetlink.h):
// family, dst_len, src_len, tos, table, protocol, scope, type, flags(u32).
func rtmsgHeader(family, dstLen, protocol, scope, kind, table byte) []byte {
	b := make([]byte, 12)
	b[0] = family
	b[1] = dstLen
	b[2] = 0 // src_len
	b[3] = 0 // tos
	b[4] = table
	b[5] = protocol
	b[6] = scope
	b[7] = kind
	// b[8:12] flags left zero
	return b
}

// fibRuleHeader packs a struct fib_rule_hdr (include/uapi/linux/fib_rules.h):
// family, dst_len, src_len, tos, table, res1, res2, action, flags(u32).
func fibRuleHeader(family byte, table byte, action byte, srcLen byte) []byte {
	b := make([]byte, 12)
	b[0] = family
	b[1] = 0 // dst_len
	b[2] = srcLen
	b[3] = 0 // tos
	b[4] = table
	b[5] = 0 // res1
	b[6] = 0 // res2
	b[7] = action
	return b
}

// appendRTA appends one NLA-aligned rtattr (len, type, value, padding).
func appendRTA(b []byte, rtaType uint16, value []byte) []byte {
	length := 4 + len(value)
	hdr := make([]byte, 4)
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(length))
	binary.LittleEndian.PutUint16(hdr[2:4], rtaType)
	b = append(b, hdr...)
	b = append(b, value...)
	if pad := (4 - length%4) % 4; pad > 0 {
		b = append(b, make([]byte, pad)...)
	}
	return b
}

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
