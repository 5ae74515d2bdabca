// Package netlink is the rtnetlink transport: a blocking datagram socket
// bound to the kernel (address 0), used by the route/rule control layer.
// It frames and exchanges one message at a time and classifies the
// kernel's reply into typed error kinds.
//
// The socket is single-owner: concurrent callers must externally
// serialize access to a *Conn. The reconciler's mutex-guarded resource
// bundle does this; the stats worker never touches rtnetlink at all.
package netlink

import (
	"encoding/binary"

	mdlnetlink "github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// Conn is a single rtnetlink datagram socket.
type Conn struct {
	c *mdlnetlink.Conn
}

// Dial opens and binds the rtnetlink socket.
func Dial() (*Conn, error) {
	c, err := mdlnetlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return nil, wrapIO(err)
	}
	return &Conn{c: c}, nil
}

// Close releases the socket.
func (c *Conn) Close() error {
	return wrapIO(c.c.Close())
}

// SendRecv finalizes, serializes, sends msg and receives exactly one
// reply, classifying it: a non-zero-code ERROR payload is an error; a
// zero-code ACK on a send-only call succeeds (the ACK message returned);
// anything else is UnexpectedResponse.
func (c *Conn) SendRecv(msg mdlnetlink.Message) (mdlnetlink.Message, error) {
	sent, err := c.c.Send(msg)
	if err != nil {
		return mdlnetlink.Message{}, wrapIO(err)
	}
	_ = sent

	replies, err := c.c.Receive()
	if err != nil {
		return mdlnetlink.Message{}, wrapIO(err)
	}
	if len(replies) != 1 {
		return mdlnetlink.Message{}, errUnexpectedResponse()
	}

	reply := replies[0]
	if reply.Header.Type == mdlnetlink.Error {
		if len(reply.Data) < 4 {
			return mdlnetlink.Message{}, wrapDecode(errShortErrorPayload)
		}
		errno := int32(binary.LittleEndian.Uint32(reply.Data[0:4]))
		if errno == 0 {
			return reply, nil
		}
		return mdlnetlink.Message{}, classifyKernelCode(errno)
	}

	return mdlnetlink.Message{}, errUnexpectedResponse()
}

// Send is SendRecv for calls whose only expected reply is an ACK; the
// reply body (the echoed header) is discarded.
func (c *Conn) Send(msg mdlnetlink.Message) error {
	_, err := c.SendRecv(msg)
	return err
}

var errShortErrorPayload = shortErrorPayload{}

type shortErrorPayload struct{}

func (shortErrorPayload) Error() string { return "netlink: ERROR payload shorter than 4 bytes" }
