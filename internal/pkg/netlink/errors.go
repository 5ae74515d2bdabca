package netlink

import (
	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/HappyLadySauce/errors"
)

// classifyKernelCode maps a raw negative netlink error code to one of the
// Netlink.* error kinds. -2 (ENOENT) and -17 (EEXIST) get their own kinds
// because callers treat them as benign/idempotent conditions during
// reconciliation; everything else collapses to Unknown(code).
func classifyKernelCode(code_ int32) error {
	switch code_ {
	case -2:
		return errors.WithCode(code.ErrNetlinkNotFound, "kernel: not found")
	case -17:
		return errors.WithCode(code.ErrNetlinkAlreadyExists, "kernel: already exists")
	default:
		return errors.WithCode(code.ErrNetlinkUnknown, "kernel returned error code %d", code_)
	}
}

// wrapIO classifies a transport-level (socket send/receive) failure.
func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithCode(code.ErrNetlinkIO, "%s", err.Error())
}

// wrapDecode classifies a message marshal/unmarshal failure.
func wrapDecode(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithCode(code.ErrNetlinkDecode, "%s", err.Error())
}

func errUnexpectedResponse() error {
	return errors.WithCode(code.ErrNetlinkUnexpectedResponse, "kernel response was neither an ACK nor an ERROR payload")
}

// IsAlreadyExists reports whether err is the kernel's AlreadyExists kind.
func IsAlreadyExists(err error) bool { return errors.IsCode(err, code.ErrNetlinkAlreadyExists) }

// IsNotFound reports whether err is the kernel's NotFound kind.
func IsNotFound(err error) bool { return errors.IsCode(err, code.ErrNetlinkNotFound) }
