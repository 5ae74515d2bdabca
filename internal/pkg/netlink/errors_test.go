package netlink

import (
	"errors"
	"testing"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	liberrors "github.com/HappyLadySauce/errors"
)

func TestClassifyKernelCode(t *testing.T) {
	cases := []struct {
		name string
		code int32
		want int
	}{
		{"ENOENT", -2, code.ErrNetlinkNotFound},
		{"EEXIST", -17, code.ErrNetlinkAlreadyExists},
		{"other", -22, code.ErrNetlinkUnknown},
		{"zero", 0, code.ErrNetlinkUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyKernelCode(tc.code)
			if !liberrors.IsCode(err, tc.want) {
				t.Fatalf("classifyKernelCode(%d): expected code %d, got %v", tc.code, tc.want, err)
			}
		})
	}
}

func TestIsAlreadyExistsAndIsNotFound(t *testing.T) {
	exists := classifyKernelCode(-17)
	notFound := classifyKernelCode(-2)
	other := classifyKernelCode(-1)

	if !IsAlreadyExists(exists) {
		t.Fatal("expected IsAlreadyExists to recognize EEXIST classification")
	}
	if IsAlreadyExists(notFound) || IsAlreadyExists(other) {
		t.Fatal("expected IsAlreadyExists to reject non-EEXIST classifications")
	}
	if !IsNotFound(notFound) {
		t.Fatal("expected IsNotFound to recognize ENOENT classification")
	}
	if IsNotFound(exists) || IsNotFound(other) {
		t.Fatal("expected IsNotFound to reject non-ENOENT classifications")
	}
}

func TestWrapIOAndWrapDecodeNilPassthrough(t *testing.T) {
	if wrapIO(nil) != nil {
		t.Fatal("expected wrapIO(nil) to return nil")
	}
	if wrapDecode(nil) != nil {
		t.Fatal("expected wrapDecode(nil) to return nil")
	}
}

func TestWrapIOAndWrapDecodeClassify(t *testing.T) {
	cause := errors.New("socket closed")

	ioErr := wrapIO(cause)
	if !liberrors.IsCode(ioErr, code.ErrNetlinkIO) {
		t.Fatalf("expected ErrNetlinkIO, got %v", ioErr)
	}

	decodeErr := wrapDecode(cause)
	if !liberrors.IsCode(decodeErr, code.ErrNetlinkDecode) {
		t.Fatalf("expected ErrNetlinkDecode, got %v", decodeErr)
	}
}

func TestErrUnexpectedResponse(t *testing.T) {
	err := errUnexpectedResponse()
	if !liberrors.IsCode(err, code.ErrNetlinkUnexpectedResponse) {
		t.Fatalf("expected ErrNetlinkUnexpectedResponse, got %v", err)
	}
}
