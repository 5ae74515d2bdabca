package routenl

import (
	"encoding/binary"
	"testing"

	"golang.org/x/sys/unix"
)

// TestRtmsgHeaderLayout pins the struct rtmsg byte layout AddHostRoute
// depends on: family, dst_len, src_len, tos, table, protocol, scope,
// type, then a zeroed 4-byte flags field.
func TestRtmsgHeaderLayout(t *testing.T) {
	b := rtmsgHeader(unix.AF_INET, 32, unix.RTPROT_BOOT, unix.RT_SCOPE_LINK, unix.RTN_UNICAST, unix.RT_TABLE_MAIN)
	if len(b) != 12 {
		t.Fatalf("expected a 12-byte rtmsg header, got %d bytes", len(b))
	}
	want := []byte{unix.AF_INET, 32, 0, 0, unix.RT_TABLE_MAIN, unix.RTPROT_BOOT, unix.RT_SCOPE_LINK, unix.RTN_UNICAST, 0, 0, 0, 0}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d: got %d, want %d (full: %v)", i, b[i], want[i], b)
		}
	}
}

// TestFibRuleHeaderLayout pins the struct fib_rule_hdr byte layout
// ChangeRule depends on.
func TestFibRuleHeaderLayout(t *testing.T) {
	b := fibRuleHeader(unix.AF_INET, unix.RT_TABLE_LOCAL, unix.FR_ACT_TO_TBL, 32)
	if len(b) != 12 {
		t.Fatalf("expected a 12-byte fib_rule_hdr, got %d bytes", len(b))
	}
	want := []byte{unix.AF_INET, 0, 32, 0, unix.RT_TABLE_LOCAL, 0, 0, unix.FR_ACT_TO_TBL, 0, 0, 0, 0}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d: got %d, want %d (full: %v)", i, b[i], want[i], b)
		}
	}
}

// TestAppendRTANoPadding covers a value whose length is already a
// multiple of 4 (an RTA_OIF u32), where no padding bytes are appended.
func TestAppendRTANoPadding(t *testing.T) {
	got := appendRTA(nil, unix.RTA_OIF, u32le(7))
	if len(got) != 8 {
		t.Fatalf("expected an 8-byte attribute (4-byte header + 4-byte value), got %d: %v", len(got), got)
	}
	gotLen := binary.LittleEndian.Uint16(got[0:2])
	gotType := binary.LittleEndian.Uint16(got[2:4])
	if gotLen != 8 {
		t.Fatalf("expected rta_len 8, got %d", gotLen)
	}
	if gotType != unix.RTA_OIF {
		t.Fatalf("expected rta_type %d, got %d", unix.RTA_OIF, gotType)
	}
	if binary.LittleEndian.Uint32(got[4:8]) != 7 {
		t.Fatalf("expected value 7, got %d", binary.LittleEndian.Uint32(got[4:8]))
	}
}

// TestAppendRTAPadding covers a value whose length is not a multiple of
// 4 (a 4-byte IPv4 address is fine; exercise a 1-byte value instead to
// force the NLA alignment padding path).
func TestAppendRTAPadding(t *testing.T) {
	got := appendRTA(nil, 1, []byte{0xFF})
	// header(4) + value(1) + pad(3) = 8
	if len(got) != 8 {
		t.Fatalf("expected 8-byte aligned attribute, got %d: %v", len(got), got)
	}
	gotLen := binary.LittleEndian.Uint16(got[0:2])
	if gotLen != 5 {
		t.Fatalf("expected rta_len 5 (header+1-byte value, excluding padding), got %d", gotLen)
	}
	for i := 5; i < 8; i++ {
		if got[i] != 0 {
			t.Fatalf("expected zero padding at byte %d, got %d", i, got[i])
		}
	}
}

// TestAppendRTAMultiple ensures successive attributes concatenate
// without clobbering each other, as AddHostRoute/ChangeRule rely on.
func TestAppendRTAMultiple(t *testing.T) {
	var b []byte
	b = appendRTA(b, unix.RTA_DST, []byte{10, 2, 0, 1})
	b = appendRTA(b, unix.RTA_OIF, u32le(3))
	if len(b) != 16 {
		t.Fatalf("expected two 8-byte attributes, got %d bytes", len(b))
	}
	secondType := binary.LittleEndian.Uint16(b[10:12])
	if secondType != unix.RTA_OIF {
		t.Fatalf("expected the second attribute's type at offset 10, got %d", secondType)
	}
}

func TestU32le(t *testing.T) {
	b := u32le(0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, b[i], want[i])
		}
	}
}
