package ptp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	cases := []Header{
		{Len: 12, Kind: KindCommand, Code: OCGetDeviceInfo, Tid: 0},
		{Len: 24, Kind: KindData, Code: OCGetObject, Tid: 42},
		{Len: 12, Kind: KindResponse, Code: RCOk, Tid: 0xFFFFFFFF},
		{Len: 16, Kind: KindEvent, Code: 0x4002, Tid: 7},
	}
	for _, h := range cases {
		var buf [ContainerHeaderSize]byte
		n := encodeHeader(buf[:], h)
		if n != ContainerHeaderSize {
			t.Errorf("encodeHeader returned %d", n)
		}
		got, err := parseHeader(buf[:])
		if err != nil {
			t.Errorf("parseHeader(%+v): %v", h, err)
			continue
		}
		if got != h {
			t.Errorf("round trip: got %+v, want %+v", got, h)
		}
	}
}

func TestHeaderKnownBytes(t *testing.T) {
	// S1: GetDeviceInfo command, no params, tid 0
	var buf [ContainerHeaderSize]byte
	encodeHeader(buf[:], Header{Len: 12, Kind: KindCommand, Code: OCGetDeviceInfo, Tid: 0})
	want := []byte{0x0C, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf[:], want) {
		t.Errorf("got % X, want % X", buf[:], want)
	}
}

func TestHeaderLenCoversPayload(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	h := Header{Len: uint32(ContainerHeaderSize + len(payload)), Kind: KindData, Code: OCGetObject, Tid: 1}
	var buf [ContainerHeaderSize]byte
	encodeHeader(buf[:], h)
	if got := binary.LittleEndian.Uint32(buf[0:4]); got != 12+uint32(len(payload)) {
		t.Errorf("Len field: got %d", got)
	}
	if h.PayloadLen() != uint32(len(payload)) {
		t.Errorf("PayloadLen: got %d", h.PayloadLen())
	}
}

func TestParseHeaderInvalidKind(t *testing.T) {
	buf := []byte{0x0C, 0x00, 0x00, 0x00, 0x09, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00}
	_, err := parseHeader(buf)
	var m *MalformedError
	if !errors.As(err, &m) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
}

func TestParseHeaderShortLen(t *testing.T) {
	// declared length smaller than the header itself
	buf := []byte{0x0B, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00}
	if _, err := parseHeader(buf); err == nil {
		t.Error("expected error for Len < header size")
	}
}

func TestParseHeaderShortBuffer(t *testing.T) {
	if _, err := parseHeader([]byte{0x0C, 0x00}); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestHeaderBelongsTo(t *testing.T) {
	h := Header{Tid: 3}
	if !h.BelongsTo(3) || h.BelongsTo(7) {
		t.Error("BelongsTo is not pure equality")
	}
}

func TestHeaderBinaryMarshaler(t *testing.T) {
	h := Header{Len: 20, Kind: KindData, Code: OCGetObject, Tid: 9}
	b, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var got Header
	if err := got.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != h {
		t.Errorf("round trip: got %+v, want %+v", got, h)
	}
}
