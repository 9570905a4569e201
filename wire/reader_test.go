package wire_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.jpl.nasa.gov/bdube/ptp/wire"
)

func TestReaderPrimitives(t *testing.T) {
	buf := []byte{
		0xFF,                                           // u8
		0x80,                                           // i8 = -128
		0x34, 0x12,                                     // u16
		0xFF, 0xFF,                                     // i16 = -1
		0x78, 0x56, 0x34, 0x12,                         // u32
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01, // u64
	}
	r := wire.NewReader(buf)

	if v, err := r.U8(); err != nil || v != 0xFF {
		t.Errorf("U8: got %v, %v", v, err)
	}
	if v, err := r.I8(); err != nil || v != -128 {
		t.Errorf("I8: got %v, %v", v, err)
	}
	if v, err := r.U16(); err != nil || v != 0x1234 {
		t.Errorf("U16: got %#04x, %v", v, err)
	}
	if v, err := r.I16(); err != nil || v != -1 {
		t.Errorf("I16: got %v, %v", v, err)
	}
	if v, err := r.U32(); err != nil || v != 0x12345678 {
		t.Errorf("U32: got %#08x, %v", v, err)
	}
	if v, err := r.U64(); err != nil || v != 0x0123456789ABCDEF {
		t.Errorf("U64: got %#016x, %v", v, err)
	}
	if err := r.ExpectEnd(); err != nil {
		t.Errorf("ExpectEnd after full consumption: %v", err)
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := wire.NewReader([]byte{0x01, 0x02})
	if _, err := r.U32(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderString(t *testing.T) {
	// "ABC" per the wire format: u8 count 4, three code units, trailing NUL
	buf := []byte{0x04, 0x41, 0x00, 0x42, 0x00, 0x43, 0x00, 0x00, 0x00}
	r := wire.NewReader(buf)
	s, err := r.String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if s != "ABC" {
		t.Errorf("expected ABC, got %q", s)
	}
	if err := r.ExpectEnd(); err != nil {
		t.Errorf("ExpectEnd: %v", err)
	}
}

func TestReaderStringEmpty(t *testing.T) {
	r := wire.NewReader([]byte{0x00})
	s, err := r.String()
	if err != nil || s != "" {
		t.Errorf("empty string: got %q, %v", s, err)
	}
	if err := r.ExpectEnd(); err != nil {
		t.Errorf("ExpectEnd: %v", err)
	}
}

func TestReaderStringTerminatorNotValidated(t *testing.T) {
	// trailing code unit is 0xFFFF instead of NUL; per the format contract
	// its presence is consumed but its value is not checked
	buf := []byte{0x02, 0x41, 0x00, 0xFF, 0xFF}
	s, err := wire.NewReader(buf).String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if s != "A" {
		t.Errorf("expected A, got %q", s)
	}
}

func TestReaderStringInvalidUTF16(t *testing.T) {
	// a lone high surrogate is not valid UTF-16
	buf := []byte{0x02, 0x00, 0xD8, 0x00, 0x00}
	_, err := wire.NewReader(buf).String()
	if !errors.Is(err, wire.ErrInvalidUTF16) {
		t.Errorf("expected ErrInvalidUTF16, got %v", err)
	}
}

func TestReaderStringTruncated(t *testing.T) {
	buf := []byte{0x04, 0x41, 0x00}
	_, err := wire.NewReader(buf).String()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderU32Array(t *testing.T) {
	// S4: two elements, 10 and 20
	buf := []byte{
		0x02, 0x00, 0x00, 0x00,
		0x0A, 0x00, 0x00, 0x00,
		0x14, 0x00, 0x00, 0x00,
	}
	r := wire.NewReader(buf)
	vs, err := r.U32Array()
	if err != nil {
		t.Fatalf("U32Array: %v", err)
	}
	if len(vs) != 2 || vs[0] != 10 || vs[1] != 20 {
		t.Errorf("expected [10 20], got %v", vs)
	}
	if err := r.ExpectEnd(); err != nil {
		t.Errorf("ExpectEnd: %v", err)
	}
}

func TestReaderExpectEndResidual(t *testing.T) {
	r := wire.NewReader([]byte{0x01, 0x02})
	if _, err := r.U8(); err != nil {
		t.Fatalf("U8: %v", err)
	}
	err := r.ExpectEnd()
	if !errors.Is(err, wire.ErrTrailingBytes) {
		t.Errorf("expected ErrTrailingBytes, got %v", err)
	}
}

func TestReaderU128(t *testing.T) {
	buf := make([]byte, 16)
	buf[0] = 0xEF
	buf[1] = 0xBE
	buf[2] = 0xAD
	buf[3] = 0xDE
	v, err := wire.NewReader(buf).U128()
	if err != nil {
		t.Fatalf("U128: %v", err)
	}
	if v.Low64() != 0xDEADBEEF {
		t.Errorf("Low64: got %#x", v.Low64())
	}
}

func ExampleReader_String() {
	buf := []byte{0x04, 0x41, 0x00, 0x42, 0x00, 0x43, 0x00, 0x00, 0x00}
	s, _ := wire.NewReader(buf).String()
	fmt.Println(s)
	// Output: ABC
}
