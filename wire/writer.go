package wire

import (
	"encoding/binary"
	"unicode/utf16"
)

// Writer accumulates a PTP-encoded byte buffer. It is the encode-side
// counterpart to Reader and is used by the datatype codec and by tests
// that need to build dataset payloads byte-for-byte.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer. size is a hint for the initial
// capacity, not a hard limit.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// U8 appends an unsigned 8 bit integer.
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// I8 appends a signed 8 bit integer.
func (w *Writer) I8(v int8) {
	w.U8(uint8(v))
}

// U16 appends a little-endian unsigned 16 bit integer.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// I16 appends a little-endian signed 16 bit integer.
func (w *Writer) I16(v int16) {
	w.U16(uint16(v))
}

// U32 appends a little-endian unsigned 32 bit integer.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// I32 appends a little-endian signed 32 bit integer.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// U64 appends a little-endian unsigned 64 bit integer.
func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// I64 appends a little-endian signed 64 bit integer.
func (w *Writer) I64(v int64) {
	w.U64(uint64(v))
}

// U128 appends a raw 128 bit value, as received from a Reader.
func (w *Writer) U128(v U128) {
	w.buf = append(w.buf, v[:]...)
}

// String appends a PTP string: u8 length prefix (in UTF-16 code units,
// including the trailing NUL), then the UTF-16LE code units themselves,
// then the NUL terminator. The empty string is a single zero byte.
func (w *Writer) String(s string) {
	units := utf16.Encode([]rune(s))
	if len(units) == 0 {
		w.U8(0)
		return
	}
	n := len(units) + 1 // +1 for the trailing NUL this format always appends
	w.U8(uint8(n))
	for _, u := range units {
		w.U16(u)
	}
	w.U16(0x0000)
}

// U16Array appends a u32 count followed by each element.
func (w *Writer) U16Array(vs []uint16) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.U16(v)
	}
}

// U32Array appends a u32 count followed by each element.
func (w *Writer) U32Array(vs []uint32) {
	w.U32(uint32(len(vs)))
	for _, v := range vs {
		w.U32(v)
	}
}
