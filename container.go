package ptp

import "encoding/binary"

// ContainerHeaderSize is the fixed size of the PTP generic container
// header that precedes every phase's payload on the wire.
const ContainerHeaderSize = 12

// Kind is the container type field of a PTP generic container header.
type Kind uint16

// Standard PTP container kinds.
const (
	KindCommand  Kind = 1
	KindData     Kind = 2
	KindResponse Kind = 3
	KindEvent    Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "Command"
	case KindData:
		return "Data"
	case KindResponse:
		return "Response"
	case KindEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// Header is the 12-byte PTP generic container header. Len is the total
// container length, including these 12 bytes.
type Header struct {
	Len  uint32
	Kind Kind
	Code uint16
	Tid  uint32
}

// BelongsTo reports whether the header's transaction ID matches tid. It
// is pure equality; the engine uses it to detect a stray container from a
// different (and necessarily wrong) transaction.
func (h Header) BelongsTo(tid uint32) bool {
	return h.Tid == tid
}

// PayloadLen returns the declared payload size, i.e. Len minus the header
// itself. Callers must check ParseHeader's error before trusting this --
// ParseHeader already rejects a Len smaller than ContainerHeaderSize.
func (h Header) PayloadLen() uint32 {
	return h.Len - ContainerHeaderSize
}

// encodeHeader writes h's 12 bytes into buf, which must be at least
// ContainerHeaderSize long. It returns the number of bytes written.
func encodeHeader(buf []byte, h Header) int {
	binary.LittleEndian.PutUint32(buf[0:4], h.Len)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(h.Kind))
	binary.LittleEndian.PutUint16(buf[6:8], h.Code)
	binary.LittleEndian.PutUint32(buf[8:12], h.Tid)
	return ContainerHeaderSize
}

// parseHeader reads a Header from the first ContainerHeaderSize bytes of
// buf. It verifies Kind is one of the four standard kinds and that Len is
// at least the header size; any other field value is the caller's to
// judge (e.g. an unrecognized Code is not a framing error).
func parseHeader(buf []byte) (Header, error) {
	if len(buf) < ContainerHeaderSize {
		return Header{}, Malformed("short container header: %d bytes", len(buf))
	}
	h := Header{
		Len:  binary.LittleEndian.Uint32(buf[0:4]),
		Kind: Kind(binary.LittleEndian.Uint16(buf[4:6])),
		Code: binary.LittleEndian.Uint16(buf[6:8]),
		Tid:  binary.LittleEndian.Uint32(buf[8:12]),
	}
	switch h.Kind {
	case KindCommand, KindData, KindResponse, KindEvent:
	default:
		return Header{}, Malformed("invalid container kind 0x%04X", uint16(h.Kind))
	}
	if h.Len < ContainerHeaderSize {
		return Header{}, Malformed("container length %d shorter than header", h.Len)
	}
	return h, nil
}

// MarshalBinary implements encoding.BinaryMarshaler. It is offered as a
// convenience for callers that want to treat a Header as an opaque
// encoding.BinaryMarshaler (e.g. to hex-dump it for logging); the
// transaction engine itself calls encodeHeader directly to avoid the
// per-call allocation this indirection costs.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ContainerHeaderSize)
	encodeHeader(buf, h)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(data []byte) error {
	parsed, err := parseHeader(data)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
