package wire

import "fmt"

// DataType is one of the PTP datatype codes used to tag the width/shape of
// a typed value inside a PropInfo or device property payload. The tag
// itself is never written by a container payload (it travels out of band,
// e.g. as PropInfo.DataType) -- only the value's raw encoding is.
type DataType uint16

// Standard PTP datatype codes. Scalars occupy
// 0x0001-0x000A, their array counterparts occupy 0x4001-0x400A by adding
// 0x4000, 0xFFFF is a string, and 0x0000 is Undef.
const (
	Undef DataType = 0x0000

	Int8    DataType = 0x0001
	UInt8   DataType = 0x0002
	Int16   DataType = 0x0003
	UInt16  DataType = 0x0004
	Int32   DataType = 0x0005
	UInt32  DataType = 0x0006
	Int64   DataType = 0x0007
	UInt64  DataType = 0x0008
	Int128  DataType = 0x0009
	UInt128 DataType = 0x000A

	AInt8    DataType = 0x4001
	AUInt8   DataType = 0x4002
	AInt16   DataType = 0x4003
	AUInt16  DataType = 0x4004
	AInt32   DataType = 0x4005
	AUInt32  DataType = 0x4006
	AInt64   DataType = 0x4007
	AUInt64  DataType = 0x4008
	AInt128  DataType = 0x4009
	AUInt128 DataType = 0x400A

	Str DataType = 0xFFFF
)

var dataTypeNames = map[DataType]string{
	Undef:    "UNDEF",
	Int8:     "INT8",
	UInt8:    "UINT8",
	Int16:    "INT16",
	UInt16:   "UINT16",
	Int32:    "INT32",
	UInt32:   "UINT32",
	Int64:    "INT64",
	UInt64:   "UINT64",
	Int128:   "INT128",
	UInt128:  "UINT128",
	AInt8:    "AINT8",
	AUInt8:   "AUINT8",
	AInt16:   "AINT16",
	AUInt16:  "AUINT16",
	AInt32:   "AINT32",
	AUInt32:  "AUINT32",
	AInt64:   "AINT64",
	AUInt64:  "AUINT64",
	AInt128:  "AINT128",
	AUInt128: "AUINT128",
	Str:      "STR",
}

// String renders the datatype's symbolic name, or its raw hex value if it
// is a vendor or otherwise unrecognized tag.
func (d DataType) String() string {
	if s, ok := dataTypeNames[d]; ok {
		return s
	}
	return fmt.Sprintf("0x%04X", uint16(d))
}

// Value is a decoded typed value: exactly one of the fields below is
// meaningful, selected by Type. Using a single struct rather than
// interface{} keeps decode allocation-free for the scalar case and keeps
// equality comparisons (as used in tests) straightforward.
type Value struct {
	Type DataType

	Scalar int64  // valid for all signed/unsigned scalar types up to 64 bits, sign-extended/zero-extended as appropriate
	Wide   U128   // valid for Int128/UInt128
	Str    string // valid for Str

	AInt8s   []int8
	AUInt8s  []uint8
	AInt16s  []int16
	AUInt16s []uint16
	AInt32s  []int32
	AUInt32s []uint32
	AInt64s  []int64
	AUInt64s []uint64
	AWides   []U128 // valid for AInt128/AUInt128
}

// AsUint64 returns the scalar interpreted as unsigned, for callers that
// know the field is one of the unsigned types (e.g. a StorageID or
// ObjectHandle read back through the generic property path).
func (v Value) AsUint64() uint64 {
	return uint64(v.Scalar)
}

// DecodeByTag reads one value of the given datatype from r. Unknown tags
// (vendor datatypes the table above does not list) decode to a Value with
// Type==Undef and consume no bytes -- not an error, because vendor
// extensions are free to invent private tags that this codec simply
// cannot interpret.
func DecodeByTag(tag DataType, r *Reader) (Value, error) {
	switch tag {
	case Int8:
		v, err := r.I8()
		return Value{Type: tag, Scalar: int64(v)}, err
	case UInt8:
		v, err := r.U8()
		return Value{Type: tag, Scalar: int64(v)}, err
	case Int16:
		v, err := r.I16()
		return Value{Type: tag, Scalar: int64(v)}, err
	case UInt16:
		v, err := r.U16()
		return Value{Type: tag, Scalar: int64(v)}, err
	case Int32:
		v, err := r.I32()
		return Value{Type: tag, Scalar: int64(v)}, err
	case UInt32:
		v, err := r.U32()
		return Value{Type: tag, Scalar: int64(v)}, err
	case Int64:
		v, err := r.I64()
		return Value{Type: tag, Scalar: v}, err
	case UInt64:
		v, err := r.U64()
		return Value{Type: tag, Scalar: int64(v)}, err
	case Int128:
		v, err := r.I128()
		return Value{Type: tag, Wide: v}, err
	case UInt128:
		v, err := r.U128()
		return Value{Type: tag, Wide: v}, err
	case Str:
		v, err := r.String()
		return Value{Type: tag, Str: v}, err
	case AInt8:
		n, err := r.U32()
		if err != nil {
			return Value{}, err
		}
		out := make([]int8, n)
		for i := range out {
			b, err := r.I8()
			if err != nil {
				return Value{}, err
			}
			out[i] = b
		}
		return Value{Type: tag, AInt8s: out}, nil
	case AUInt8:
		n, err := r.U32()
		if err != nil {
			return Value{}, err
		}
		out := make([]uint8, n)
		for i := range out {
			b, err := r.U8()
			if err != nil {
				return Value{}, err
			}
			out[i] = b
		}
		return Value{Type: tag, AUInt8s: out}, nil
	case AInt16:
		n, err := r.U32()
		if err != nil {
			return Value{}, err
		}
		out := make([]int16, n)
		for i := range out {
			v, err := r.I16()
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return Value{Type: tag, AInt16s: out}, nil
	case AUInt16:
		out, err := r.U16Array()
		return Value{Type: tag, AUInt16s: out}, err
	case AInt32:
		n, err := r.U32()
		if err != nil {
			return Value{}, err
		}
		out := make([]int32, n)
		for i := range out {
			v, err := r.I32()
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return Value{Type: tag, AInt32s: out}, nil
	case AUInt32:
		out, err := r.U32Array()
		return Value{Type: tag, AUInt32s: out}, err
	case AInt64:
		n, err := r.U32()
		if err != nil {
			return Value{}, err
		}
		out := make([]int64, n)
		for i := range out {
			v, err := r.I64()
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return Value{Type: tag, AInt64s: out}, nil
	case AUInt64:
		n, err := r.U32()
		if err != nil {
			return Value{}, err
		}
		out := make([]uint64, n)
		for i := range out {
			v, err := r.U64()
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return Value{Type: tag, AUInt64s: out}, nil
	case AInt128, AUInt128:
		n, err := r.U32()
		if err != nil {
			return Value{}, err
		}
		out := make([]U128, n)
		for i := range out {
			v, err := r.U128()
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return Value{Type: tag, AWides: out}, nil
	default:
		return Value{Type: Undef}, nil
	}
}

// Encode writes v's payload only -- no datatype tag prefix, since the tag
// travels alongside the value (e.g. as PropInfo.DataType) rather than
// inline with it, mirroring DecodeByTag's split of tag from bytes.
func Encode(w *Writer, v Value) error {
	switch v.Type {
	case Int8:
		w.I8(int8(v.Scalar))
	case UInt8:
		w.U8(uint8(v.Scalar))
	case Int16:
		w.I16(int16(v.Scalar))
	case UInt16:
		w.U16(uint16(v.Scalar))
	case Int32:
		w.I32(int32(v.Scalar))
	case UInt32:
		w.U32(uint32(v.Scalar))
	case Int64:
		w.I64(v.Scalar)
	case UInt64:
		w.U64(uint64(v.Scalar))
	case Int128, UInt128:
		w.U128(v.Wide)
	case Str:
		w.String(v.Str)
	case AInt8:
		w.U32(uint32(len(v.AInt8s)))
		for _, b := range v.AInt8s {
			w.I8(b)
		}
	case AUInt8:
		w.U32(uint32(len(v.AUInt8s)))
		for _, b := range v.AUInt8s {
			w.U8(b)
		}
	case AInt16:
		w.U32(uint32(len(v.AInt16s)))
		for _, b := range v.AInt16s {
			w.I16(b)
		}
	case AUInt16:
		w.U16Array(v.AUInt16s)
	case AInt32:
		w.U32(uint32(len(v.AInt32s)))
		for _, b := range v.AInt32s {
			w.I32(b)
		}
	case AUInt32:
		w.U32Array(v.AUInt32s)
	case AInt64:
		w.U32(uint32(len(v.AInt64s)))
		for _, b := range v.AInt64s {
			w.I64(b)
		}
	case AUInt64:
		w.U32(uint32(len(v.AUInt64s)))
		for _, b := range v.AUInt64s {
			w.U64(b)
		}
	case AInt128, AUInt128:
		w.U32(uint32(len(v.AWides)))
		for _, b := range v.AWides {
			w.U128(b)
		}
	case Undef:
		// nothing to write; an Undef value carries no payload of its own
	default:
		return fmt.Errorf("wire: cannot encode unknown datatype %s", v.Type)
	}
	return nil
}
