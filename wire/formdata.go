package wire

// FormFlag selects which variant of FormData follows a PropInfo's
// current value.
type FormFlag uint8

// Standard PTP form flags.
const (
	FormNone        FormFlag = 0
	FormRange       FormFlag = 1
	FormEnumeration FormFlag = 2
)

// FormData describes the constraint a device places on a settable
// property, decoded from the same dataType as the property's current
// value. Exactly one of Range/Enumeration is populated, selected by Flag.
type FormData struct {
	Flag        FormFlag
	Range       RangeForm
	Enumeration EnumerationForm
}

// RangeForm is FormRange's payload: Min, Max and Step are all typed values
// using the PropInfo's own dataType.
type RangeForm struct {
	Min, Max, Step Value
}

// EnumerationForm is FormEnumeration's payload: a small set of values the
// property may legally take.
type EnumerationForm struct {
	Items []Value
}

// DecodeFormData reads a FormData given the already-known datatype of the
// enclosing PropInfo. The formFlag byte itself is read here, since its
// value determines how many further bytes (if any) are consumed.
func DecodeFormData(dataType DataType, r *Reader) (FormData, error) {
	flagByte, err := r.U8()
	if err != nil {
		return FormData{}, err
	}
	flag := FormFlag(flagByte)
	switch flag {
	case FormNone:
		return FormData{Flag: flag}, nil
	case FormRange:
		min, err := DecodeByTag(dataType, r)
		if err != nil {
			return FormData{}, err
		}
		max, err := DecodeByTag(dataType, r)
		if err != nil {
			return FormData{}, err
		}
		step, err := DecodeByTag(dataType, r)
		if err != nil {
			return FormData{}, err
		}
		return FormData{Flag: flag, Range: RangeForm{Min: min, Max: max, Step: step}}, nil
	case FormEnumeration:
		count, err := r.U16()
		if err != nil {
			return FormData{}, err
		}
		items := make([]Value, count)
		for i := range items {
			v, err := DecodeByTag(dataType, r)
			if err != nil {
				return FormData{}, err
			}
			items[i] = v
		}
		return FormData{Flag: flag, Enumeration: EnumerationForm{Items: items}}, nil
	default:
		// vendor decoders reuse this path with private form flags this
		// codec cannot interpret; they are treated as no constraint, the
		// same posture DecodeByTag takes with unknown datatype tags.
		return FormData{Flag: FormNone}, nil
	}
}

// Clamp restricts candidate to [Min, Max] using the scalar interpretation
// of the range's bounds, rounding down to a multiple of Step above Min
// when Step is nonzero. It is meaningless for non-scalar datatypes
// (e.g. Str) and returns candidate unchanged in that case.
func (rf RangeForm) Clamp(candidate int64) int64 {
	switch rf.Min.Type {
	case Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64:
	default:
		return candidate
	}
	lo, hi := rf.Min.Scalar, rf.Max.Scalar
	if lo > hi {
		lo, hi = hi, lo
	}
	if candidate < lo {
		candidate = lo
	}
	if candidate > hi {
		candidate = hi
	}
	if step := rf.Step.Scalar; step > 0 {
		n := (candidate - lo) / step
		candidate = lo + n*step
	}
	return candidate
}

// Check reports whether candidate already satisfies [Min, Max] without
// adjusting it, letting a caller decide to reject an out-of-range
// SetDevicePropValue rather than silently clamp it.
func (rf RangeForm) Check(candidate int64) bool {
	lo, hi := rf.Min.Scalar, rf.Max.Scalar
	if lo > hi {
		lo, hi = hi, lo
	}
	return candidate >= lo && candidate <= hi
}
