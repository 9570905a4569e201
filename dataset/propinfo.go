package dataset

import "github.jpl.nasa.gov/bdube/ptp/wire"

// GetSet values for PropInfo.GetSet.
const (
	PropGetOnly   uint8 = 0x00
	PropGetAndSet uint8 = 0x01
)

// PropInfo is the dataset returned by GetDevicePropDesc (opcode 0x1014):
// a device property's datatype, mutability, default/current value, and
// the constraint (FormData) the device places on settable values.
type PropInfo struct {
	PropertyCode   uint16
	DataType       wire.DataType
	GetSet         uint8
	FactoryDefault wire.Value
	Current        wire.Value
	Form           wire.FormData
}

// DecodePropInfo decodes a PropInfo from buf, which must hold exactly one
// PropInfo dataset and nothing else. The DataType field is read first and
// used to decode every typed value (FactoryDefault, Current, and any
// FormData range/enumeration members) that follows.
func DecodePropInfo(buf []byte) (PropInfo, error) {
	r := wire.NewReader(buf)
	var p PropInfo
	var err error

	if p.PropertyCode, err = r.U16(); err != nil {
		return PropInfo{}, err
	}
	dt, err := r.U16()
	if err != nil {
		return PropInfo{}, err
	}
	p.DataType = wire.DataType(dt)

	if p.GetSet, err = r.U8(); err != nil {
		return PropInfo{}, err
	}
	if p.FactoryDefault, err = wire.DecodeByTag(p.DataType, r); err != nil {
		return PropInfo{}, err
	}
	if p.Current, err = wire.DecodeByTag(p.DataType, r); err != nil {
		return PropInfo{}, err
	}
	if p.Form, err = wire.DecodeFormData(p.DataType, r); err != nil {
		return PropInfo{}, err
	}
	if err := r.ExpectEnd(); err != nil {
		return PropInfo{}, err
	}
	return p, nil
}

// Settable reports whether the device advertises this property as
// writable via SetDevicePropValue.
func (p PropInfo) Settable() bool {
	return p.GetSet == PropGetAndSet
}
