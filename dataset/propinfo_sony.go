package dataset

import "github.jpl.nasa.gov/bdube/ptp/wire"

// PropInfoSony is Sony's vendor extension of PropInfo: identical to the
// standard dataset except for an extra u8 IsEnable field inserted between
// GetSet and FactoryDefault. Vendor overlays slot in like this one does,
// as sibling decoders reusing the same datatype codec, not as mutations
// of PropInfo itself.
type PropInfoSony struct {
	PropertyCode   uint16
	DataType       wire.DataType
	GetSet         uint8
	IsEnable       uint8
	FactoryDefault wire.Value
	Current        wire.Value
	Form           wire.FormData
}

// DecodePropInfoSony decodes a PropInfoSony from buf.
func DecodePropInfoSony(buf []byte) (PropInfoSony, error) {
	r := wire.NewReader(buf)
	var p PropInfoSony
	var err error

	if p.PropertyCode, err = r.U16(); err != nil {
		return PropInfoSony{}, err
	}
	dt, err := r.U16()
	if err != nil {
		return PropInfoSony{}, err
	}
	p.DataType = wire.DataType(dt)

	if p.GetSet, err = r.U8(); err != nil {
		return PropInfoSony{}, err
	}
	if p.IsEnable, err = r.U8(); err != nil {
		return PropInfoSony{}, err
	}
	if p.FactoryDefault, err = wire.DecodeByTag(p.DataType, r); err != nil {
		return PropInfoSony{}, err
	}
	if p.Current, err = wire.DecodeByTag(p.DataType, r); err != nil {
		return PropInfoSony{}, err
	}
	if p.Form, err = wire.DecodeFormData(p.DataType, r); err != nil {
		return PropInfoSony{}, err
	}
	if err := r.ExpectEnd(); err != nil {
		return PropInfoSony{}, err
	}
	return p, nil
}

// Settable reports whether the device advertises this property as
// writable via SetDevicePropValue.
func (p PropInfoSony) Settable() bool {
	return p.GetSet == PropGetAndSet
}
