package dataset

import (
	"fmt"
	"time"

	"github.jpl.nasa.gov/bdube/ptp/wire"
)

// ObjectInfo is the dataset returned by GetObjectInfo (opcode 0x1008):
// the metadata PTP maintains for one object (image, thumbnail, or
// association/folder) on a storage volume. Field order below is
// normative per the ISO 15740 ObjectInfo Dataset table.
type ObjectInfo struct {
	StorageID            uint32
	ObjectFormat         uint16
	ProtectionStatus     uint16
	ObjectCompressedSize uint32
	ThumbFormat          uint16
	ThumbCompressedSize  uint32
	ThumbPixWidth        uint32
	ThumbPixHeight       uint32
	ImagePixWidth        uint32
	ImagePixHeight       uint32
	ImageBitDepth        uint32
	ParentObject         uint32
	AssociationType      uint16
	AssociationDesc      uint32
	SequenceNumber       uint32
	Filename             string

	// CaptureDate and ModificationDate are PTP DateTime strings
	// (YYYYMMDDTHHMMSS[.s][UTC-offset], ISO 15740 §5.5.2), kept raw since
	// a noncompliant device's malformed or absent date string must not
	// fail the whole decode. Use ParseCaptureDate/ParseModificationDate
	// to interpret them.
	CaptureDate      string
	ModificationDate string

	Keywords string
}

// Association types (PTP §5.2.3), relevant to ParentObject/AssociationType
// when ObjectFormat is an association (folder).
const (
	AssociationUndefined        uint16 = 0x0000
	AssociationGenericFolder    uint16 = 0x0001
	AssociationDefaultHierarchy uint16 = 0x0002
)

// RootParent is the ParentObject value reserved for objects stored at
// the root of their storage, and the value GetObjectHandles/GetNumObjects
// accept to mean "objects directly at the root" rather than "any parent".
const RootParent uint32 = 0xFFFFFFFF

// ptpDateLayout is the ISO 15740 §5.5.2 DateTime format without a
// fractional-second or UTC-offset suffix, which this decoder does not
// attempt to parse generically -- devices observed in practice omit both.
const ptpDateLayout = "20060102T150405"

// DecodeObjectInfo decodes an ObjectInfo from buf, which must hold
// exactly one ObjectInfo dataset and nothing else.
func DecodeObjectInfo(buf []byte) (ObjectInfo, error) {
	r := wire.NewReader(buf)
	var o ObjectInfo
	var err error

	if o.StorageID, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ObjectFormat, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ProtectionStatus, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ObjectCompressedSize, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ThumbFormat, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ThumbCompressedSize, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ThumbPixWidth, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ThumbPixHeight, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ImagePixWidth, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ImagePixHeight, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ImageBitDepth, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ParentObject, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.AssociationType, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	if o.AssociationDesc, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.SequenceNumber, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if o.Filename, err = r.String(); err != nil {
		return ObjectInfo{}, err
	}
	if o.CaptureDate, err = r.String(); err != nil {
		return ObjectInfo{}, err
	}
	if o.ModificationDate, err = r.String(); err != nil {
		return ObjectInfo{}, err
	}
	if o.Keywords, err = r.String(); err != nil {
		return ObjectInfo{}, err
	}
	if err := r.ExpectEnd(); err != nil {
		return ObjectInfo{}, err
	}
	return o, nil
}

// ParseCaptureDate parses CaptureDate as a PTP DateTime string. It
// returns an error only when called on a string that fails to parse --
// decoding the enclosing ObjectInfo never fails because of this field.
func (o ObjectInfo) ParseCaptureDate() (time.Time, error) {
	return parsePTPDate(o.CaptureDate)
}

// ParseModificationDate parses ModificationDate the same way
// ParseCaptureDate parses CaptureDate.
func (o ObjectInfo) ParseModificationDate() (time.Time, error) {
	return parsePTPDate(o.ModificationDate)
}

func parsePTPDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("dataset: empty PTP date string")
	}
	if len(s) > len(ptpDateLayout) {
		s = s[:len(ptpDateLayout)]
	}
	t, err := time.Parse(ptpDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("dataset: invalid PTP date %q: %w", s, err)
	}
	return t, nil
}

// IsAssociation reports whether this object is an association (folder)
// rather than a leaf object.
func (o ObjectInfo) IsAssociation() bool {
	return o.AssociationType != AssociationUndefined
}
