/*Package dataset decodes the standard PTP datasets -- DeviceInfo,
StorageInfo, ObjectInfo, PropInfo, and the vendor PropInfoSony variant --
from the raw byte payloads the transaction engine hands back. It builds
entirely on top of the wire package's cursor and datatype codec and has
no knowledge of USB or transactions.
*/
package dataset

import "github.jpl.nasa.gov/bdube/ptp/wire"

// DeviceInfo is the dataset returned by GetDeviceInfo (opcode 0x1001):
// the device's identity and the operation/event/property/format codes it
// claims to support.
type DeviceInfo struct {
	StandardVersion     uint16
	VendorExtensionID   uint32
	VendorExtensionVer  uint16
	VendorExtensionDesc string
	FunctionalMode      uint16
	OperationsSupported []uint16
	EventsSupported     []uint16
	PropertiesSupported []uint16
	CaptureFormats      []uint16
	ImageFormats        []uint16
	Manufacturer        string
	Model               string
	DeviceVersion       string
	SerialNumber        string
}

// DecodeDeviceInfo decodes a DeviceInfo from buf, which must hold exactly
// one DeviceInfo dataset and nothing else.
func DecodeDeviceInfo(buf []byte) (DeviceInfo, error) {
	r := wire.NewReader(buf)
	var d DeviceInfo
	var err error

	if d.StandardVersion, err = r.U16(); err != nil {
		return DeviceInfo{}, err
	}
	if d.VendorExtensionID, err = r.U32(); err != nil {
		return DeviceInfo{}, err
	}
	if d.VendorExtensionVer, err = r.U16(); err != nil {
		return DeviceInfo{}, err
	}
	if d.VendorExtensionDesc, err = r.String(); err != nil {
		return DeviceInfo{}, err
	}
	if d.FunctionalMode, err = r.U16(); err != nil {
		return DeviceInfo{}, err
	}
	if d.OperationsSupported, err = r.U16Array(); err != nil {
		return DeviceInfo{}, err
	}
	if d.EventsSupported, err = r.U16Array(); err != nil {
		return DeviceInfo{}, err
	}
	if d.PropertiesSupported, err = r.U16Array(); err != nil {
		return DeviceInfo{}, err
	}
	if d.CaptureFormats, err = r.U16Array(); err != nil {
		return DeviceInfo{}, err
	}
	if d.ImageFormats, err = r.U16Array(); err != nil {
		return DeviceInfo{}, err
	}
	if d.Manufacturer, err = r.String(); err != nil {
		return DeviceInfo{}, err
	}
	if d.Model, err = r.String(); err != nil {
		return DeviceInfo{}, err
	}
	if d.DeviceVersion, err = r.String(); err != nil {
		return DeviceInfo{}, err
	}
	if d.SerialNumber, err = r.String(); err != nil {
		return DeviceInfo{}, err
	}
	if err := r.ExpectEnd(); err != nil {
		return DeviceInfo{}, err
	}
	return d, nil
}

// SupportsOperation reports whether code appears in OperationsSupported.
func (d DeviceInfo) SupportsOperation(code uint16) bool {
	for _, c := range d.OperationsSupported {
		if c == code {
			return true
		}
	}
	return false
}

// SupportsProperty reports whether code appears in PropertiesSupported.
func (d DeviceInfo) SupportsProperty(code uint16) bool {
	for _, c := range d.PropertiesSupported {
		if c == code {
			return true
		}
	}
	return false
}
