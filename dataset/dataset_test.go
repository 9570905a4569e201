package dataset_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.jpl.nasa.gov/bdube/ptp/dataset"
	"github.jpl.nasa.gov/bdube/ptp/wire"
)

func deviceInfoBytes() ([]byte, dataset.DeviceInfo) {
	want := dataset.DeviceInfo{
		StandardVersion:     100,
		VendorExtensionID:   0x00000006,
		VendorExtensionVer:  100,
		VendorExtensionDesc: "Sony PTP Extensions",
		FunctionalMode:      0,
		OperationsSupported: []uint16{0x1001, 0x1002, 0x1003, 0x1004, 0x1009},
		EventsSupported:     []uint16{0x4002},
		PropertiesSupported: []uint16{0x5007},
		CaptureFormats:      []uint16{0x3801},
		ImageFormats:        []uint16{0x3801, 0x3811},
		Manufacturer:        "Sony Corporation",
		Model:               "ILCE-7M3",
		DeviceVersion:       "3.10",
		SerialNumber:        "00000000001234",
	}
	w := wire.NewWriter(0)
	w.U16(want.StandardVersion)
	w.U32(want.VendorExtensionID)
	w.U16(want.VendorExtensionVer)
	w.String(want.VendorExtensionDesc)
	w.U16(want.FunctionalMode)
	w.U16Array(want.OperationsSupported)
	w.U16Array(want.EventsSupported)
	w.U16Array(want.PropertiesSupported)
	w.U16Array(want.CaptureFormats)
	w.U16Array(want.ImageFormats)
	w.String(want.Manufacturer)
	w.String(want.Model)
	w.String(want.DeviceVersion)
	w.String(want.SerialNumber)
	return w.Bytes(), want
}

func TestDecodeDeviceInfo(t *testing.T) {
	buf, want := deviceInfoBytes()
	got, err := dataset.DecodeDeviceInfo(buf)
	if err != nil {
		t.Fatalf("DecodeDeviceInfo: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeviceInfo mismatch (-want +got):\n%s", diff)
	}
	if !got.SupportsOperation(0x1009) {
		t.Error("SupportsOperation(GetObject) false")
	}
	if got.SupportsOperation(0x101B) {
		t.Error("SupportsOperation(GetPartialObject) true, not advertised")
	}
	if !got.SupportsProperty(0x5007) {
		t.Error("SupportsProperty(FNumber) false")
	}
}

func TestDecodeDeviceInfoLengthSensitivity(t *testing.T) {
	buf, _ := deviceInfoBytes()

	long := append(append([]byte{}, buf...), 0x00)
	if _, err := dataset.DecodeDeviceInfo(long); !errors.Is(err, wire.ErrTrailingBytes) {
		t.Errorf("one byte too long: expected ErrTrailingBytes, got %v", err)
	}

	short := buf[:len(buf)-1]
	if _, err := dataset.DecodeDeviceInfo(short); err == nil {
		t.Error("one byte too short: expected an error")
	}
}

func storageInfoBytes() ([]byte, dataset.StorageInfo) {
	want := dataset.StorageInfo{
		StorageType:        dataset.StorageTypeRemovableRAM,
		FilesystemType:     0x0002,
		AccessCapability:   dataset.AccessReadWrite,
		MaxCapacity:        64 << 30,
		FreeSpaceBytes:     32 << 30,
		FreeSpaceImages:    0xFFFFFFFF,
		StorageDescription: "Memory Card",
		VolumeLabel:        "SD1",
	}
	w := wire.NewWriter(0)
	w.U16(want.StorageType)
	w.U16(want.FilesystemType)
	w.U16(want.AccessCapability)
	w.U64(want.MaxCapacity)
	w.U64(want.FreeSpaceBytes)
	w.U32(want.FreeSpaceImages)
	w.String(want.StorageDescription)
	w.String(want.VolumeLabel)
	return w.Bytes(), want
}

func TestDecodeStorageInfo(t *testing.T) {
	buf, want := storageInfoBytes()
	got, err := dataset.DecodeStorageInfo(buf)
	if err != nil {
		t.Fatalf("DecodeStorageInfo: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StorageInfo mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeStorageInfoLengthSensitivity(t *testing.T) {
	buf, _ := storageInfoBytes()
	long := append(append([]byte{}, buf...), 0x00)
	if _, err := dataset.DecodeStorageInfo(long); !errors.Is(err, wire.ErrTrailingBytes) {
		t.Errorf("one byte too long: expected ErrTrailingBytes, got %v", err)
	}
	if _, err := dataset.DecodeStorageInfo(buf[:len(buf)-1]); err == nil {
		t.Error("one byte too short: expected an error")
	}
}

func objectInfoBytes() ([]byte, dataset.ObjectInfo) {
	want := dataset.ObjectInfo{
		StorageID:            0x00010001,
		ObjectFormat:         0x3801, // EXIF/JPEG
		ProtectionStatus:     0,
		ObjectCompressedSize: 4 << 20,
		ThumbFormat:          0x3808,
		ThumbCompressedSize:  8192,
		ThumbPixWidth:        160,
		ThumbPixHeight:       120,
		ImagePixWidth:        6000,
		ImagePixHeight:       4000,
		ImageBitDepth:        24,
		ParentObject:         0x00000002,
		AssociationType:      dataset.AssociationUndefined,
		AssociationDesc:      0,
		SequenceNumber:       0,
		Filename:             "DSC01234.JPG",
		CaptureDate:          "20260801T120000",
		ModificationDate:     "20260801T120005",
		Keywords:             "",
	}
	w := wire.NewWriter(0)
	w.U32(want.StorageID)
	w.U16(want.ObjectFormat)
	w.U16(want.ProtectionStatus)
	w.U32(want.ObjectCompressedSize)
	w.U16(want.ThumbFormat)
	w.U32(want.ThumbCompressedSize)
	w.U32(want.ThumbPixWidth)
	w.U32(want.ThumbPixHeight)
	w.U32(want.ImagePixWidth)
	w.U32(want.ImagePixHeight)
	w.U32(want.ImageBitDepth)
	w.U32(want.ParentObject)
	w.U16(want.AssociationType)
	w.U32(want.AssociationDesc)
	w.U32(want.SequenceNumber)
	w.String(want.Filename)
	w.String(want.CaptureDate)
	w.String(want.ModificationDate)
	w.String(want.Keywords)
	return w.Bytes(), want
}

func TestDecodeObjectInfo(t *testing.T) {
	buf, want := objectInfoBytes()
	got, err := dataset.DecodeObjectInfo(buf)
	if err != nil {
		t.Fatalf("DecodeObjectInfo: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ObjectInfo mismatch (-want +got):\n%s", diff)
	}
	if got.IsAssociation() {
		t.Error("JPEG object reported as association")
	}
}

func TestDecodeObjectInfoLengthSensitivity(t *testing.T) {
	buf, _ := objectInfoBytes()
	long := append(append([]byte{}, buf...), 0x00)
	if _, err := dataset.DecodeObjectInfo(long); !errors.Is(err, wire.ErrTrailingBytes) {
		t.Errorf("one byte too long: expected ErrTrailingBytes, got %v", err)
	}
	if _, err := dataset.DecodeObjectInfo(buf[:len(buf)-1]); err == nil {
		t.Error("one byte too short: expected an error")
	}
}

func TestParseCaptureDate(t *testing.T) {
	o := dataset.ObjectInfo{CaptureDate: "20260801T120000"}
	tm, err := o.ParseCaptureDate()
	if err != nil {
		t.Fatalf("ParseCaptureDate: %v", err)
	}
	if tm.Year() != 2026 || tm.Month() != 8 || tm.Day() != 1 || tm.Hour() != 12 {
		t.Errorf("parsed wrong time: %v", tm)
	}

	// fractional seconds and offset suffixes are tolerated by truncation
	o.CaptureDate = "20260801T120000.5"
	if _, err := o.ParseCaptureDate(); err != nil {
		t.Errorf("fractional suffix: %v", err)
	}

	o.CaptureDate = ""
	if _, err := o.ParseCaptureDate(); err == nil {
		t.Error("empty date should error when parsed")
	}

	o.CaptureDate = "not a date"
	if _, err := o.ParseCaptureDate(); err == nil {
		t.Error("garbage date should error when parsed")
	}
}

func TestDecodeObjectInfoBadDateDoesNotFailDecode(t *testing.T) {
	buf, want := objectInfoBytes()
	// rewrite the dataset with a garbage capture date; the decode itself
	// must still succeed because the field is kept raw
	want.CaptureDate = "camera says what"
	w := wire.NewWriter(len(buf))
	w.U32(want.StorageID)
	w.U16(want.ObjectFormat)
	w.U16(want.ProtectionStatus)
	w.U32(want.ObjectCompressedSize)
	w.U16(want.ThumbFormat)
	w.U32(want.ThumbCompressedSize)
	w.U32(want.ThumbPixWidth)
	w.U32(want.ThumbPixHeight)
	w.U32(want.ImagePixWidth)
	w.U32(want.ImagePixHeight)
	w.U32(want.ImageBitDepth)
	w.U32(want.ParentObject)
	w.U16(want.AssociationType)
	w.U32(want.AssociationDesc)
	w.U32(want.SequenceNumber)
	w.String(want.Filename)
	w.String(want.CaptureDate)
	w.String(want.ModificationDate)
	w.String(want.Keywords)

	got, err := dataset.DecodeObjectInfo(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeObjectInfo: %v", err)
	}
	if got.CaptureDate != "camera says what" {
		t.Errorf("raw date not preserved: %q", got.CaptureDate)
	}
	if _, err := got.ParseCaptureDate(); err == nil {
		t.Error("expected ParseCaptureDate to fail on garbage")
	}
}
