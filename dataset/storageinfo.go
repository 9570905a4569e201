package dataset

import "github.jpl.nasa.gov/bdube/ptp/wire"

// StorageInfo is the dataset returned by GetStorageInfo (opcode 0x1005)
// for one storage ID returned by GetStorageIDs.
type StorageInfo struct {
	StorageType        uint16
	FilesystemType     uint16
	AccessCapability   uint16
	MaxCapacity        uint64
	FreeSpaceBytes     uint64
	FreeSpaceImages    uint32
	StorageDescription string
	VolumeLabel        string
}

// Standard storage types (PTP §5.2.1).
const (
	StorageTypeUndefined    uint16 = 0x0000
	StorageTypeFixedROM     uint16 = 0x0001
	StorageTypeRemovableROM uint16 = 0x0002
	StorageTypeFixedRAM     uint16 = 0x0003
	StorageTypeRemovableRAM uint16 = 0x0004
)

// Standard access capabilities (PTP §5.2.3).
const (
	AccessReadWrite                 uint16 = 0x0000
	AccessReadOnly                  uint16 = 0x0001
	AccessReadOnlyWithDeleteAllowed uint16 = 0x0002
)

// DecodeStorageInfo decodes a StorageInfo from buf, which must hold
// exactly one StorageInfo dataset and nothing else.
func DecodeStorageInfo(buf []byte) (StorageInfo, error) {
	r := wire.NewReader(buf)
	var s StorageInfo
	var err error

	if s.StorageType, err = r.U16(); err != nil {
		return StorageInfo{}, err
	}
	if s.FilesystemType, err = r.U16(); err != nil {
		return StorageInfo{}, err
	}
	if s.AccessCapability, err = r.U16(); err != nil {
		return StorageInfo{}, err
	}
	if s.MaxCapacity, err = r.U64(); err != nil {
		return StorageInfo{}, err
	}
	if s.FreeSpaceBytes, err = r.U64(); err != nil {
		return StorageInfo{}, err
	}
	if s.FreeSpaceImages, err = r.U32(); err != nil {
		return StorageInfo{}, err
	}
	if s.StorageDescription, err = r.String(); err != nil {
		return StorageInfo{}, err
	}
	if s.VolumeLabel, err = r.String(); err != nil {
		return StorageInfo{}, err
	}
	if err := r.ExpectEnd(); err != nil {
		return StorageInfo{}, err
	}
	return s, nil
}
