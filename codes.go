package ptp

// Standard PTP response codes, 0x2000-0x2020. Unknown codes
// are not errors in themselves -- only ResponseCodeNames not containing an
// entry, handled gracefully by (*ResponseError).Error.
const (
	RCUndefined                             uint16 = 0x2000
	RCOk                                    uint16 = 0x2001
	RCGeneralError                          uint16 = 0x2002
	RCSessionNotOpen                        uint16 = 0x2003
	RCInvalidTransactionID                  uint16 = 0x2004
	RCOperationNotSupported                 uint16 = 0x2005
	RCParameterNotSupported                 uint16 = 0x2006
	RCIncompleteTransfer                    uint16 = 0x2007
	RCInvalidStorageID                      uint16 = 0x2008
	RCInvalidObjectHandle                   uint16 = 0x2009
	RCDevicePropNotSupported                uint16 = 0x200A
	RCInvalidObjectFormatCode               uint16 = 0x200B
	RCStoreFull                             uint16 = 0x200C
	RCObjectWriteProtected                  uint16 = 0x200D
	RCStoreReadOnly                         uint16 = 0x200E
	RCAccessDenied                          uint16 = 0x200F
	RCNoThumbnailPresent                    uint16 = 0x2010
	RCSelfTestFailed                        uint16 = 0x2011
	RCPartialDeletion                       uint16 = 0x2012
	RCStoreNotAvailable                     uint16 = 0x2013
	RCSpecificationByFormatUnsupported      uint16 = 0x2014
	RCNoValidObjectInfo                     uint16 = 0x2015
	RCInvalidCodeFormat                     uint16 = 0x2016
	RCUnknownVendorCode                     uint16 = 0x2017
	RCCaptureAlreadyTerminated              uint16 = 0x2018
	RCDeviceBusy                            uint16 = 0x2019
	RCInvalidParentObject                   uint16 = 0x201A
	RCInvalidDevicePropFormat               uint16 = 0x201B
	RCInvalidDevicePropValue                uint16 = 0x201C
	RCInvalidParameter                      uint16 = 0x201D
	RCSessionAlreadyOpen                    uint16 = 0x201E
	RCTransactionCancelled                  uint16 = 0x201F
	RCSpecificationOfDestinationUnsupported uint16 = 0x2020
)

// ResponseCodeNames maps a standard PTP response code to its symbolic
// name, for error formatting and logging. Absence from this map does not
// mean a code is invalid -- it may be a vendor (0x4000-prefixed) code.
var ResponseCodeNames = map[uint16]string{
	RCUndefined:                             "Undefined",
	RCOk:                                    "Ok",
	RCGeneralError:                          "GeneralError",
	RCSessionNotOpen:                        "SessionNotOpen",
	RCInvalidTransactionID:                  "InvalidTransactionID",
	RCOperationNotSupported:                 "OperationNotSupported",
	RCParameterNotSupported:                 "ParameterNotSupported",
	RCIncompleteTransfer:                    "IncompleteTransfer",
	RCInvalidStorageID:                      "InvalidStorageID",
	RCInvalidObjectHandle:                   "InvalidObjectHandle",
	RCDevicePropNotSupported:                "DevicePropNotSupported",
	RCInvalidObjectFormatCode:               "InvalidObjectFormatCode",
	RCStoreFull:                             "StoreFull",
	RCObjectWriteProtected:                  "ObjectWriteProtected",
	RCStoreReadOnly:                         "StoreReadOnly",
	RCAccessDenied:                          "AccessDenied",
	RCNoThumbnailPresent:                    "NoThumbnailPresent",
	RCSelfTestFailed:                        "SelfTestFailed",
	RCPartialDeletion:                       "PartialDeletion",
	RCStoreNotAvailable:                     "StoreNotAvailable",
	RCSpecificationByFormatUnsupported:      "SpecificationByFormatUnsupported",
	RCNoValidObjectInfo:                     "NoValidObjectInfo",
	RCInvalidCodeFormat:                     "InvalidCodeFormat",
	RCUnknownVendorCode:                     "UnknownVendorCode",
	RCCaptureAlreadyTerminated:              "CaptureAlreadyTerminated",
	RCDeviceBusy:                            "DeviceBusy",
	RCInvalidParentObject:                   "InvalidParentObject",
	RCInvalidDevicePropFormat:               "InvalidDevicePropFormat",
	RCInvalidDevicePropValue:                "InvalidDevicePropValue",
	RCInvalidParameter:                      "InvalidParameter",
	RCSessionAlreadyOpen:                    "SessionAlreadyOpen",
	RCTransactionCancelled:                  "TransactionCancelled",
	RCSpecificationOfDestinationUnsupported: "SpecificationOfDestinationUnsupported",
}

// Standard PTP operation (command) codes, 0x1000-0x101C.
const (
	OCUndefined            uint16 = 0x1000
	OCGetDeviceInfo        uint16 = 0x1001
	OCOpenSession          uint16 = 0x1002
	OCCloseSession         uint16 = 0x1003
	OCGetStorageIDs        uint16 = 0x1004
	OCGetStorageInfo       uint16 = 0x1005
	OCGetNumObjects        uint16 = 0x1006
	OCGetObjectHandles     uint16 = 0x1007
	OCGetObjectInfo        uint16 = 0x1008
	OCGetObject            uint16 = 0x1009
	OCGetThumb             uint16 = 0x100A
	OCDeleteObject         uint16 = 0x100B
	OCSendObjectInfo       uint16 = 0x100C
	OCSendObject           uint16 = 0x100D
	OCInitiateCapture      uint16 = 0x100E
	OCFormatStore          uint16 = 0x100F
	OCResetDevice          uint16 = 0x1010
	OCSelfTest             uint16 = 0x1011
	OCSetObjectProtection  uint16 = 0x1012
	OCPowerDown            uint16 = 0x1013
	OCGetDevicePropDesc    uint16 = 0x1014
	OCGetDevicePropValue   uint16 = 0x1015
	OCSetDevicePropValue   uint16 = 0x1016
	OCResetDevicePropValue uint16 = 0x1017
	OCTerminateOpenCapture uint16 = 0x1018
	OCMoveObject           uint16 = 0x1019
	OCCopyObject           uint16 = 0x101A
	OCGetPartialObject     uint16 = 0x101B
	OCInitiateOpenCapture  uint16 = 0x101C
)

// CommandCodeNames maps a standard PTP operation code to its symbolic
// name, for error formatting and logging.
var CommandCodeNames = map[uint16]string{
	OCUndefined:            "Undefined",
	OCGetDeviceInfo:        "GetDeviceInfo",
	OCOpenSession:          "OpenSession",
	OCCloseSession:         "CloseSession",
	OCGetStorageIDs:        "GetStorageIDs",
	OCGetStorageInfo:       "GetStorageInfo",
	OCGetNumObjects:        "GetNumObjects",
	OCGetObjectHandles:     "GetObjectHandles",
	OCGetObjectInfo:        "GetObjectInfo",
	OCGetObject:            "GetObject",
	OCGetThumb:             "GetThumb",
	OCDeleteObject:         "DeleteObject",
	OCSendObjectInfo:       "SendObjectInfo",
	OCSendObject:           "SendObject",
	OCInitiateCapture:      "InitiateCapture",
	OCFormatStore:          "FormatStore",
	OCResetDevice:          "ResetDevice",
	OCSelfTest:             "SelfTest",
	OCSetObjectProtection:  "SetObjectProtection",
	OCPowerDown:            "PowerDown",
	OCGetDevicePropDesc:    "GetDevicePropDesc",
	OCGetDevicePropValue:   "GetDevicePropValue",
	OCSetDevicePropValue:   "SetDevicePropValue",
	OCResetDevicePropValue: "ResetDevicePropValue",
	OCTerminateOpenCapture: "TerminateOpenCapture",
	OCMoveObject:           "MoveObject",
	OCCopyObject:           "CopyObject",
	OCGetPartialObject:     "GetPartialObject",
	OCInitiateOpenCapture:  "InitiateOpenCapture",
}

// ResponseCodeName returns the symbolic name for a response code, or
// false if it is not one of the standard codes this table knows about
// (e.g. a vendor 0x4000-prefixed code).
func ResponseCodeName(code uint16) (string, bool) {
	name, ok := ResponseCodeNames[code]
	return name, ok
}

// CommandCodeName returns the symbolic name for an operation code, or
// false if it is not one of the standard codes this table knows about.
func CommandCodeName(code uint16) (string, bool) {
	name, ok := CommandCodeNames[code]
	return name, ok
}
