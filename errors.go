/*Package ptp implements a host-side client for the Picture Transfer
Protocol (PTP, ISO 15740) as carried over USB bulk endpoints -- the
transaction engine, container framing, and typed codec needed to open a
session with a PTP camera, enumerate its storage and objects, read and
write device properties, and capture new images.

USB device enumeration and bulk I/O are not implemented here; they are
consumed through the transport.Device port (see the transport subpackage,
and its gousb-backed implementation) so this package can be exercised
against a fake transport in tests.

A typical session looks like:

	dev, err := transport.OpenVIDPID(vid, pid)
	cam, err := ptp.NewCamera(dev, config.Default())
	defer cam.Disconnect()
	if err := cam.OpenSession(); err != nil { ... }
	info, err := cam.GetDeviceInfo()
	ids, err := cam.GetStorageIDs()
*/
package ptp

import (
	"errors"
	"fmt"
)

// ResponseError is returned when a PTP responder completes a transaction
// with a status code other than Ok. The transaction itself is complete;
// the session remains usable.
type ResponseError struct {
	Code uint16
}

func (e *ResponseError) Error() string {
	if name, ok := ResponseCodeNames[e.Code]; ok {
		return fmt.Sprintf("%s (0x%04X)", name, e.Code)
	}
	return fmt.Sprintf("unknown response (0x%04X)", e.Code)
}

// Is reports whether target is a *ResponseError with the same Code,
// so callers can write errors.Is(err, ptp.Response(RCDeviceBusy)).
func (e *ResponseError) Is(target error) bool {
	var t *ResponseError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// Response builds the *ResponseError for a given response code, useful as
// a comparison value with errors.Is.
func Response(code uint16) error {
	return &ResponseError{Code: code}
}

// MalformedError is returned when received wire data violates the framing
// or type contract: an unrecognized container kind, residual bytes after
// a dataset decode, a short string or array, invalid UTF-16, or a
// transaction ID mismatch. Session state is suspect afterward; a caller
// should reset the device and/or close and reopen the session.
type MalformedError struct {
	Message string
}

func (e *MalformedError) Error() string {
	return e.Message
}

// Malformed builds a *MalformedError with the given message.
func Malformed(format string, args ...interface{}) error {
	return &MalformedError{Message: fmt.Sprintf(format, args...)}
}

// UsbError wraps a failure from the underlying transport.Device: a
// timeout, a stalled endpoint, or a disconnected device. The caller may
// ClearHalt the affected endpoints and retry, or treat it as fatal.
type UsbError struct {
	Err error
}

func (e *UsbError) Error() string {
	return fmt.Sprintf("usb: %v", e.Err)
}

func (e *UsbError) Unwrap() error {
	return e.Err
}

// Usb wraps err from the transport layer as a *UsbError. Returns nil if
// err is nil, so it is safe to use as `return ptp.Usb(dev.Reset())`.
func Usb(err error) error {
	if err == nil {
		return nil
	}
	return &UsbError{Err: err}
}

// IoError wraps a non-USB I/O failure surfaced from the wire codec, e.g.
// a dataset decoder running out of bytes mid-field. io.ErrUnexpectedEOF
// is always remapped to a MalformedError instead (a truncated PTP payload
// is a protocol defect, not an ambient I/O event) so IoError in practice
// wraps other io errors a future codec extension might produce.
type IoError struct {
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io: %v", e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}
