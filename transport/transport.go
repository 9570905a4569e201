/*Package transport defines the abstract USB port the PTP transaction
engine is built against. USB device enumeration, endpoint discovery,
interface claim/release, and bulk I/O are external collaborators, not part
of the engine itself.

Device is deliberately narrow -- just enough surface for the engine and
camera facade to discover a Still-Image class interface, claim it, find
its bulk and interrupt endpoints, move bytes, and recover from a stalled
endpoint. A concrete implementation over github.com/google/gousb is
provided in usb.go; tests in the parent package exercise the engine
against a hand-written fake satisfying this same interface.
*/
package transport

import "time"

// Direction is a USB endpoint's data direction.
type Direction int

// Endpoint directions.
const (
	DirectionIn Direction = iota
	DirectionOut
)

// TransferType is a USB endpoint's transfer type.
type TransferType int

// Endpoint transfer types. Only Bulk and Interrupt are meaningful to this
// package; Control and Isochronous are reported for completeness since a
// real device descriptor enumerates them too, but PTP never uses them.
const (
	TransferTypeControl TransferType = iota
	TransferTypeIsochronous
	TransferTypeBulk
	TransferTypeInterrupt
)

// EndpointDescriptor describes one endpoint of a claimed interface.
type EndpointDescriptor struct {
	Address      byte
	Direction    Direction
	TransferType TransferType

	// MaxPacketSize is the endpoint's wMaxPacketSize, when the transport
	// can report it. It is used to refine the read-side ZLP heuristic;
	// 0 means "unknown", and callers fall back to the scratch-buffer
	// heuristic in that case.
	MaxPacketSize int
}

// InterfaceDescriptor describes one interface of the active USB
// configuration.
type InterfaceDescriptor struct {
	Number    byte
	Class     byte
	SubClass  byte
	Protocol  byte
	Endpoints []EndpointDescriptor
}

// StillImageClass is the USB class code (0x06) a PTP interface
// advertises.
const StillImageClass = 0x06

// Device is the USB port the PTP engine and camera facade are built
// against. A caller obtains one (typically transport.OpenVIDPID for the
// gousb-backed implementation, or a fake in tests) and passes it to
// ptp.NewCamera; nothing in this package knows about PTP itself.
type Device interface {
	// Interfaces lists the interfaces of the device's active
	// configuration, each with its endpoint descriptors.
	Interfaces() ([]InterfaceDescriptor, error)

	// ClaimInterface claims exclusive host access to the numbered
	// interface. It must be called before BulkWrite/BulkRead against any
	// of that interface's endpoints.
	ClaimInterface(number byte) error

	// ReleaseInterface releases a previously claimed interface.
	ReleaseInterface(number byte) error

	// SetAltSetting selects an alternate setting on a claimed interface.
	SetAltSetting(ifaceNumber, altSetting byte) error

	// BulkWrite writes p to the given endpoint address, blocking up to
	// timeout (0 meaning wait indefinitely). It returns the number of
	// bytes actually written.
	BulkWrite(endpoint byte, p []byte, timeout time.Duration) (int, error)

	// BulkRead reads into p from the given endpoint address, blocking up
	// to timeout (0 meaning wait indefinitely). It returns the number of
	// bytes actually read.
	BulkRead(endpoint byte, p []byte, timeout time.Duration) (int, error)

	// Reset issues a USB port reset of the device.
	Reset() error

	// ClearHalt clears a halt/stall condition on the given endpoint.
	ClearHalt(endpoint byte) error

	// Close releases the interface (if claimed) and the underlying
	// device handle.
	Close() error
}
