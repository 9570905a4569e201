package ptp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/cenkalti/backoff"
	"golang.org/x/time/rate"

	"github.jpl.nasa.gov/bdube/ptp/config"
	"github.jpl.nasa.gov/bdube/ptp/dataset"
	"github.jpl.nasa.gov/bdube/ptp/transport"
	"github.jpl.nasa.gov/bdube/ptp/wire"
)

// SessionID is the PTP session identifier this library always opens.
// Nothing in the protocol requires a different value, and no device this
// library has been tested against rejects 1.
const SessionID = 1

// Camera owns a claimed Still-Image USB interface and a transaction
// Engine, and exposes typed PTP operations in place of the engine's raw
// Command(code, params, dataOut) contract.
type Camera struct {
	dev    transport.Device
	engine *Engine
	cfg    config.Config

	ifaceNumber              byte
	inEP, outEP, interruptEP byte

	// Logger receives the facade's own diagnostics. Assigning it does not
	// reach the underlying Engine; SetLogger installs a logger on both.
	Logger *log.Logger
}

// NewCamera claims the first USB Still-Image class interface it finds on
// dev and builds a Camera ready for OpenSession. The caller retains
// ownership of dev and must Disconnect (or dev.Close) when done.
func NewCamera(dev transport.Device, cfg config.Config) (*Camera, error) {
	ifaces, err := dev.Interfaces()
	if err != nil {
		return nil, Usb(err)
	}

	var chosen *transport.InterfaceDescriptor
	for i := range ifaces {
		if ifaces[i].Class == transport.StillImageClass {
			chosen = &ifaces[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("ptp: no USB Still-Image class (0x%02X) interface found", transport.StillImageClass)
	}

	if err := dev.ClaimInterface(chosen.Number); err != nil {
		return nil, Usb(err)
	}

	c := &Camera{dev: dev, cfg: cfg, ifaceNumber: chosen.Number}
	var inMaxPacketSize int
	var haveIn, haveOut bool
	for _, ep := range chosen.Endpoints {
		switch ep.TransferType {
		case transport.TransferTypeBulk:
			if ep.Direction == transport.DirectionIn {
				c.inEP = ep.Address
				inMaxPacketSize = ep.MaxPacketSize
				haveIn = true
			} else {
				c.outEP = ep.Address
				haveOut = true
			}
		case transport.TransferTypeInterrupt:
			if ep.Direction == transport.DirectionIn {
				c.interruptEP = ep.Address
			}
		}
	}
	if !haveIn || !haveOut {
		dev.ReleaseInterface(chosen.Number)
		return nil, fmt.Errorf("ptp: Still-Image interface missing a bulk in/out endpoint pair")
	}

	c.engine = NewEngine(dev, c.inEP, c.outEP, cfg.Timeout())
	c.engine.SetInMaxPacketSize(inMaxPacketSize)
	c.engine.SetChunkSize(cfg.ChunkSizeBytes)
	c.engine.SetReadScratchSize(cfg.ReadScratchBytes)
	return c, nil
}

// SetLogger installs l as both the facade's and the underlying engine's
// diagnostic logger. Passing nil silences logging (the default).
func (c *Camera) SetLogger(l *log.Logger) {
	c.Logger = l
	c.engine.Logger = l
}

func (c *Camera) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

// command wraps Engine.Command with a bounded DeviceBusy retry: the
// engine itself never retries, but a PTP responder legitimately
// replies DeviceBusy while mid-operation (e.g. still flushing a capture
// to storage) with the expectation the host retries shortly after.
func (c *Camera) command(code uint16, params []uint32, dataOut []byte) ([]byte, error) {
	if c.cfg.DeviceBusyRetries <= 0 {
		return c.engine.Command(code, params, dataOut)
	}

	var data []byte
	attempt := 0
	op := func() error {
		attempt++
		var err error
		data, err = c.engine.Command(code, params, dataOut)
		if err == nil {
			return nil
		}
		var re *ResponseError
		if errors.As(err, &re) && re.Code == RCDeviceBusy {
			c.logf("ptp: device busy, retrying (attempt %d)", attempt)
			return err
		}
		return backoff.Permanent(err)
	}
	bo := &backoff.ExponentialBackOff{
		InitialInterval:     25 * time.Millisecond,
		RandomizationFactor: 0.5,
		Multiplier:          2,
		MaxInterval:         300 * time.Millisecond,
		MaxElapsedTime:      0,
		Clock:               backoff.SystemClock,
	}
	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, uint64(c.cfg.DeviceBusyRetries))); err != nil {
		if perm, ok := err.(*backoff.PermanentError); ok {
			return nil, perm.Err
		}
		return nil, err
	}
	return data, nil
}

// decodeErr normalizes an error surfaced by a dataset or wire decode: a
// truncated payload (io.ErrUnexpectedEOF), residual bytes
// (wire.ErrTrailingBytes) and invalid UTF-16 (wire.ErrInvalidUTF16) are
// protocol defects and become MalformedError; any other codec error is
// wrapped as IoError.
func decodeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Malformed("Unexpected end of message")
	}
	if errors.Is(err, wire.ErrTrailingBytes) || errors.Is(err, wire.ErrInvalidUTF16) {
		return Malformed("%v", err)
	}
	return &IoError{Err: err}
}

// OpenSession opens PTP session SessionID.
func (c *Camera) OpenSession() error {
	_, err := c.command(OCOpenSession, []uint32{SessionID, 0, 0}, nil)
	return err
}

// CloseSession closes the current session.
func (c *Camera) CloseSession() error {
	_, err := c.command(OCCloseSession, nil, nil)
	return err
}

// GetDeviceInfo retrieves the device's DeviceInfo dataset.
func (c *Camera) GetDeviceInfo() (dataset.DeviceInfo, error) {
	data, err := c.command(OCGetDeviceInfo, []uint32{0, 0, 0}, nil)
	if err != nil {
		return dataset.DeviceInfo{}, err
	}
	d, err := dataset.DecodeDeviceInfo(data)
	return d, decodeErr(err)
}

// GetStorageIDs retrieves the list of storage IDs currently present.
func (c *Camera) GetStorageIDs() ([]uint32, error) {
	data, err := c.command(OCGetStorageIDs, nil, nil)
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(data)
	ids, err := r.U32Array()
	if err != nil {
		return nil, Malformed("decoding StorageIDs: %v", err)
	}
	if err := r.ExpectEnd(); err != nil {
		return nil, decodeErr(err)
	}
	return ids, nil
}

// GetStorageInfo retrieves the StorageInfo dataset for one storage ID.
func (c *Camera) GetStorageInfo(storageID uint32) (dataset.StorageInfo, error) {
	data, err := c.command(OCGetStorageInfo, []uint32{storageID}, nil)
	if err != nil {
		return dataset.StorageInfo{}, err
	}
	s, err := dataset.DecodeStorageInfo(data)
	return s, decodeErr(err)
}

// GetNumObjects returns the number of objects matching storageID/parent,
// optionally restricted to a single objectFormat filter (0 means no
// filter). Per PTP, parent == dataset.RootParent selects objects at the
// root of the store; parent == 0 selects all objects recursively -- both
// values must be preserved verbatim, not reinterpreted as "no filter".
func (c *Camera) GetNumObjects(storageID uint32, parent uint32, objectFormat uint32) (uint32, error) {
	data, err := c.command(OCGetNumObjects, []uint32{storageID, objectFormat, parent}, nil)
	if err != nil {
		return 0, err
	}
	r := wire.NewReader(data)
	n, err := r.U32()
	if err != nil {
		return 0, Malformed("decoding NumObjects: %v", err)
	}
	if err := r.ExpectEnd(); err != nil {
		return 0, decodeErr(err)
	}
	return n, nil
}

// GetObjectHandles returns the handles matching storageID/parent, with
// the same parent semantics as GetNumObjects.
func (c *Camera) GetObjectHandles(storageID uint32, parent uint32, objectFormat uint32) ([]uint32, error) {
	data, err := c.command(OCGetObjectHandles, []uint32{storageID, objectFormat, parent}, nil)
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(data)
	handles, err := r.U32Array()
	if err != nil {
		return nil, Malformed("decoding ObjectHandles: %v", err)
	}
	if err := r.ExpectEnd(); err != nil {
		return nil, decodeErr(err)
	}
	return handles, nil
}

// GetObjectHandlesRoot returns the handles of objects stored directly at
// the root of storageID.
func (c *Camera) GetObjectHandlesRoot(storageID uint32, objectFormat uint32) ([]uint32, error) {
	return c.GetObjectHandles(storageID, dataset.RootParent, objectFormat)
}

// GetObjectHandlesAll returns the handles of every object on storageID,
// regardless of position in the folder hierarchy.
func (c *Camera) GetObjectHandlesAll(storageID uint32, objectFormat uint32) ([]uint32, error) {
	return c.GetObjectHandles(storageID, 0, objectFormat)
}

// GetNumObjectsRoot counts objects stored directly at the root of
// storageID.
func (c *Camera) GetNumObjectsRoot(storageID uint32, objectFormat uint32) (uint32, error) {
	return c.GetNumObjects(storageID, dataset.RootParent, objectFormat)
}

// GetNumObjectsAll counts every object on storageID.
func (c *Camera) GetNumObjectsAll(storageID uint32, objectFormat uint32) (uint32, error) {
	return c.GetNumObjects(storageID, 0, objectFormat)
}

// GetObjectInfo retrieves one object's ObjectInfo dataset.
func (c *Camera) GetObjectInfo(handle uint32) (dataset.ObjectInfo, error) {
	data, err := c.command(OCGetObjectInfo, []uint32{handle}, nil)
	if err != nil {
		return dataset.ObjectInfo{}, err
	}
	o, err := dataset.DecodeObjectInfo(data)
	return o, decodeErr(err)
}

// GetObject retrieves an object's full binary payload.
func (c *Camera) GetObject(handle uint32) ([]byte, error) {
	return c.command(OCGetObject, []uint32{handle}, nil)
}

// GetPartialObject retrieves up to maxBytes of an object's payload
// starting at offset.
func (c *Camera) GetPartialObject(handle, offset, maxBytes uint32) ([]byte, error) {
	return c.command(OCGetPartialObject, []uint32{handle, offset, maxBytes}, nil)
}

// DeleteObject deletes one object. objectFormat of 0 means "any format",
// matching PTP's own convention for this parameter.
func (c *Camera) DeleteObject(handle uint32, objectFormat uint32) error {
	_, err := c.command(OCDeleteObject, []uint32{handle, objectFormat}, nil)
	return err
}

// GetDevicePropDesc retrieves one device property's PropInfo dataset.
func (c *Camera) GetDevicePropDesc(propCode uint16) (dataset.PropInfo, error) {
	data, err := c.command(OCGetDevicePropDesc, []uint32{uint32(propCode)}, nil)
	if err != nil {
		return dataset.PropInfo{}, err
	}
	p, err := dataset.DecodePropInfo(data)
	return p, decodeErr(err)
}

// GetDevicePropValue retrieves one device property's current value, typed
// according to dataType (normally PropInfo.DataType from a prior
// GetDevicePropDesc call).
func (c *Camera) GetDevicePropValue(propCode uint16, dataType wire.DataType) (wire.Value, error) {
	data, err := c.command(OCGetDevicePropValue, []uint32{uint32(propCode)}, nil)
	if err != nil {
		return wire.Value{}, err
	}
	v, err := wire.DecodeByTag(dataType, wire.NewReader(data))
	if err != nil {
		return wire.Value{}, Malformed("decoding device prop value: %v", err)
	}
	return v, nil
}

// SetDevicePropValue sets one device property's current value, encoding
// v with wire.Encode. Validating v against a prior GetDevicePropDesc's
// FormData, if desired, is left to the caller.
func (c *Camera) SetDevicePropValue(propCode uint16, v wire.Value) error {
	w := wire.NewWriter(0)
	if err := wire.Encode(w, v); err != nil {
		return err
	}
	_, err := c.command(OCSetDevicePropValue, []uint32{uint32(propCode)}, w.Bytes())
	return err
}

// InitiateCapture requests the device capture a new image to storageID
// using objectFormatCode. This does not itself return the new object's
// bytes: per PTP, the device makes the captured object available only
// through a subsequent GetObjectHandles/GetObject. This library does not
// implement the event channel that would normally announce the new
// handle asynchronously (see the purpose/non-goals), so a caller must
// poll GetObjectHandles after calling this.
func (c *Camera) InitiateCapture(storageID uint32, objectFormatCode uint32) error {
	_, err := c.command(OCInitiateCapture, []uint32{storageID, objectFormatCode}, nil)
	return err
}

// PowerDown requests the device power itself down.
func (c *Camera) PowerDown() error {
	_, err := c.command(OCPowerDown, nil, nil)
	return err
}

// Reset issues a USB-level port reset of the underlying device.
func (c *Camera) Reset() error {
	return Usb(c.dev.Reset())
}

// ClearHalt clears a halt/stall condition on all three endpoints this
// Camera claimed (bulk in, bulk out, and interrupt in, if present).
func (c *Camera) ClearHalt() error {
	for _, ep := range []byte{c.inEP, c.outEP, c.interruptEP} {
		if ep == 0 {
			continue
		}
		if err := c.dev.ClearHalt(ep); err != nil {
			return Usb(err)
		}
	}
	return nil
}

// Disconnect closes the session and releases the claimed interface. It
// does not close the underlying transport.Device; the caller opened it
// and is responsible for closing it.
func (c *Camera) Disconnect() error {
	sessErr := c.CloseSession()
	ifaceErr := c.dev.ReleaseInterface(c.ifaceNumber)
	if sessErr != nil {
		return sessErr
	}
	if ifaceErr != nil {
		return Usb(ifaceErr)
	}
	return nil
}

// Walk enumerates every object on storageID (GetObjectHandles with
// parent == 0, PTP's recursive "all objects" selector), fetches each
// object's ObjectInfo, assembles the tree by ParentObject, and returns
// (path, node) pairs in breadth-first order. Requests against the device
// are paced by a golang.org/x/time/rate.Limiter
// (Config.WalkRatePerSecond) -- a point-and-shoot camera's control
// endpoint typically cannot sustain unthrottled back-to-back metadata
// requests across hundreds of objects.
func (c *Camera) Walk(storageID uint32) ([]dataset.Entry, error) {
	limit := c.cfg.WalkRatePerSecond
	if limit <= 0 {
		limit = 20
	}
	limiter := rate.NewLimiter(rate.Limit(limit), 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}
	handles, err := c.GetObjectHandles(storageID, 0, 0)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint32]*dataset.Tree, len(handles))
	// handle order from the device is preserved for sibling ordering
	order := make([]*dataset.Tree, 0, len(handles))
	for _, h := range handles {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		info, err := c.GetObjectInfo(h)
		if err != nil {
			return nil, err
		}
		node := &dataset.Tree{Handle: h, Info: info}
		nodes[h] = node
		order = append(order, node)
	}

	var topLevel []*dataset.Tree
	for _, node := range order {
		if parent, ok := nodes[node.Info.ParentObject]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			// ParentObject of 0 or RootParent means stored at the root;
			// an unknown handle (filtered sibling store) lands here too.
			topLevel = append(topLevel, node)
		}
	}

	var entries []dataset.Entry
	for _, root := range topLevel {
		entries = append(entries, dataset.Walk(root)...)
	}
	return entries, nil
}
