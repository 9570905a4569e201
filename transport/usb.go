package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/gousb"
)

// USBDevice is the github.com/google/gousb-backed implementation of
// Device: open by VID/PID, enable auto-detach, claim the interface, and
// resolve whatever endpoints the connected device's Still-Image interface
// actually exposes from its descriptors, plus Reset/ClearHalt for stall
// recovery.
type USBDevice struct {
	ctx    *gousb.Context
	dev    *gousb.Device
	cfg    *gousb.Config
	iface  *gousb.Interface
	ifaceN byte

	// mu guards claimed interface/endpoint state against concurrent
	// control operations (Reset, ClearHalt, ReleaseInterface) racing
	// with in-flight bulk I/O: many concurrent "readers" doing bulk
	// I/O, one exclusive "writer" for control operations. A PTP session
	// only ever has one transaction in flight regardless, so in
	// practice this is a lifecycle guard more than a throughput one.
	mu  sync.RWMutex
	ins map[byte]*gousb.InEndpoint
	out map[byte]*gousb.OutEndpoint
}

// OpenVIDPID opens the first device matching vid/pid and returns a Device
// ready for ClaimInterface. The caller must Close it when done.
func OpenVIDPID(vid, pid uint16) (*USBDevice, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, err
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("transport: no device matching vid=%#04x pid=%#04x", vid, pid)
	}
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}
	cfgNum, err := dev.ActiveConfigNum()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}
	cfg, err := dev.Config(cfgNum)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}
	return &USBDevice{
		ctx: ctx,
		dev: dev,
		cfg: cfg,
		ins: make(map[byte]*gousb.InEndpoint),
		out: make(map[byte]*gousb.OutEndpoint),
	}, nil
}

// Interfaces implements Device.
func (u *USBDevice) Interfaces() ([]InterfaceDescriptor, error) {
	var out []InterfaceDescriptor
	for _, ifaceDesc := range u.cfg.Desc.Interfaces {
		// PTP/Still-Image devices do not use alternate settings; the
		// zeroth alt setting is always the one of interest.
		if len(ifaceDesc.AltSettings) == 0 {
			continue
		}
		alt := ifaceDesc.AltSettings[0]
		id := InterfaceDescriptor{
			Number:   byte(ifaceDesc.Number),
			Class:    byte(alt.Class),
			SubClass: byte(alt.SubClass),
			Protocol: byte(alt.Protocol),
		}
		for _, ep := range alt.Endpoints {
			id.Endpoints = append(id.Endpoints, EndpointDescriptor{
				Address:       byte(ep.Number),
				Direction:     directionOf(ep),
				TransferType:  transferTypeOf(ep.TransferType),
				MaxPacketSize: ep.MaxPacketSize,
			})
		}
		out = append(out, id)
	}
	return out, nil
}

func directionOf(ep gousb.EndpointDesc) Direction {
	if ep.Direction == gousb.EndpointDirectionIn {
		return DirectionIn
	}
	return DirectionOut
}

func transferTypeOf(t gousb.TransferType) TransferType {
	switch t {
	case gousb.TransferTypeBulk:
		return TransferTypeBulk
	case gousb.TransferTypeInterrupt:
		return TransferTypeInterrupt
	case gousb.TransferTypeIsochronous:
		return TransferTypeIsochronous
	default:
		return TransferTypeControl
	}
}

// ClaimInterface implements Device.
func (u *USBDevice) ClaimInterface(number byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	iface, err := u.cfg.Interface(int(number), 0)
	if err != nil {
		return err
	}
	u.iface = iface
	u.ifaceN = number
	for _, alt := range u.cfg.Desc.Interfaces[findInterfaceIndex(u.cfg, number)].AltSettings {
		for _, ep := range alt.Endpoints {
			switch ep.TransferType {
			case gousb.TransferTypeBulk, gousb.TransferTypeInterrupt:
				if ep.Direction == gousb.EndpointDirectionIn {
					in, err := iface.InEndpoint(ep.Number)
					if err == nil {
						u.ins[byte(ep.Number)] = in
					}
				} else {
					out, err := iface.OutEndpoint(ep.Number)
					if err == nil {
						u.out[byte(ep.Number)] = out
					}
				}
			}
		}
	}
	return nil
}

func findInterfaceIndex(cfg *gousb.Config, number byte) int {
	for i, ifaceDesc := range cfg.Desc.Interfaces {
		if byte(ifaceDesc.Number) == number {
			return i
		}
	}
	return 0
}

// ReleaseInterface implements Device.
func (u *USBDevice) ReleaseInterface(number byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.iface != nil && u.ifaceN == number {
		u.iface.Close()
		u.iface = nil
		u.ins = make(map[byte]*gousb.InEndpoint)
		u.out = make(map[byte]*gousb.OutEndpoint)
	}
	return nil
}

// SetAltSetting implements Device. PTP Still-Image interfaces have a
// single alternate setting in every device this library has been tested
// against, so this re-claims the interface at the requested setting.
func (u *USBDevice) SetAltSetting(ifaceNumber, altSetting byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	iface, err := u.cfg.Interface(int(ifaceNumber), int(altSetting))
	if err != nil {
		return err
	}
	if u.iface != nil {
		u.iface.Close()
	}
	u.iface = iface
	return nil
}

// BulkWrite implements Device.
func (u *USBDevice) BulkWrite(endpoint byte, p []byte, timeout time.Duration) (int, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	ep, ok := u.out[endpoint]
	if !ok {
		return 0, fmt.Errorf("transport: no claimed out endpoint %#02x", endpoint)
	}
	if timeout <= 0 {
		return ep.Write(p)
	}
	return writeWithTimeout(ep, p, timeout)
}

// BulkRead implements Device.
func (u *USBDevice) BulkRead(endpoint byte, p []byte, timeout time.Duration) (int, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	ep, ok := u.ins[endpoint]
	if !ok {
		return 0, fmt.Errorf("transport: no claimed in endpoint %#02x", endpoint)
	}
	if timeout <= 0 {
		return ep.Read(p)
	}
	return readWithTimeout(ep, p, timeout)
}

// Reset implements Device.
func (u *USBDevice) Reset() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.dev.Reset()
}

// ClearHalt implements Device. gousb does not expose ClearFeature
// directly on an endpoint handle, so this issues the standard USB
// CLEAR_FEATURE(ENDPOINT_HALT) control transfer by hand, the same
// request a real OS driver issues on a stalled bulk endpoint.
func (u *USBDevice) ClearHalt(endpoint byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	const (
		clearFeature = 0x01
		endpointHalt = 0x00
	)
	_, err := u.dev.Control(
		gousb.ControlOut|gousb.ControlEndpoint,
		clearFeature,
		endpointHalt,
		uint16(endpoint),
		nil,
	)
	return err
}

// Close implements Device.
func (u *USBDevice) Close() error {
	u.mu.Lock()
	if u.iface != nil {
		u.iface.Close()
		u.iface = nil
	}
	u.mu.Unlock()
	// gousb refuses to close a device while one of its configs is open
	u.cfg.Close()
	err := u.dev.Close()
	u.ctx.Close()
	return err
}
