package ptp

import (
	"encoding/binary"
	"io"
	"log"
	"time"

	"github.jpl.nasa.gov/bdube/ptp/transport"
)

// ChunkSize is the default write-side chunk granularity: a multiple of
// any real device's bulk maxPacketSize, chosen so a single phase's
// payload never emits a short packet partway through a container unless
// that short packet is the final one. Overridable per-engine via
// SetChunkSize (config.Config.ChunkSizeBytes).
const ChunkSize = 1 << 20 // 1 MiB

// ReadScratchSize is the default size of the first bulk read of a phase.
// Most PTP responses (Response containers, and Data containers for
// anything but a large object) fit entirely within this, so the common
// case needs only one read. Overridable per-engine via
// SetReadScratchSize (config.Config.ReadScratchBytes).
const ReadScratchSize = 8 << 10 // 8 KiB

// Engine executes PTP transactions against a transport.Device.
// It knows nothing about sessions or typed operations -- that is the
// Camera facade's job -- only how to move one Command/(Data)/Response
// exchange across the wire with correct TID correlation and chunking.
type Engine struct {
	dev transport.Device

	inEP, outEP byte
	timeout     time.Duration

	chunkSize int

	// scratch absorbs the first bulk read of every phase. It is allocated
	// once and reused per-phase; only one transaction is ever in
	// flight, so reuse is safe.
	scratch []byte

	// inMaxPacketSize is the bulk-IN endpoint's reported wMaxPacketSize,
	// when known (0 otherwise). It refines the read-side ZLP heuristic;
	// see needsTrailingZLP.
	inMaxPacketSize int

	currentTid uint32

	// Logger receives one line per phase transmitted, plus one line for
	// each spurious container ignored and each failed trailing-ZLP read;
	// nil (the default) silences it. This library does not log on its own
	// initiative beyond what a caller opts into.
	Logger *log.Logger
}

// NewEngine returns an Engine that sends Command/Data phases on outEP and
// reads Data/Response phases from inEP, using dev for the underlying
// bulk transfers. timeout is applied per USB transfer; zero means wait
// indefinitely.
func NewEngine(dev transport.Device, inEP, outEP byte, timeout time.Duration) *Engine {
	return &Engine{
		dev:       dev,
		inEP:      inEP,
		outEP:     outEP,
		timeout:   timeout,
		chunkSize: ChunkSize,
		scratch:   make([]byte, ReadScratchSize),
	}
}

// SetChunkSize overrides the write-side chunk granularity. Values below
// the container header size are ignored.
func (e *Engine) SetChunkSize(size int) {
	if size >= ContainerHeaderSize {
		e.chunkSize = size
	}
}

// SetReadScratchSize overrides the size of the first bulk read of each
// phase. Values below the container header size are ignored.
func (e *Engine) SetReadScratchSize(size int) {
	if size >= ContainerHeaderSize {
		e.scratch = make([]byte, size)
	}
}

// SetInMaxPacketSize records the bulk-IN endpoint's wMaxPacketSize, as
// discovered from transport.EndpointDescriptor. Passing 0 reverts the
// engine to the 8 KiB read-side heuristic.
func (e *Engine) SetInMaxPacketSize(size int) {
	e.inMaxPacketSize = size
}

// CurrentTid returns the transaction ID that will be used by the next
// Command call.
func (e *Engine) CurrentTid() uint32 {
	return e.currentTid
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

// Command executes one complete PTP transaction: it sends a Command
// phase (code, params), optionally a Data phase (dataOut), then reads
// phases from the device until a terminal Response arrives. It returns
// the accumulated inbound Data payload (nil if the device sent none) or
// an error.
//
// The caller does not declare whether this operation carries inbound or
// outbound data; the engine discovers dataOut's presence from whether the
// caller passed it, and discovers dataIn's presence by observing whether
// the device sends a Data phase before the Response.
func (e *Engine) Command(code uint16, params []uint32, dataOut []byte) ([]byte, error) {
	tid := e.currentTid
	e.currentTid++

	if err := e.writePhase(KindCommand, code, tid, encodeParams(params)); err != nil {
		return nil, err
	}
	if dataOut != nil {
		if err := e.writePhase(KindData, code, tid, dataOut); err != nil {
			return nil, err
		}
	}
	return e.readUntilResponse(tid)
}

func encodeParams(params []uint32) []byte {
	buf := make([]byte, 4*len(params))
	for i, p := range params {
		binary.LittleEndian.PutUint32(buf[4*i:4*i+4], p)
	}
	return buf
}

// writePhase sends one container (header + payload) over outEP, split
// into chunkSize slices on the wire so no single bulk transfer exceeds
// it. len in the header always reflects the full payload, not the first
// chunk.
func (e *Engine) writePhase(kind Kind, code uint16, tid uint32, payload []byte) error {
	total := ContainerHeaderSize + len(payload)
	h := Header{Len: uint32(total), Kind: kind, Code: code, Tid: tid}

	first := make([]byte, ContainerHeaderSize, e.chunkSize)
	encodeHeader(first, h)

	remaining := payload
	room := e.chunkSize - ContainerHeaderSize
	if room > len(remaining) {
		room = len(remaining)
	}
	first = append(first, remaining[:room]...)
	remaining = remaining[room:]

	e.logf("ptp: write %s code=0x%04X tid=%d len=%d", kind, code, tid, total)
	if _, err := e.dev.BulkWrite(e.outEP, first, e.timeout); err != nil {
		return Usb(err)
	}
	for len(remaining) > 0 {
		n := e.chunkSize
		if n > len(remaining) {
			n = len(remaining)
		}
		if _, err := e.dev.BulkWrite(e.outEP, remaining[:n], e.timeout); err != nil {
			return Usb(err)
		}
		remaining = remaining[n:]
	}
	return nil
}

// readUntilResponse consumes containers until a terminal Response
// arrives, retaining the most recent Data payload seen along the way, and
// rejecting any container whose tid does not match the expected
// transaction.
func (e *Engine) readUntilResponse(tid uint32) ([]byte, error) {
	var dataIn []byte
	for {
		h, payload, err := e.readContainer()
		if err != nil {
			return nil, err
		}
		if !h.BelongsTo(tid) {
			return nil, Malformed("mismatched txnid %d, expecting %d", h.Tid, tid)
		}
		switch h.Kind {
		case KindData:
			dataIn = payload
		case KindResponse:
			if h.Code == RCOk {
				return dataIn, nil
			}
			return nil, Response(h.Code)
		default:
			// a stray Event (or any other kind) on the bulk endpoint
			// while awaiting Data/Response is not this transaction's
			// concern; it is the only event the engine discards.
			e.logf("ptp: ignoring spurious %s while awaiting response, tid=%d", h.Kind, h.Tid)
		}
	}
}

// readContainer performs the read-side reassembly: an initial
// scratch-sized read, growing into a payloadLen+1-capacity buffer if the
// header declares more than that, with the trailing-ZLP heuristic applied
// once the buffer is otherwise complete.
func (e *Engine) readContainer() (Header, []byte, error) {
	n, err := e.dev.BulkRead(e.inEP, e.scratch, e.timeout)
	if err != nil {
		return Header{}, nil, Usb(err)
	}
	if n < ContainerHeaderSize {
		return Header{}, nil, Malformed("short read: %d bytes, need at least %d for a header", n, ContainerHeaderSize)
	}
	h, err := parseHeader(e.scratch[:n])
	if err != nil {
		return Header{}, nil, err
	}
	payloadLen := int(h.PayloadLen())

	buf := make([]byte, 0, payloadLen+1)
	buf = append(buf, e.scratch[ContainerHeaderSize:n]...)

	firstReadFilledScratch := n == len(e.scratch)
	totalReceived := n
	for len(buf) < payloadLen {
		m, err := e.dev.BulkRead(e.inEP, e.scratch, e.timeout)
		if err != nil {
			return Header{}, nil, Usb(err)
		}
		if m == 0 {
			break
		}
		buf = append(buf, e.scratch[:m]...)
		totalReceived += m
	}
	if len(buf) < payloadLen {
		return Header{}, nil, Malformed("truncated payload: got %d of %d declared bytes", len(buf), payloadLen)
	}
	buf = buf[:payloadLen]

	if e.needsTrailingZLP(firstReadFilledScratch, totalReceived) {
		if _, err := e.dev.BulkRead(e.inEP, e.scratch[:0], e.timeout); err != nil && err != io.EOF {
			// a ZLP read failing is not itself fatal to a transaction
			// that has already collected its full declared payload.
			e.logf("ptp: trailing ZLP read failed, ignoring: %v", err)
		}
	}
	return h, buf, nil
}

// needsTrailingZLP decides whether to issue one extra read after a
// complete payload: when the bulk-IN endpoint's max packet size is known
// (SetInMaxPacketSize was called with a nonzero value), a trailing read
// is needed whenever the total bytes received landed exactly on a
// maxPacketSize boundary -- the same condition a real USB host controller
// uses to decide whether the last packet of a transfer was a short packet
// or not. Otherwise this falls back to the cruder heuristic: an extra
// read is needed only when the very first bulk read exactly filled the
// scratch buffer.
func (e *Engine) needsTrailingZLP(firstReadFilledScratch bool, totalReceived int) bool {
	if e.inMaxPacketSize > 0 {
		return totalReceived%e.inMaxPacketSize == 0
	}
	return firstReadFilledScratch
}
