package transport

import (
	"fmt"
	"io"
	"time"
)

// writeWithTimeout bounds w.Write(p) to timeout. gousb endpoints block on
// the underlying libusb transfer without an inherent per-call deadline
// parameter, so a bounded wait is layered on top via a result channel,
// since gousb's endpoint types expose no deadline setter.
func writeWithTimeout(w io.Writer, p []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := w.Write(p)
		done <- result{n, err}
	}()
	select {
	case r := <-done:
		return r.n, r.err
	case <-time.After(timeout):
		return 0, fmt.Errorf("transport: write timed out after %s", timeout)
	}
}

// readWithTimeout is the read-side counterpart of writeWithTimeout.
func readWithTimeout(r io.Reader, p []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := r.Read(p)
		done <- result{n, err}
	}()
	select {
	case res := <-done:
		return res.n, res.err
	case <-time.After(timeout):
		return 0, fmt.Errorf("transport: read timed out after %s", timeout)
	}
}
