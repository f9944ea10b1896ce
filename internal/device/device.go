// Package device defines the accelerator executor boundary: a kernel is
// submitted with a fixed index range and buffer views, and a handle reports
// completion once every write to the output range is host-visible.
package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/seantiz/offload/internal/partition"
)

// ErrQueueClosed reports a submission against an executor that has been closed.
var ErrQueueClosed = errors.New("submission queue closed")

// Executor is the interface all accelerator backends implement. Kernel
// compilation, buffer staging, and transfer scheduling are the backend's
// concern; callers only rely on the Handle's completion guarantee.
type Executor interface {
	// Submit enqueues the triad kernel over job.Range and returns without
	// waiting for it to run. Submission-time failures (backend unavailable,
	// queue closed) surface here as a *DeviceError.
	Submit(ctx context.Context, job Job) (*Handle, error)

	// Capabilities reports what this executor supports.
	Capabilities() Capabilities

	// Close releases the executor's submission queue. In-flight work
	// completes first.
	Close() error
}

// Job describes one kernel submission: c[i] = a[i] + alpha*b[i] for every i
// in Range. A and B are read-only views; the executor writes C only inside
// Range, which the caller guarantees is disjoint from every other writer.
type Job struct {
	RunID string
	Range partition.Range
	Alpha float64
	A, B  []float64
	C     []float64
}

// Capabilities describes what a backend supports.
type Capabilities struct {
	Name        string `json:"name"`
	MaxInFlight int    `json:"max_in_flight"`
	Description string `json:"description"`
}

// Handle tracks one submitted kernel. Wait returns once all writes to the
// job's output range are committed and visible to host-side reads, or with
// the execution error if the kernel faulted.
type Handle struct {
	done chan struct{}
	err  error
}

// NewHandle creates a pending handle. Backends call Complete exactly once.
func NewHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// Complete resolves the handle. The error write happens before the channel
// close, so Wait observes it safely.
func (h *Handle) Complete(err error) {
	h.err = err
	close(h.done)
}

// Wait blocks until the kernel finishes or ctx is cancelled.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DeviceError is an accelerator backend failure: unavailable backend, kernel
// compile failure, or a runtime fault. It is never retried; policy for what
// happens next lives in the engine.
type DeviceError struct {
	Device string
	Op     string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device %s: %s: %v", e.Device, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }
