package device

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// SimName is the registry name of the built-in simulated accelerator.
const SimName = "sim"

const simQueueDepth = 8

// Sim is a simulated accelerator. It mimics a real device queue: submissions
// are enqueued and drained by a single private goroutine, the kernel runs on
// that goroutine after an optional synthetic latency, and the handle resolves
// only after every write to the output range has landed. Faults can be
// injected to exercise the DeviceError path.
type Sim struct {
	queue   chan submission
	latency time.Duration
	fault   error
	log     *logrus.Logger
}

type submission struct {
	job    Job
	handle *Handle
}

// SimOption configures the simulated accelerator.
type SimOption func(*Sim)

// WithLatency adds a fixed synthetic delay before each kernel runs.
func WithLatency(d time.Duration) SimOption {
	return func(s *Sim) { s.latency = d }
}

// WithFault makes every kernel fail with the given error instead of running.
func WithFault(err error) SimOption {
	return func(s *Sim) { s.fault = err }
}

// WithLogOutput redirects the backend's internal logger.
func WithLogOutput(w io.Writer) SimOption {
	return func(s *Sim) { s.log.SetOutput(w) }
}

// NewSim creates a simulated accelerator and starts its submission queue.
func NewSim(opts ...SimOption) *Sim {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	s := &Sim{
		queue: make(chan submission, simQueueDepth),
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.drain()
	return s
}

// Submit enqueues the kernel. It returns a *DeviceError if the queue has been
// closed; otherwise the returned handle resolves when the kernel completes.
func (s *Sim) Submit(ctx context.Context, job Job) (h *Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			// Send on closed queue.
			h, err = nil, &DeviceError{Device: SimName, Op: "submit", Err: ErrQueueClosed}
		}
	}()

	if ctx.Err() != nil {
		return nil, &DeviceError{Device: SimName, Op: "submit", Err: ctx.Err()}
	}

	h = NewHandle()
	s.queue <- submission{job: job, handle: h}
	return h, nil
}

// Capabilities reports the simulated device's properties.
func (s *Sim) Capabilities() Capabilities {
	return Capabilities{
		Name:        SimName,
		MaxInFlight: simQueueDepth,
		Description: "in-process simulated accelerator",
	}
}

// Close shuts the submission queue down. Queued kernels still run.
func (s *Sim) Close() error {
	close(s.queue)
	return nil
}

// drain services the device queue one kernel at a time, mirroring an in-order
// accelerator command queue.
func (s *Sim) drain() {
	for sub := range s.queue {
		start := time.Now()

		if s.latency > 0 {
			time.Sleep(s.latency)
		}

		if s.fault != nil {
			s.log.WithFields(logrus.Fields{
				"run_id": sub.job.RunID,
				"range":  sub.job.Range.String(),
			}).Error("kernel fault injected")
			submissionsTotal.WithLabelValues(SimName, statusFailed).Inc()
			sub.handle.Complete(&DeviceError{Device: SimName, Op: "kernel", Err: s.fault})
			continue
		}

		job := sub.job
		for i := job.Range.Start; i < job.Range.End; i++ {
			job.C[i] = job.A[i] + job.Alpha*job.B[i]
		}

		s.log.WithFields(logrus.Fields{
			"run_id":   job.RunID,
			"range":    job.Range.String(),
			"elements": job.Range.Len(),
		}).Debug("kernel complete")

		kernelDuration.WithLabelValues(SimName).Observe(time.Since(start).Seconds())
		elementsProcessed.WithLabelValues(SimName).Add(float64(job.Range.Len()))
		submissionsTotal.WithLabelValues(SimName, statusCompleted).Inc()

		// Completing the handle is the host-visibility publish point: all
		// writes above happen before the channel close inside Complete.
		sub.handle.Complete(nil)
	}
}
