package engine

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/seantiz/offload/internal/device"
	"github.com/seantiz/offload/internal/partition"
)

const bridgeQueueDepth = 8

// Bridge turns the device executor's long-latency submit/wait lifecycle into
// a graph node that never occupies a graph goroutine while waiting. Exactly
// one dedicated goroutine per bridge services submissions, so multiple
// activations serialize instead of oversubscribing the device queue. Only
// that goroutine ever blocks.
type Bridge struct {
	exec   device.Executor
	logger *slog.Logger
	fatal  bool

	jobs      chan bridgeJob
	done      chan struct{}
	closeOnce sync.Once
}

type bridgeJob struct {
	ctx context.Context
	act Activation
	gw  *Gateway
}

// NewBridge creates a bridge around exec and starts its dedicated submission
// goroutine. When fatal is true, a device failure terminates the process
// immediately instead of propagating through the completion channel.
func NewBridge(exec device.Executor, logger *slog.Logger, fatal bool) *Bridge {
	b := &Bridge{
		exec:   exec,
		logger: logger,
		fatal:  fatal,
		jobs:   make(chan bridgeJob, bridgeQueueDepth),
		done:   make(chan struct{}),
	}
	go b.loop()
	return b
}

// Activate hands one activation to the dedicated goroutine. The gateway
// reservation happens here, synchronously, before the work is queued: once
// Activate returns, the graph cannot be observed idle until the device path
// has delivered its token and released the reservation.
func (b *Bridge) Activate(ctx context.Context, act Activation, gw *Gateway) {
	gw.Reserve()
	b.jobs <- bridgeJob{ctx: ctx, act: act, gw: gw}
}

// Close stops accepting activations and waits for queued work to finish.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.jobs) })
	<-b.done
}

func (b *Bridge) loop() {
	defer close(b.done)
	for job := range b.jobs {
		tok := Token{Seq: job.act.Seq, Path: PathDevice}

		start := time.Now()
		err := b.submitAndWait(job.ctx, job.act)
		tok.Elapsed = time.Since(start)

		if err != nil {
			if b.fatal {
				b.logger.Error("device executor failed", "run_id", job.act.RunID, "error", err)
				os.Exit(1)
			}
			tok.Err = err
		} else {
			pathDuration.WithLabelValues(PathDevice).Observe(tok.Elapsed.Seconds())
		}

		// Token first, then release: the join must be able to see the token
		// before the outstanding counter can reach zero.
		job.gw.TryPut(tok)
		job.gw.Release()
	}
}

// submitAndWait computes the device range from the activation's ratio, hands
// the kernel to the executor, and blocks this goroutine until the executor
// reports that every write to C over the device range is host-visible.
func (b *Bridge) submitAndWait(ctx context.Context, act Activation) error {
	devRange, _ := partition.Split(act.Buffers.Len(), act.Ratio)
	b.logger.Info("device range",
		"run_id", act.RunID,
		"start", devRange.Start,
		"end", devRange.End,
	)

	h, err := b.exec.Submit(ctx, device.Job{
		RunID: act.RunID,
		Range: devRange,
		Alpha: act.Alpha,
		A:     act.Buffers.A,
		B:     act.Buffers.B,
		C:     act.Buffers.C,
	})
	if err != nil {
		return err
	}
	return h.Wait(ctx)
}
