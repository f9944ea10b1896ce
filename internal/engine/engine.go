// Package engine wires the split/dispatch/async-bridge/join graph: a
// single-shot source fans an offload ratio out to a data-parallel CPU worker
// and an asynchronous device bridge, a queueing join pairs their completion
// tokens, and a terminal consumer verifies the merged result. The coordinator
// blocks until every in-flight unit of work has drained.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seantiz/offload/internal/config"
	"github.com/seantiz/offload/internal/device"
	"github.com/seantiz/offload/internal/model"
	"github.com/seantiz/offload/internal/partition"
	"github.com/seantiz/offload/internal/verify"
)

// Engine coordinates one heterogeneous triad run.
type Engine struct {
	cfg      config.Config
	registry *device.Registry
	logger   *slog.Logger
}

// Result carries the run report plus the arrays for verbose inspection.
type Result struct {
	Report *model.Report
	C      []float64
	Gold   []float64
}

// New creates a coordinator. The configuration must already be validated.
func New(cfg config.Config, registry *device.Registry, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
	}
}

// Run executes one single-shot activation: allocate and seed the buffers,
// fire the source once, dispatch both paths, join their tokens, verify, and
// drain. It returns a *device.DeviceError (wrapped) if the accelerator path
// failed; the verifier never runs over a partial buffer.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	exec, err := e.registry.Resolve(e.cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("resolve device: %w", err)
	}

	report := &model.Report{
		ID:        model.NewID(),
		Device:    e.cfg.Device,
		ArraySize: e.cfg.ArraySize,
		Ratio:     e.cfg.Ratio,
		Alpha:     e.cfg.Alpha,
		State:     model.StateIdle,
		StartedAt: time.Now().UTC(),
	}
	report.DeviceRange, report.CPURange = partition.Split(e.cfg.ArraySize, e.cfg.Ratio)

	bufs := NewBuffers(e.cfg.ArraySize)
	res := &Result{Report: report, C: bufs.C}

	gw := NewGateway(1)
	bridge := NewBridge(exec, e.logger, e.cfg.OnDeviceError == config.DeviceErrorFatal)
	defer bridge.Close()

	cpuTokens := make(chan Token, 1)

	// Single-shot source: a guard flag prevents re-emission within the run.
	fired := false
	source := func() (Activation, bool) {
		if fired {
			return Activation{}, false
		}
		fired = true
		activationsTotal.Inc()
		return Activation{
			Seq:     0,
			RunID:   report.ID,
			Ratio:   e.cfg.Ratio,
			Alpha:   e.cfg.Alpha,
			Buffers: bufs,
		}, true
	}

	act, ok := source()
	if !ok {
		return nil, fmt.Errorf("source did not emit")
	}
	e.transition(report, model.StateActivated)

	// Fan out: the bridge reserves its gateway unit before Activate returns,
	// so the device path counts as outstanding from this point on.
	bridge.Activate(ctx, act, gw)
	go func() {
		cpuTokens <- e.runCPU(act)
	}()
	e.transition(report, model.StateDispatched)

	var pair Pair
	for p := range Join(cpuTokens, gw.Tokens(), 1) {
		pair = p
	}
	e.transition(report, model.StateJoined)

	report.CPUMS = pair.CPU.Elapsed.Milliseconds()
	report.DeviceMS = pair.Device.Elapsed.Milliseconds()

	if pair.Device.Err != nil {
		gw.Wait()
		e.finish(report, model.StateFailed)
		return res, fmt.Errorf("device path: %w", pair.Device.Err)
	}

	// Terminal consumer: serial recompute and comparison, run synchronously
	// at join emission.
	res.Gold = verify.Gold(bufs.A, bufs.B, e.cfg.Alpha)
	if verify.Equal(bufs.C, res.Gold) {
		report.Verdict = model.VerdictCorrect
	} else {
		report.Verdict = model.VerdictError
	}
	e.logger.Info("heterogeneous triad verdict",
		"run_id", report.ID,
		"verdict", report.Verdict,
	)

	// Drain: no token may be unaccounted for. The gateway wait returns only
	// after the bridge released its reservation.
	gw.Wait()
	e.finish(report, model.StateDrained)
	runDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

	return res, nil
}

// runCPU is the synchronous CPU node: it computes its share of the split with
// data-parallel chunking and returns its completion token directly.
func (e *Engine) runCPU(act Activation) Token {
	_, cpuRange := partition.Split(act.Buffers.Len(), act.Ratio)
	e.logger.Info("cpu range",
		"run_id", act.RunID,
		"start", cpuRange.Start,
		"end", cpuRange.End,
	)

	start := time.Now()
	triadParallel(cpuRange, act.Buffers, act.Alpha, e.cfg.Workers)
	elapsed := time.Since(start)

	pathDuration.WithLabelValues(PathCPU).Observe(elapsed.Seconds())
	return Token{Seq: act.Seq, Path: PathCPU, Elapsed: elapsed}
}

func (e *Engine) transition(r *model.Report, to string) {
	if !model.ValidTransition(r.State, to) {
		panic(fmt.Sprintf("engine: invalid state transition %s -> %s", r.State, to))
	}
	r.State = to
	e.logger.Debug("state transition", "run_id", r.ID, "state", to)
}

func (e *Engine) finish(r *model.Report, state string) {
	e.transition(r, state)
	r.FinishedAt = time.Now().UTC()
	r.DurationMS = r.FinishedAt.Sub(r.StartedAt).Milliseconds()
}
