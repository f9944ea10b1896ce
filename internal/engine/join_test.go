package engine_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/seantiz/offload/internal/engine"
)

func TestJoinPairsSingleActivation(t *testing.T) {
	cpu := make(chan engine.Token, 1)
	dev := make(chan engine.Token, 1)

	dev <- engine.Token{Seq: 0, Path: engine.PathDevice}
	cpu <- engine.Token{Seq: 0, Path: engine.PathCPU}

	var pairs []engine.Pair
	for p := range engine.Join(cpu, dev, 1) {
		pairs = append(pairs, p)
	}

	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].CPU.Path != engine.PathCPU || pairs[0].Device.Path != engine.PathDevice {
		t.Errorf("pair paths = (%s, %s), want (cpu, device)", pairs[0].CPU.Path, pairs[0].Device.Path)
	}
}

func TestJoinPairsBySequence(t *testing.T) {
	const k = 8
	cpu := make(chan engine.Token, k)
	dev := make(chan engine.Token, k)

	// Feed each port in a shuffled order; the join must still pair siblings
	// by sequence number and emit in activation order.
	perm := rand.Perm(k)
	for _, seq := range perm {
		cpu <- engine.Token{Seq: seq, Path: engine.PathCPU}
	}
	perm = rand.Perm(k)
	for _, seq := range perm {
		dev <- engine.Token{Seq: seq, Path: engine.PathDevice}
	}

	var pairs []engine.Pair
	for p := range engine.Join(cpu, dev, k) {
		pairs = append(pairs, p)
	}

	if len(pairs) != k {
		t.Fatalf("got %d pairs, want %d", len(pairs), k)
	}
	for i, p := range pairs {
		if p.CPU.Seq != i || p.Device.Seq != i {
			t.Errorf("pair %d has seqs (%d, %d), want (%d, %d)", i, p.CPU.Seq, p.Device.Seq, i, i)
		}
		if p.CPU.Path != engine.PathCPU || p.Device.Path != engine.PathDevice {
			t.Errorf("pair %d mixed up ports: (%s, %s)", i, p.CPU.Path, p.Device.Path)
		}
	}
}

func TestJoinHoldsEarlyArrival(t *testing.T) {
	cpu := make(chan engine.Token, 1)
	dev := make(chan engine.Token, 1)

	out := engine.Join(cpu, dev, 1)

	cpu <- engine.Token{Seq: 0, Path: engine.PathCPU}

	// Only one sibling has arrived: nothing may be emitted.
	select {
	case p, ok := <-out:
		if ok {
			t.Fatalf("join emitted %+v before both siblings arrived", p)
		}
		t.Fatal("join closed before both siblings arrived")
	case <-time.After(20 * time.Millisecond):
	}

	dev <- engine.Token{Seq: 0, Path: engine.PathDevice}

	select {
	case p := <-out:
		if p.CPU.Seq != 0 || p.Device.Seq != 0 {
			t.Errorf("pair seqs = (%d, %d), want (0, 0)", p.CPU.Seq, p.Device.Seq)
		}
	case <-time.After(time.Second):
		t.Fatal("join did not emit after both siblings arrived")
	}

	if _, ok := <-out; ok {
		t.Error("join emitted more than k pairs")
	}
}

func TestJoinPropagatesErrorToken(t *testing.T) {
	cpu := make(chan engine.Token, 1)
	dev := make(chan engine.Token, 1)

	cpu <- engine.Token{Seq: 0, Path: engine.PathCPU}
	dev <- engine.Token{Seq: 0, Path: engine.PathDevice, Err: errFake}

	p := <-engine.Join(cpu, dev, 1)
	if p.Device.Err == nil {
		t.Error("device error token lost in join")
	}
	if p.CPU.Err != nil {
		t.Error("cpu token unexpectedly carries an error")
	}
}
