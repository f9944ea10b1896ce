package engine

import (
	"sync"
	"sync/atomic"
)

// Gateway is the injection point through which asynchronous work returns
// results into the graph. Reserve marks one unit of work outstanding before
// the graph could possibly observe idleness; Release resolves it only after
// the corresponding token has been queued with TryPut. The coordinator's
// drain waits on this pairing, which is what keeps the run from being
// declared complete while accelerator work is still in flight.
type Gateway struct {
	tokens      chan Token
	wg          sync.WaitGroup
	outstanding atomic.Int64
}

// NewGateway creates a gateway whose token queue holds capacity tokens
// without blocking the producer. Size it to the number of activations.
func NewGateway(capacity int) *Gateway {
	return &Gateway{
		tokens: make(chan Token, capacity),
	}
}

// Reserve marks one unit of asynchronous work outstanding. It must be called
// before the work is handed off, never from the worker itself.
func (g *Gateway) Reserve() {
	g.outstanding.Add(1)
	g.wg.Add(1)
	outstandingWork.Inc()
}

// TryPut queues a completion token for the join without blocking the caller,
// provided the gateway was sized to the activation count.
func (g *Gateway) TryPut(t Token) {
	g.tokens <- t
}

// Release resolves one outstanding unit. Call it only after the unit's token
// has been durably queued.
func (g *Gateway) Release() {
	outstandingWork.Dec()
	g.outstanding.Add(-1)
	g.wg.Done()
}

// Tokens returns the channel the join consumes device-path tokens from.
func (g *Gateway) Tokens() <-chan Token {
	return g.tokens
}

// Outstanding returns the current number of reserved, unreleased units.
func (g *Gateway) Outstanding() int64 {
	return g.outstanding.Load()
}

// Wait blocks until every reserved unit has been released.
func (g *Gateway) Wait() {
	g.wg.Wait()
}
