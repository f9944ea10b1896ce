package engine

import "time"

// Completion token paths.
const (
	PathCPU    = "cpu"
	PathDevice = "device"
)

// Token is the completion marker each compute path delivers to the join. Its
// payload is not meaningful; its arrival means "this path's writes to C are
// now visible". A non-nil Err marks a failed device path and keeps the
// consumer from running over a partial buffer.
type Token struct {
	Seq     int
	Path    string
	Err     error
	Elapsed time.Duration
}

// Activation is one firing of the source: a ratio value handed to both
// compute paths along with the buffers they operate on.
type Activation struct {
	Seq     int
	RunID   string
	Ratio   float64
	Alpha   float64
	Buffers *Buffers
}
