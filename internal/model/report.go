package model

import (
	"time"

	"github.com/seantiz/offload/internal/partition"
)

// Report run outcomes.
const (
	VerdictCorrect = "correct"
	VerdictError   = "error"
)

// Report summarizes one completed triad run: how the array was split, how long
// each path took, and whether the merged result matched the serial reference.
type Report struct {
	ID          string          `json:"id"`
	Device      string          `json:"device"`
	ArraySize   int             `json:"array_size"`
	Ratio       float64         `json:"ratio"`
	Alpha       float64         `json:"alpha"`
	DeviceRange partition.Range `json:"device_range"`
	CPURange    partition.Range `json:"cpu_range"`
	Verdict     string          `json:"verdict"`
	State       string          `json:"state"`
	CPUMS       int64           `json:"cpu_ms"`
	DeviceMS    int64           `json:"device_ms"`
	DurationMS  int64           `json:"duration_ms"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}

// Correct reports whether the heterogeneous result matched the reference.
func (r *Report) Correct() bool {
	return r.Verdict == VerdictCorrect
}
