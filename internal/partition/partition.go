// Package partition splits one logical element range between the accelerator
// path and the CPU path.
package partition

import (
	"fmt"
	"math"
)

// Range is a half-open index interval [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of elements in the range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range contains no elements.
func (r Range) Empty() bool { return r.Start >= r.End }

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Split divides [0, total) into a device range and a CPU range at the given
// offload ratio. The device range is [0, ceil(total*ratio)) and the CPU range
// is the remainder, so the two ranges are disjoint, contiguous, and together
// cover the whole interval for any ratio in [0, 1]. ratio 0 leaves the device
// range empty; ratio 1 leaves the CPU range empty.
//
// The caller is responsible for validating total and ratio; see config.Validate.
func Split(total int, ratio float64) (device, cpu Range) {
	cut := int(math.Ceil(float64(total) * ratio))
	if cut > total {
		cut = total
	}
	device = Range{Start: 0, End: cut}
	cpu = Range{Start: cut, End: total}
	return device, cpu
}
