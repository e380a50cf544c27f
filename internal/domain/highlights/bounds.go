package highlights

import (
	"fmt"
	"math"
)

const (
	// MaxAutomatedSeconds is the duration target given to the service.
	MaxAutomatedSeconds = 60
	// MaxManualSeconds bounds operator-entered highlights. It is looser than
	// MaxAutomatedSeconds.
	MaxManualSeconds = 120

	maxSeconds = 1 << 40
)

// Truncate converts a timestamp to whole seconds, rounding toward zero.
// It reports false for NaN, infinities and values too large to be timestamps.
func Truncate(sec float64) (int, bool) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || math.Abs(sec) > maxSeconds {
		return 0, false
	}
	return int(math.Trunc(sec)), true
}

// Degenerate reports a zero-length highlight.
func Degenerate(start, end int) bool { return start == end }

// Violation is one failed manual bound.
type Violation string

const (
	ViolationNegativeStart Violation = "Start is >= 0"
	ViolationNotAfterStart Violation = "End is greater than Start"
	ViolationTooLong       Violation = "Duration is <= 120 seconds"
)

// CheckManual returns the rules a manually entered pair breaks.
func CheckManual(start, end int) []Violation {
	var out []Violation
	if start < 0 {
		out = append(out, ViolationNegativeStart)
	}
	if end <= start {
		out = append(out, ViolationNotAfterStart)
	}
	if end-start > MaxManualSeconds {
		out = append(out, ViolationTooLong)
	}
	return out
}

func FormatSpan(start, end int) string {
	return fmt.Sprintf("%ds to %ds (duration: %ds)", start, end, end-start)
}
