package schedule

import (
	"time"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// DefaultBuffer is the mandatory idle period before and after any active
// reservation on the same hall.
const DefaultBuffer = time.Hour

// Conflicts reports whether a candidate interval overlaps an existing active
// reservation's interval once the existing interval is expanded by buffer on
// both sides. The boundary is non-inclusive: a candidate starting exactly at
// existing.End + buffer does not conflict.
//
// Degenerate candidates (End <= Start) are the caller's responsibility;
// input validation rejects them before this function runs.
func Conflicts(existing, candidate model.Interval, buffer time.Duration) bool {
	b := int(buffer / time.Minute)
	return candidate.Start < existing.End+b && existing.Start-b < candidate.End
}
