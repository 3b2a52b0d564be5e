package schedule

import (
	"context"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/model"
)

// DayStatus is the aggregate availability of a calendar day across halls.
type DayStatus string

const (
	DayAvailable   DayStatus = "available"
	DayFullyBooked DayStatus = "fully-booked"
)

// Aggregator derives per-day availability for a whole month.
type Aggregator struct {
	index        *Index
	hours        Hours
	buffer       time.Duration
	defaultHalls []string
}

// NewAggregator returns an Aggregator over the given availability index.
// defaultHalls is used when a query supplies no halls; when empty it falls
// back to DefaultHalls.
func NewAggregator(index *Index, hours Hours, buffer time.Duration, defaultHalls []string) *Aggregator {
	if len(defaultHalls) == 0 {
		defaultHalls = DefaultHalls
	}
	return &Aggregator{index: index, hours: hours, buffer: buffer, defaultHalls: defaultHalls}
}

// MonthStatus maps every day of the month (1-based) to its availability.
// A day is available when at least one hall has at least one candidate slot
// free of buffered conflicts. Active reservations are fetched once per
// hall/day and reused across all slot checks.
func (a *Aggregator) MonthStatus(ctx context.Context, halls []string, year int, month time.Month) map[int]DayStatus {
	if len(halls) == 0 {
		halls = a.defaultHalls
	}

	slots := a.hours.Slots()
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	result := make(map[int]DayStatus, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		result[d] = DayFullyBooked
		for _, hall := range halls {
			if a.hallHasFreeSlot(ctx, hall, day, slots) {
				result[d] = DayAvailable
				break
			}
		}
	}
	return result
}

// hallHasFreeSlot reports whether any candidate slot on the hall/day has
// zero buffered conflicts against the hall's active reservations.
func (a *Aggregator) hallHasFreeSlot(ctx context.Context, hall string, day time.Time, slots []int) bool {
	active := a.index.ListActive(ctx, hall, day)
	if len(active) == 0 {
		return len(slots) > 0
	}

	for _, start := range slots {
		candidate := model.Interval{Start: start, End: start + a.hours.SlotMinutes}
		free := true
		for _, r := range active {
			if Conflicts(r.Interval(), candidate, a.buffer) {
				free = false
				break
			}
		}
		if free {
			return true
		}
	}
	return false
}
