// Package schedule implements the availability engine: buffered conflict
// detection between reservations, per-hall/per-day availability reads, and
// month-wide calendar aggregation.
package schedule

// Hours describes a venue's fixed operational window and slot granularity,
// in minutes from midnight.
type Hours struct {
	OpenMinute  int
	CloseMinute int
	SlotMinutes int
}

// DefaultHours is the standard 09:00-17:00 window with one-hour slots.
var DefaultHours = Hours{
	OpenMinute:  9 * 60,
	CloseMinute: 17 * 60,
	SlotMinutes: 60,
}

// DefaultHalls is the hall set used when a caller supplies none.
var DefaultHalls = []string{"Main Hall", "East Wing", "Garden Hall"}

// Slots returns every fixed-width candidate slot start within the
// operational window. A slot must fit entirely before close.
func (h Hours) Slots() []int {
	var starts []int
	for s := h.OpenMinute; s+h.SlotMinutes <= h.CloseMinute; s += h.SlotMinutes {
		starts = append(starts, s)
	}
	return starts
}
