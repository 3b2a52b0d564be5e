package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a half-open time-of-day range expressed in minutes from
// midnight. End must be strictly greater than Start for the interval to
// describe a bookable range; callers validate that before using it.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// String formats the interval as "HH:MM-HH:MM".
func (iv Interval) String() string {
	return FormatMinute(iv.Start) + "-" + FormatMinute(iv.End)
}

// ParseMinute parses a "HH:MM" clock string into minutes from midnight.
func ParseMinute(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// FormatMinute formats minutes from midnight as a "HH:MM" clock string.
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
