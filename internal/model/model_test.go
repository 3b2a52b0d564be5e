package model

import (
	"testing"
	"time"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []Status{"", "cancelled", "open"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestStatusActive(t *testing.T) {
	if !StatusPending.Active() || !StatusApproved.Active() {
		t.Error("pending and approved must count as active")
	}
	if StatusRejected.Active() {
		t.Error("rejected must vacate its slot")
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("pending is not terminal")
	}
	if !StatusApproved.Terminal() || !StatusRejected.Terminal() {
		t.Error("approved and rejected are terminal")
	}
}

func TestParseMinute(t *testing.T) {
	for _, tc := range []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"17:30", 1050, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	} {
		got, err := ParseMinute(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMinute(%q): expected error, got %d", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMinute(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMinute(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatMinute(t *testing.T) {
	for _, tc := range []struct {
		input int
		want  string
	}{
		{540, "09:00"},
		{0, "00:00"},
		{1050, "17:30"},
	} {
		if got := FormatMinute(tc.input); got != tc.want {
			t.Errorf("FormatMinute(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestIntervalString(t *testing.T) {
	iv := Interval{Start: 630, End: 690}
	if got := iv.String(); got != "10:30-11:30" {
		t.Errorf("Interval.String() = %q", got)
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 6, 10, 14, 22, 5, 0, time.UTC)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := Day(in); !got.Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestDisplayState(t *testing.T) {
	for _, tc := range []struct {
		status           Status
		approvalRequired bool
		want             string
	}{
		{StatusPending, true, "awaiting approval"},
		{StatusPending, false, "pending"},
		{StatusApproved, true, "confirmed"},
		{StatusRejected, false, "declined"},
	} {
		r := &Reservation{Status: tc.status, ApprovalRequired: tc.approvalRequired}
		if got := r.DisplayState(); got != tc.want {
			t.Errorf("DisplayState(%s, approval=%v) = %q, want %q", tc.status, tc.approvalRequired, got, tc.want)
		}
	}
}
