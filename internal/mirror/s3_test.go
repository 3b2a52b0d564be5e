package mirror

import "testing"

func TestEmailKey(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"dana@example.com", "dana@example.com"},
		{"Dana@Example.COM", "dana@example.com"},
		{"a b@example.com", "a%20b@example.com"},
		{"x/y@example.com", "x%2Fy@example.com"},
	}
	for _, tt := range tests {
		if got := emailKey(tt.email); got != tt.want {
			t.Errorf("emailKey(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestS3MirrorKeys(t *testing.T) {
	m := &S3Mirror{bucket: "hallbook", prefix: "mirror"}

	if got := m.reservationKey("rs-abc"); got != "mirror/reservations/rs-abc.json" {
		t.Errorf("reservationKey = %q", got)
	}
	if got := m.requesterKey("Dana@Example.com", "rs-abc"); got != "mirror/requesters/dana@example.com/rs-abc.json" {
		t.Errorf("requesterKey = %q", got)
	}
	if got := m.key("snapshot.jsonl"); got != "mirror/snapshot.jsonl" {
		t.Errorf("snapshot key = %q", got)
	}

	// No prefix configured.
	bare := &S3Mirror{bucket: "hallbook"}
	if got := bare.reservationKey("rs-abc"); got != "reservations/rs-abc.json" {
		t.Errorf("reservationKey without prefix = %q", got)
	}
}
