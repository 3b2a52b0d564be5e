package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/hallbook/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version          string    `json:"version"`
	Type             string    `json:"type"`
	Timestamp        time.Time `json:"timestamp"`
	ReservationCount int       `json:"reservation_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes every reservation from the store as JSONL to w,
// preceded by a header record. Records are ordered by ID.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	reservations, err := s.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list reservations: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:          "1",
		Type:             "header",
		Timestamp:        time.Now().UTC(),
		ReservationCount: len(reservations),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, r := range reservations {
		if err := enc.Encode(record{Type: "reservation", Data: r}); err != nil {
			return fmt.Errorf("encode reservation %s: %w", r.ID, err)
		}
	}

	return nil
}
