package gate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testRequest() Request {
	return Request{
		Hall:           "Main Hall",
		Day:            "2024-06-10",
		StartMinute:    9 * 60,
		EndMinute:      11 * 60,
		RequesterName:  "Dana Mills",
		RequesterEmail: "dana@example.com",
	}
}

func TestHTTPGate_Evaluate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/classify" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Hall != "Main Hall" || req.Day != "2024-06-10" {
			t.Errorf("unexpected payload: %+v", req)
		}
		json.NewEncoder(w).Encode(Decision{RequiresApproval: true, Reason: "large booking"})
	}))
	defer srv.Close()

	g := NewHTTPGate(srv.URL)
	d, err := g.Evaluate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.RequiresApproval || d.Reason != "large booking" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestHTTPGate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewHTTPGate(srv.URL)
	if _, err := g.Evaluate(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestHTTPGate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	g := NewHTTPGate(srv.URL)
	if _, err := g.Evaluate(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for unreachable classifier")
	}
}

func TestStatic_Evaluate(t *testing.T) {
	g := NewStatic()

	short := testRequest()
	short.EndMinute = short.StartMinute + 60
	d, err := g.Evaluate(context.Background(), short)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.RequiresApproval {
		t.Fatal("1h booking should not require approval")
	}

	// Exactly at the threshold stays auto-approved.
	edge := testRequest()
	edge.EndMinute = edge.StartMinute + DefaultMaxAutoMinutes
	d, _ = g.Evaluate(context.Background(), edge)
	if d.RequiresApproval {
		t.Fatal("booking at threshold should not require approval")
	}

	long := testRequest()
	long.EndMinute = long.StartMinute + 180
	d, _ = g.Evaluate(context.Background(), long)
	if !d.RequiresApproval {
		t.Fatal("3h booking should require approval")
	}
	if d.Reason == "" {
		t.Fatal("expected an advisory reason")
	}
}
