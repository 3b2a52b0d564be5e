package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPGate calls an external classifier service over HTTP/JSON.
type HTTPGate struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPGate creates a gate targeting the classifier at baseURL
// (e.g. "http://localhost:9090"). Evaluation POSTs to /v1/classify.
func NewHTTPGate(baseURL string) *HTTPGate {
	return &HTTPGate{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Evaluate sends the request to the classifier and returns its verdict.
func (g *HTTPGate) Evaluate(ctx context.Context, greq Request) (Decision, error) {
	data, err := json.Marshal(greq)
	if err != nil {
		return Decision{}, fmt.Errorf("marshaling classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/classify", bytes.NewReader(data))
	if err != nil {
		return Decision{}, fmt.Errorf("creating classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Decision{}, fmt.Errorf("reading classifier response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Decision{}, fmt.Errorf("classifier returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var d Decision
	if err := json.Unmarshal(body, &d); err != nil {
		return Decision{}, fmt.Errorf("decoding classifier response: %w", err)
	}
	return d, nil
}
