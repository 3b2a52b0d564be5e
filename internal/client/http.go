package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HTTPClient implements HallbookClient using the hallbook HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Reservations ---

func (c *HTTPClient) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*Reservation, error) {
	var res Reservation
	if err := c.doJSON(ctx, http.MethodPost, "/v1/reservations", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetReservation(ctx context.Context, token string) (*Reservation, error) {
	var res Reservation
	if err := c.doJSON(ctx, http.MethodGet, "/v1/reservations/token/"+url.PathEscape(token), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Decide(ctx context.Context, token string, req *DecideRequest) (*Reservation, error) {
	var res Reservation
	path := "/v1/reservations/token/" + url.PathEscape(token) + "/decide"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListReservations(ctx context.Context, requesterEmail string) ([]*Reservation, error) {
	var resp struct {
		Reservations []*Reservation `json:"reservations"`
	}
	path := "/v1/reservations?requester=" + url.QueryEscape(requesterEmail)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reservations, nil
}

// --- Availability ---

func (c *HTTPClient) CheckAvailability(ctx context.Context, req *AvailabilityRequest) (*AvailabilityResponse, error) {
	q := url.Values{}
	q.Set("hall", req.Hall)
	q.Set("day", req.Day)
	q.Set("start", req.Start)
	q.Set("end", req.End)

	var resp AvailabilityResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/availability?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Calendar(ctx context.Context, req *CalendarRequest) (*CalendarResponse, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(req.Year))
	q.Set("month", strconv.Itoa(req.Month))
	if len(req.Halls) > 0 {
		q.Set("halls", strings.Join(req.Halls, ","))
	}

	var resp CalendarResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/calendar?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListHalls(ctx context.Context) (*HallsResponse, error) {
	var resp HallsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/halls", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
