// Package lcsh talks to the remote LCSH authority lookup service.
package lcsh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public lookup service endpoint.
const DefaultBaseURL = "https://lcsh.098484.xyz"

// Record is a single validated heading returned by the lookup service.
type Record struct {
	Term            string  `json:"term"`
	SimilarityScore float64 `json:"similarity_score"`
	ID              string  `json:"id"`
	URL             string  `json:"url"`
}

// Result is the outcome of a validation batch. Error is set instead of
// Recommendations when the lookup could not be completed; callers render it
// rather than treating it as a fault.
type Result struct {
	Error           string   `json:"error,omitempty"`
	Recommendations []Record `json:"recommendations"`
}

// Client communicates with the LCSH lookup HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type recommendRequest struct {
	Terms []string `json:"terms"`
}

// Validate submits candidate terms in one batch and returns per-term
// authority records. Transport failures and non-2xx statuses are converted
// into an error Result, never propagated. Empty input short-circuits without
// a network call.
func (c *Client) Validate(ctx context.Context, candidates []string) Result {
	if len(candidates) == 0 {
		return Result{Error: "no terms to validate", Recommendations: []Record{}}
	}

	body, err := json.Marshal(recommendRequest{Terms: candidates})
	if err != nil {
		return Result{Error: fmt.Sprintf("marshal terms: %v", err), Recommendations: []Record{}}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return Result{Error: fmt.Sprintf("create request: %v", err), Recommendations: []Record{}}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Error: err.Error(), Recommendations: []Record{}}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{
			Error:           fmt.Sprintf("lcsh api status %d: %s", resp.StatusCode, string(respBody)),
			Recommendations: []Record{},
		}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{Error: fmt.Sprintf("decode response: %v", err), Recommendations: []Record{}}
	}
	if result.Recommendations == nil {
		result.Recommendations = []Record{}
	}
	return result
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
