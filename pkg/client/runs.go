package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	ctypes "github.com/turtacn/admet-prioritizer/pkg/types/candidate"
)

// HealthStatus is the body of /healthz and /readyz.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
}

// ComponentStatus is the probe result of one server backend.
type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PrioritizeExample runs the bundled example data on the server.
func (c *Client) PrioritizeExample(ctx context.Context) (*ctypes.PrioritizeResponse, error) {
	return c.Prioritize(ctx, ctypes.PrioritizeRequest{Source: string(ctypes.SourceExample)})
}

// PrioritizeCSV sends CSV text for evaluation.
func (c *Client) PrioritizeCSV(ctx context.Context, data string) (*ctypes.PrioritizeResponse, error) {
	return c.Prioritize(ctx, ctypes.PrioritizeRequest{Source: string(ctypes.SourcePaste), Data: data})
}

// Prioritize posts req to /api/v1/prioritize.
func (c *Client) Prioritize(ctx context.Context, req ctypes.PrioritizeRequest) (*ctypes.PrioritizeResponse, error) {
	var resp ctypes.PrioritizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/prioritize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRun fetches a stored run.
func (c *Client) GetRun(ctx context.Context, runID string) (*ctypes.PrioritizeResponse, error) {
	var resp ctypes.PrioritizeResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/runs/"+url.PathEscape(runID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportCSV downloads the results table of a stored run.
func (c *Client) ExportCSV(ctx context.Context, runID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/runs/"+url.PathEscape(runID)+"/export.csv", nil, "text/csv")
}

// Depiction downloads the PNG depiction at position in the final order.
func (c *Client) Depiction(ctx context.Context, runID string, position int) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/runs/%s/depictions/%d.png", url.PathEscape(runID), position), nil, "image/png")
}

// Ready queries /readyz.  A not-ready server answers 503, which is retried
// like any server error and finally reported as an *APIError.
func (c *Client) Ready(ctx context.Context) (*HealthStatus, error) {
	var hs HealthStatus
	if err := c.do(ctx, http.MethodGet, "/readyz", nil, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

//Personal.AI order the ending
