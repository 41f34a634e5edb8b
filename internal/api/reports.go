package api

import (
	"context"
	"net/http"

	"github.com/covtrace/tracetriage/internal/model"
)

// TraceabilityMatrix fetches the server-computed coverage matrix.
func (c *Client) TraceabilityMatrix(ctx context.Context) (*model.Matrix, error) {
	var out model.Matrix
	if err := c.do(ctx, http.MethodGet, "/traceability-matrix", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportTraceabilityMatrix downloads the matrix export as raw bytes.
func (c *Client) ExportTraceabilityMatrix(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, http.MethodGet, "/traceability-matrix/export", nil, nil)
}

// Metrics fetches the aggregate dashboard numbers.
func (c *Client) Metrics(ctx context.Context) (*model.Metrics, error) {
	var out model.Metrics
	if err := c.do(ctx, http.MethodGet, "/metrics", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SuggestionAnalytics fetches historical review-outcome statistics.
func (c *Client) SuggestionAnalytics(ctx context.Context) (*model.SuggestionAnalytics, error) {
	var out model.SuggestionAnalytics
	if err := c.do(ctx, http.MethodGet, "/analytics/suggestions", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
