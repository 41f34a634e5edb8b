package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/covtrace/tracetriage/internal/model"
)

// SuggestionList is one page of pending suggestions.
type SuggestionList struct {
	Items []model.Suggestion `json:"items"`
	model.Page
}

// PendingSuggestions fetches one page of pending suggestions. filters is
// the encoded filter state (min_score, sort_by, search, ...) and may be nil.
func (c *Client) PendingSuggestions(ctx context.Context, filters url.Values, page, pageSize int) (*SuggestionList, error) {
	q := pageQuery(page, pageSize)
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	var out SuggestionList
	if err := c.do(ctx, http.MethodGet, "/suggestions/pending", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type reviewRequest struct {
	Status   model.ReviewDecision `json:"status"`
	Feedback string               `json:"feedback,omitempty"`
}

// ReviewSuggestion submits a single accept/reject decision.
func (c *Client) ReviewSuggestion(ctx context.Context, id string, decision model.ReviewDecision, feedback string) error {
	return c.do(ctx, http.MethodPost, "/suggestions/"+id+"/review", nil,
		reviewRequest{Status: decision, Feedback: feedback}, nil)
}

type bulkReviewRequest struct {
	IDs    []string             `json:"ids"`
	Status model.ReviewDecision `json:"status"`
}

// BulkReview submits one decision for a set of suggestions. The server
// reports per-item outcome counts; partial failure is normal here.
func (c *Client) BulkReview(ctx context.Context, ids []string, decision model.ReviewDecision) (model.BulkReviewResult, error) {
	var out model.BulkReviewResult
	err := c.do(ctx, http.MethodPost, "/suggestions/bulk-review", nil,
		bulkReviewRequest{IDs: ids, Status: decision}, &out)
	return out, err
}

// GenerateResult reports how many suggestions a generation run produced.
type GenerateResult struct {
	Created int `json:"created"`
}

// GenerateSuggestions triggers server-side suggestion generation.
func (c *Client) GenerateSuggestions(ctx context.Context) (GenerateResult, error) {
	var out GenerateResult
	err := c.do(ctx, http.MethodPost, "/suggestions/generate", nil, nil, &out)
	return out, err
}

// ExportSuggestionsCSV downloads the CSV export as raw bytes.
func (c *Client) ExportSuggestionsCSV(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, http.MethodGet, "/suggestions/export/csv", nil, nil)
}
