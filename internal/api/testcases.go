package api

import (
	"context"
	"net/http"

	"github.com/covtrace/tracetriage/internal/model"
)

// TestCaseList is one page of test cases.
type TestCaseList struct {
	Items []model.TestCase `json:"items"`
	model.Page
}

// ListTestCases fetches one page of test cases.
func (c *Client) ListTestCases(ctx context.Context, page, pageSize int) (*TestCaseList, error) {
	var out TestCaseList
	if err := c.do(ctx, http.MethodGet, "/test-cases", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTestCase fetches a single test case by id.
func (c *Client) GetTestCase(ctx context.Context, id string) (*model.TestCase, error) {
	var out model.TestCase
	if err := c.do(ctx, http.MethodGet, "/test-cases/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTestCase creates a test case and returns the stored record.
func (c *Client) CreateTestCase(ctx context.Context, tc model.TestCase) (*model.TestCase, error) {
	var out model.TestCase
	if err := c.do(ctx, http.MethodPost, "/test-cases", nil, tc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTestCase updates a test case in place.
func (c *Client) UpdateTestCase(ctx context.Context, tc model.TestCase) (*model.TestCase, error) {
	var out model.TestCase
	if err := c.do(ctx, http.MethodPut, "/test-cases/"+tc.ID, nil, tc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTestCase deletes a test case by id.
func (c *Client) DeleteTestCase(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/test-cases/"+id, nil, nil, nil)
}

// TestCaseMap pages through all test cases keyed by id.
func (c *Client) TestCaseMap(ctx context.Context) (map[string]model.TestCase, error) {
	out := make(map[string]model.TestCase)
	for page := 1; ; page++ {
		list, err := c.ListTestCases(ctx, page, lookupPageSize)
		if err != nil {
			return nil, err
		}
		for _, tc := range list.Items {
			out[tc.ID] = tc
		}
		if len(list.Items) < lookupPageSize || len(out) >= list.Total {
			return out, nil
		}
	}
}
