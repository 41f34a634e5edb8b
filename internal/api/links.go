package api

import (
	"context"
	"net/http"

	"github.com/covtrace/tracetriage/internal/model"
)

// LinkList is one page of confirmed links.
type LinkList struct {
	Items []model.Link `json:"items"`
	model.Page
}

// ListLinks fetches one page of links.
func (c *Client) ListLinks(ctx context.Context, page, pageSize int) (*LinkList, error) {
	var out LinkList
	if err := c.do(ctx, http.MethodGet, "/links", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateLink creates a manual link between a requirement and a test case.
func (c *Client) CreateLink(ctx context.Context, link model.Link) (*model.Link, error) {
	var out model.Link
	if err := c.do(ctx, http.MethodPost, "/links", nil, link, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLink deletes a link by id.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/links/"+id, nil, nil, nil)
}
