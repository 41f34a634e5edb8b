package api

import (
	"context"
	"net/http"

	"github.com/covtrace/tracetriage/internal/model"
)

// RequirementList is one page of requirements.
type RequirementList struct {
	Items []model.Requirement `json:"items"`
	model.Page
}

// ListRequirements fetches one page of requirements.
func (c *Client) ListRequirements(ctx context.Context, page, pageSize int) (*RequirementList, error) {
	var out RequirementList
	if err := c.do(ctx, http.MethodGet, "/requirements", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRequirement fetches a single requirement by id.
func (c *Client) GetRequirement(ctx context.Context, id string) (*model.Requirement, error) {
	var out model.Requirement
	if err := c.do(ctx, http.MethodGet, "/requirements/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRequirement creates a requirement and returns the stored record.
func (c *Client) CreateRequirement(ctx context.Context, req model.Requirement) (*model.Requirement, error) {
	var out model.Requirement
	if err := c.do(ctx, http.MethodPost, "/requirements", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRequirement updates a requirement in place.
func (c *Client) UpdateRequirement(ctx context.Context, req model.Requirement) (*model.Requirement, error) {
	var out model.Requirement
	if err := c.do(ctx, http.MethodPut, "/requirements/"+req.ID, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRequirement deletes a requirement by id.
func (c *Client) DeleteRequirement(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/requirements/"+id, nil, nil, nil)
}

// RequirementMap pages through all requirements and returns them keyed by
// id. The suggestion dashboard joins against this map after every load;
// the pending-suggestion filter does not apply server-side to entities.
func (c *Client) RequirementMap(ctx context.Context) (map[string]model.Requirement, error) {
	out := make(map[string]model.Requirement)
	for page := 1; ; page++ {
		list, err := c.ListRequirements(ctx, page, lookupPageSize)
		if err != nil {
			return nil, err
		}
		for _, r := range list.Items {
			out[r.ID] = r
		}
		if len(list.Items) < lookupPageSize || len(out) >= list.Total {
			return out, nil
		}
	}
}

// lookupPageSize is the page size used when walking a full collection
// into an id-keyed lookup map.
const lookupPageSize = 200
