package sdk

import (
	"context"
	"fmt"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
)

// NGOsClient reads the NGO directory. Filters match case-insensitive substrings.
type NGOsClient struct {
	client *Client
}

// List returns one page of NGOs.
func (c *NGOsClient) List(ctx context.Context, params ListParams) (Envelope[[]NGO], error) {
	if c == nil || c.client == nil {
		return Envelope[[]NGO]{}, fmt.Errorf("sdk: ngos client not initialized")
	}
	return listEntities[NGO](ctx, c.client, routes.NGOs, params.builder(query.MatchContains))
}

// Search is List with the directory's search fields applied.
func (c *NGOsClient) Search(ctx context.Context, filter NGOFilter, params ListParams) (Envelope[[]NGO], error) {
	params.Filters = append(filter.Filters(), params.Filters...)
	return c.List(ctx, params)
}

// Get fetches one NGO by id or document id. A missing NGO is not an error:
// the envelope's Found reports false.
func (c *NGOsClient) Get(ctx context.Context, id, populate string) (Envelope[*NGO], error) {
	if c == nil || c.client == nil {
		return Envelope[*NGO]{}, fmt.Errorf("sdk: ngos client not initialized")
	}
	return getEntity[NGO](ctx, c.client, routes.NGOs, id, populate)
}
