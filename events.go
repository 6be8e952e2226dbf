package sdk

import (
	"context"
	"fmt"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
)

// EventsClient reads scheduled events. Filters match exactly.
type EventsClient struct {
	client *Client
}

// List returns one page of events.
func (c *EventsClient) List(ctx context.Context, params ListParams) (Envelope[[]Event], error) {
	if c == nil || c.client == nil {
		return Envelope[[]Event]{}, fmt.Errorf("sdk: events client not initialized")
	}
	return listEntities[Event](ctx, c.client, routes.Events, params.builder(query.MatchExact))
}

// Get fetches one event.
func (c *EventsClient) Get(ctx context.Context, id, populate string) (Envelope[*Event], error) {
	if c == nil || c.client == nil {
		return Envelope[*Event]{}, fmt.Errorf("sdk: events client not initialized")
	}
	return getEntity[Event](ctx, c.client, routes.Events, id, populate)
}
