package sdk

import (
	"context"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
)

// listEntities and getEntity back every read-only resource client.

func listEntities[T any](ctx context.Context, c *Client, route string, q *query.Builder) (Envelope[[]T], error) {
	return Get[[]T](ctx, c, route, q)
}

func getEntity[T any](ctx context.Context, c *Client, route, id, populate string) (Envelope[*T], error) {
	path, err := entityPath(route, id)
	if err != nil {
		return Envelope[*T]{}, err
	}
	return Get[*T](ctx, c, path, query.New().Populate(populate))
}
