package sdk

import (
	"context"
	"fmt"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
)

// BlogPostsClient reads published stories. Drafts are always excluded from lists.
type BlogPostsClient struct {
	client *Client
}

// List returns one page of live posts.
func (c *BlogPostsClient) List(ctx context.Context, params ListParams) (Envelope[[]BlogPost], error) {
	if c == nil || c.client == nil {
		return Envelope[[]BlogPost]{}, fmt.Errorf("sdk: blog posts client not initialized")
	}
	q := params.builder(query.MatchExact).
		Set("draft", false).
		Set("publicationState", "live")
	return listEntities[BlogPost](ctx, c.client, routes.BlogPosts, q)
}

// Get fetches one post by id or document id.
func (c *BlogPostsClient) Get(ctx context.Context, id, populate string) (Envelope[*BlogPost], error) {
	if c == nil || c.client == nil {
		return Envelope[*BlogPost]{}, fmt.Errorf("sdk: blog posts client not initialized")
	}
	return getEntity[BlogPost](ctx, c.client, routes.BlogPosts, id, populate)
}
