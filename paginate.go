package sdk

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// ErrStopWalk can be returned by a Walk visitor to end the walk early without
// reporting an error.
var ErrStopWalk = errors.New("sdk: stop walk")

// PageFetcher loads one page of a collection.
type PageFetcher[T any] func(ctx context.Context, page, pageSize int) (Envelope[[]T], error)

// WalkOptions tunes Walk.
type WalkOptions struct {
	// PageSize is passed to every fetch. Zero leaves the server default.
	PageSize int
	// MaxPages stops the walk after this many pages. Zero means no limit.
	MaxPages int
	// Limiter paces page fetches. Nil fetches back to back.
	Limiter *rate.Limiter
}

// Walk visits pages 1..PageCount in order. It stops at the first error from
// fetch or visit and never retries. A page without pagination metadata, or
// an empty page, ends the walk.
func Walk[T any](ctx context.Context, fetch PageFetcher[T], opts WalkOptions, visit func(items []T, info PageInfo) error) error {
	if fetch == nil || visit == nil {
		return ConfigError{Reason: "walk needs a fetcher and a visitor"}
	}
	for page := 1; opts.MaxPages <= 0 || page <= opts.MaxPages; page++ {
		if opts.Limiter != nil {
			if err := opts.Limiter.Wait(ctx); err != nil {
				return err
			}
		}
		env, err := fetch(ctx, page, opts.PageSize)
		if err != nil {
			return err
		}
		info := env.Pagination()
		if err := visit(env.Data, info); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
		if env.Meta.Pagination == nil || len(env.Data) == 0 || !info.HasNext() {
			return nil
		}
	}
	return nil
}

// Collect walks every page and returns the items in order.
func Collect[T any](ctx context.Context, fetch PageFetcher[T], opts WalkOptions) ([]T, error) {
	out := []T{}
	err := Walk(ctx, fetch, opts, func(items []T, _ PageInfo) error {
		out = append(out, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListFetcher adapts a resource List method, such as client.NGOs.List, to a
// PageFetcher. base supplies the sort, filters and populate hint; the page
// and page size are overwritten per fetch.
func ListFetcher[T any](list func(context.Context, ListParams) (Envelope[[]T], error), base ListParams) PageFetcher[T] {
	return func(ctx context.Context, page, pageSize int) (Envelope[[]T], error) {
		params := base
		params.Page = page
		if pageSize > 0 {
			params.PageSize = pageSize
		}
		return list(ctx, params)
	}
}
