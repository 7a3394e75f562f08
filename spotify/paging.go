package spotify

import (
	"context"

	"golang.org/x/time/rate"
)

// Page is the offset-paginated envelope every listing endpoint returns.
// Next and Previous are opaque continuation URLs supplied by the server;
// they are followed verbatim through the authenticated pipeline, never
// reassembled client-side.
type Page[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// NextPage fetches the page after p, or nil when p is the last page.
func NextPage[T any](ctx context.Context, c *Client, p *Page[T]) (*Page[T], error) {
	if p == nil || p.Next == nil {
		return nil, nil
	}
	var next Page[T]
	if err := c.getURL(ctx, *p.Next, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// PrevPage fetches the page before p, or nil when p is the first page.
func PrevPage[T any](ctx context.Context, c *Client, p *Page[T]) (*Page[T], error) {
	if p == nil || p.Previous == nil {
		return nil, nil
	}
	var prev Page[T]
	if err := c.getURL(ctx, *p.Previous, &prev); err != nil {
		return nil, err
	}
	return &prev, nil
}

// AllItems walks every page starting from first and collects the items.
// A non-nil limiter paces the page fetches to stay under API rate limits;
// pass nil to fetch as fast as the server allows.
func AllItems[T any](ctx context.Context, c *Client, first *Page[T], limiter *rate.Limiter) ([]T, error) {
	if first == nil {
		return nil, nil
	}

	items := append([]T(nil), first.Items...)
	page := first
	for page.Next != nil {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		next, err := NextPage(ctx, c, page)
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		items = append(items, next.Items...)
		page = next
	}
	return items, nil
}
