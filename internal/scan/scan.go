// Package scan accumulates paginated store results into one logical sequence.
package scan

import (
	"context"
	"iter"
)

// FetchFunc retrieves one page of items. A nil cursor requests the first
// page; the returned next cursor is nil when no pages remain. Pages must be
// returned in a stable order with at most the store's page size per call.
type FetchFunc[T any, C any] func(ctx context.Context, cursor *C) (items []T, next *C, err error)

// Pages returns a lazy, single-pass sequence of pages. Fetches are strictly
// sequential: a page is yielded before the next one is requested, so callers
// can stop ranging to abandon the scan between pages. The context is checked
// before every fetch so a caller's deadline aborts a long scan without
// finishing every page. A fetch failure is yielded once and ends the
// sequence; nothing is retried.
func Pages[T any, C any](ctx context.Context, fetch FetchFunc[T, C]) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		var cursor *C
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			items, next, err := fetch(ctx, cursor)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(items, nil) {
				return
			}
			if next == nil {
				return
			}
			cursor = next
		}
	}
}

// Collect concatenates all pages in fetch order, preserving each page's
// internal order. On any page failure the error is returned and items
// collected so far are discarded.
func Collect[T any, C any](ctx context.Context, fetch FetchFunc[T, C]) ([]T, error) {
	var out []T
	for page, err := range Pages(ctx, fetch) {
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
	}
	return out, nil
}
