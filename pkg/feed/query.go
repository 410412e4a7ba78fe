// Package feed implements the feed assembly and ranking core: query
// construction under filters, per-user preference vectors, the additive
// scoring function, oversample-then-rerank pagination, idempotent engagement
// toggles and realtime reconciliation of item changes.
package feed

import (
	"context"
	"fmt"

	"github.com/umputun/inspo/pkg/domain"
)

// oversampleMultiplier inflates the fetch size for personalized requests so
// post-fetch ranking has a nontrivial candidate pool to reorder
const oversampleMultiplier = 3

// ItemsStore provides the denormalized feed view
type ItemsStore interface {
	GetFeedItems(ctx context.Context, filters domain.Filters, sort domain.SortMode, limit, offset int) ([]domain.FeedItem, int, error)
	GetFeedItem(ctx context.Context, id string) (*domain.FeedItem, error)
}

// QueryEngine builds and executes the filtered, ordered, ranged query for
// one feed page against the content store
type QueryEngine struct {
	store ItemsStore
}

// NewQueryEngine creates a query engine over the given store
func NewQueryEngine(store ItemsStore) *QueryEngine {
	return &QueryEngine{store: store}
}

// QueryResult holds the raw rows of one fetch plus the exact total match
// count when the store provided one
type QueryResult struct {
	Items     []domain.FeedItem
	Total     *int
	FetchSize int
	Offset    int
}

// FetchPage retrieves the raw rows for one page. Personalized sort fetches
// pageSize*oversampleMultiplier rows using the newest storage ordering;
// reranking happens in the assembler, not via the store's ORDER BY.
func (q *QueryEngine) FetchPage(ctx context.Context, filters domain.Filters, sort domain.SortMode, page, pageSize int) (*QueryResult, error) {
	fetchSize := pageSize
	if sort == domain.SortPersonalized {
		fetchSize = pageSize * oversampleMultiplier
	}
	offset := page * fetchSize

	items, total, err := q.store.GetFeedItems(ctx, filters, sort, fetchSize, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch feed page %d: %w", page, err)
	}

	return &QueryResult{Items: items, Total: &total, FetchSize: fetchSize, Offset: offset}, nil
}
