package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/umputun/inspo/pkg/domain"
	"github.com/umputun/inspo/pkg/store"
)

// Assembler orchestrates one feed page request end-to-end: raw query,
// conditional preference vectors, scoring, trim and pagination metadata
type Assembler struct {
	query    *QueryEngine
	vectors  *VectorBuilder
	items    ItemsStore
	pageSize int
}

// NewAssembler creates a feed assembler. The externally visible page size is
// constant regardless of sort mode.
func NewAssembler(query *QueryEngine, vectors *VectorBuilder, items ItemsStore, pageSize int) *Assembler {
	return &Assembler{query: query, vectors: vectors, items: items, pageSize: pageSize}
}

// Fetch produces one page of the feed. For personalized sort the raw query
// and the vector build run concurrently and join before scoring; a failed
// vector build fails the whole request, there is no silent fallback to
// non-personalized ordering.
func (a *Assembler) Fetch(ctx context.Context, req domain.FeedRequest) (*domain.FeedPage, error) {
	if !req.Sort.Valid() {
		return nil, fmt.Errorf("unknown sort mode %q", req.Sort)
	}
	if req.Page < 0 {
		return nil, fmt.Errorf("page must be non-negative, got %d", req.Page)
	}
	if req.Sort == domain.SortPersonalized && req.UserID == "" {
		return nil, fmt.Errorf("personalized sort requires a user id")
	}

	var res *QueryResult
	var vectors *domain.PreferenceVectors

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := a.query.FetchPage(gctx, req.Filters, req.Sort, req.Page, a.pageSize)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if req.Sort == domain.SortPersonalized {
		g.Go(func() error {
			v, err := a.vectors.Build(gctx, req.UserID)
			if err != nil {
				return err
			}
			vectors = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if req.Sort == domain.SortPersonalized {
		return a.personalizedPage(req.Page, res, vectors), nil
	}
	return a.plainPage(req.Page, res), nil
}

// ItemByID retrieves a single denormalized feed item, nil when not found
func (a *Assembler) ItemByID(ctx context.Context, id string) (*domain.FeedItem, error) {
	item, err := a.items.GetFeedItem(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// plainPage packages rows that are already in final store order
func (a *Assembler) plainPage(page int, res *QueryResult) *domain.FeedPage {
	hasMore := len(res.Items) == res.FetchSize // short page implies no more rows
	if res.Total != nil {
		hasMore = res.Offset+len(res.Items) < *res.Total
	}

	return &domain.FeedPage{
		Items:    res.Items,
		HasMore:  hasMore,
		NextPage: nextPage(page, hasMore),
		Total:    res.Total,
	}
}

// personalizedPage scores the oversampled rows, sorts by score descending
// with creation time descending as tie-break, trims to page size and
// attaches the computed score to each returned row
func (a *Assembler) personalizedPage(page int, res *QueryResult, vectors *domain.PreferenceVectors) *domain.FeedPage {
	items := make([]domain.FeedItem, len(res.Items))
	copy(items, res.Items)

	for i := range items {
		s := Score(&items[i], vectors)
		items[i].Score = &s
	}

	sort.SliceStable(items, func(i, j int) bool {
		if *items[i].Score != *items[j].Score {
			return *items[i].Score > *items[j].Score
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	oversampled := len(items)
	if len(items) > a.pageSize {
		items = items[:a.pageSize]
	}

	hasMore := oversampled > a.pageSize // full oversample implies unranked remainder
	if res.Total != nil {
		hasMore = res.Offset+len(items) < *res.Total
	}

	return &domain.FeedPage{
		Items:    items,
		HasMore:  hasMore,
		NextPage: nextPage(page, hasMore),
		Total:    res.Total,
	}
}

func nextPage(page int, hasMore bool) *int {
	if !hasMore {
		return nil
	}
	next := page + 1
	return &next
}
