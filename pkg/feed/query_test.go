package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/inspo/pkg/domain"
)

type stubItemsStore struct {
	items []domain.FeedItem
	total int
	err   error

	gotFilters domain.Filters
	gotSort    domain.SortMode
	gotLimit   int
	gotOffset  int
}

func (s *stubItemsStore) GetFeedItems(_ context.Context, filters domain.Filters, sort domain.SortMode, limit, offset int) ([]domain.FeedItem, int, error) {
	s.gotFilters, s.gotSort, s.gotLimit, s.gotOffset = filters, sort, limit, offset
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.items, s.total, nil
}

func (s *stubItemsStore) GetFeedItem(_ context.Context, id string) (*domain.FeedItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, errors.New("not found")
}

func TestQueryEngine_FetchPage(t *testing.T) {
	t.Run("plain sorts fetch exactly the page size", func(t *testing.T) {
		for _, sortMode := range []domain.SortMode{domain.SortNewest, domain.SortPopular} {
			store := &stubItemsStore{total: 42}
			engine := NewQueryEngine(store)

			res, err := engine.FetchPage(context.Background(), domain.Filters{}, sortMode, 2, 20)
			require.NoError(t, err)
			assert.Equal(t, 20, store.gotLimit, "sort %s", sortMode)
			assert.Equal(t, 40, store.gotOffset, "offset advances by fetch size")
			assert.Equal(t, sortMode, store.gotSort)
			assert.Equal(t, 20, res.FetchSize)
			assert.Equal(t, 40, res.Offset)
			require.NotNil(t, res.Total)
			assert.Equal(t, 42, *res.Total)
		}
	})

	t.Run("personalized oversamples by the multiplier", func(t *testing.T) {
		store := &stubItemsStore{total: 100}
		engine := NewQueryEngine(store)

		res, err := engine.FetchPage(context.Background(), domain.Filters{}, domain.SortPersonalized, 0, 20)
		require.NoError(t, err)
		assert.Equal(t, 60, store.gotLimit)
		assert.Equal(t, 0, store.gotOffset)
		assert.Equal(t, 60, res.FetchSize)
	})

	t.Run("personalized page windows are disjoint", func(t *testing.T) {
		store := &stubItemsStore{}
		engine := NewQueryEngine(store)

		offsets := []int{}
		for page := 0; page < 3; page++ {
			_, err := engine.FetchPage(context.Background(), domain.Filters{}, domain.SortPersonalized, page, 10)
			require.NoError(t, err)
			offsets = append(offsets, store.gotOffset)
		}
		assert.Equal(t, []int{0, 30, 60}, offsets, "each page skips the full oversampled window")
	})

	t.Run("filters passed through untouched", func(t *testing.T) {
		store := &stubItemsStore{}
		engine := NewQueryEngine(store)
		priceMax := 5000.0
		filters := domain.Filters{ContentType: "interior", Location: "berlin", PriceMax: &priceMax, Tag: "kitchen"}

		_, err := engine.FetchPage(context.Background(), filters, domain.SortNewest, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, filters, store.gotFilters)
	})

	t.Run("store error wrapped with page number", func(t *testing.T) {
		engine := NewQueryEngine(&stubItemsStore{err: errors.New("db closed")})

		_, err := engine.FetchPage(context.Background(), domain.Filters{}, domain.SortNewest, 7, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch feed page 7")
	})
}
