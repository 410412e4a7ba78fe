package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/inspo/pkg/domain"
)

func TestItemOperations(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	makeTestProvider(t, s, "p1", 4.5)

	t.Run("create and get item", func(t *testing.T) {
		item := &domain.FeedItem{
			ProviderID:  "p1",
			Title:       "Loft kitchen",
			Description: "exposed brick and steel",
			ContentType: "interior",
			Location:    "berlin",
			ProjectYear: 2024,
			PriceMin:    1000,
			PriceMax:    5000,
			Currency:    "EUR",
			Tags:        []string{"kitchen", "Loft"},
			Gallery:     []string{"a.jpg", "b.jpg"},
			Featured:    true,
		}
		require.NoError(t, s.CreateFeedItem(ctx, item))
		assert.NotEmpty(t, item.ID, "id assigned on insert")

		got, err := s.GetFeedItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Loft kitchen", got.Title)
		assert.Equal(t, []string{"kitchen", "Loft"}, got.Tags)
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Gallery)
		assert.Equal(t, "Studio p1", got.Provider.CompanyName)
		require.NotNil(t, got.Provider.Rating)
		assert.InDelta(t, 4.5, *got.Provider.Rating, 0.001)
		assert.True(t, got.Provider.Verified)
	})

	t.Run("get missing item", func(t *testing.T) {
		_, err := s.GetFeedItem(ctx, "no-such-id")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create duplicate id", func(t *testing.T) {
		item := &domain.FeedItem{ID: "dup", ProviderID: "p1", Title: "first"}
		require.NoError(t, s.CreateFeedItem(ctx, item))

		err := s.CreateFeedItem(ctx, &domain.FeedItem{ID: "dup", ProviderID: "p1", Title: "second"})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("update item", func(t *testing.T) {
		item := &domain.FeedItem{ID: "upd", ProviderID: "p1", Title: "before", Tags: []string{"old"}}
		require.NoError(t, s.CreateFeedItem(ctx, item))

		item.Title = "after"
		item.Tags = []string{"new", "tags"}
		item.Pinned = true
		item.PinRank = 7
		require.NoError(t, s.UpdateFeedItem(ctx, item))

		got, err := s.GetFeedItem(ctx, "upd")
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, []string{"new", "tags"}, got.Tags)
		assert.True(t, got.Pinned)
		assert.Equal(t, 7, got.PinRank)
	})

	t.Run("update missing item", func(t *testing.T) {
		err := s.UpdateFeedItem(ctx, &domain.FeedItem{ID: "ghost", Title: "x"})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetFeedItems_Filters(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	makeTestProvider(t, s, "high", 4.8)
	makeTestProvider(t, s, "low", 2.0)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []*domain.FeedItem{
		{ID: "a", ProviderID: "high", Title: "a", ContentType: "interior", Location: "berlin",
			PriceMin: 100, PriceMax: 500, Tags: []string{"wood", "light"}, CreatedAt: base},
		{ID: "b", ProviderID: "high", Title: "b", ContentType: "garden", Location: "hamburg",
			PriceMin: 1000, PriceMax: 5000, Tags: []string{"stone"}, CreatedAt: base.Add(time.Hour)},
		{ID: "c", ProviderID: "low", Title: "c", ContentType: "interior", Location: "berlin",
			PriceMin: 300, PriceMax: 800, Tags: []string{"wood"}, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, item := range items {
		require.NoError(t, s.CreateFeedItem(ctx, item))
	}

	fetch := func(f domain.Filters) []string {
		t.Helper()
		got, _, err := s.GetFeedItems(ctx, f, domain.SortNewest, 10, 0)
		require.NoError(t, err)
		ids := make([]string, len(got))
		for i, it := range got {
			ids[i] = it.ID
		}
		return ids
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"a", "b", "c"}, fetch(domain.Filters{}))
	})

	t.Run("content type", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"a", "c"}, fetch(domain.Filters{ContentType: "interior"}))
	})

	t.Run("location", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"b"}, fetch(domain.Filters{Location: "hamburg"}))
	})

	t.Run("price range", func(t *testing.T) {
		minPrice := 200.0
		assert.ElementsMatch(t, []string{"b", "c"}, fetch(domain.Filters{PriceMin: &minPrice}))

		maxPrice := 900.0
		assert.ElementsMatch(t, []string{"a", "c"}, fetch(domain.Filters{PriceMax: &maxPrice}))
	})

	t.Run("rating min uses provider rating", func(t *testing.T) {
		minRating := 4.0
		assert.ElementsMatch(t, []string{"a", "b"}, fetch(domain.Filters{RatingMin: &minRating}))
	})

	t.Run("tag containment", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"a", "c"}, fetch(domain.Filters{Tag: "wood"}))
		assert.Empty(t, fetch(domain.Filters{Tag: "nope"}))
	})

	t.Run("filters compose conjunctively", func(t *testing.T) {
		minRating := 4.0
		got := fetch(domain.Filters{ContentType: "interior", Location: "berlin", RatingMin: &minRating, Tag: "wood"})
		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("total matches filter not page", func(t *testing.T) {
		got, total, err := s.GetFeedItems(ctx, domain.Filters{ContentType: "interior"}, domain.SortNewest, 1, 0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, 2, total)
	})
}

func TestGetFeedItems_Ordering(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	makeTestProvider(t, s, "p1", 4.0)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []*domain.FeedItem{
		{ID: "old-pinned", ProviderID: "p1", Title: "t", PinRank: 10, CreatedAt: base},
		{ID: "newest", ProviderID: "p1", Title: "t", CreatedAt: base.Add(3 * time.Hour)},
		{ID: "popular", ProviderID: "p1", Title: "t", CreatedAt: base.Add(time.Hour)},
		{ID: "liked", ProviderID: "p1", Title: "t", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, item := range items {
		require.NoError(t, s.CreateFeedItem(ctx, item))
	}

	// engagement markers drive the counters through the triggers
	for i, user := range []string{"u1", "u2", "u3"} {
		require.NoError(t, s.AddEngagement(ctx, user, "popular", domain.EngagementCollect))
		if i < 2 {
			require.NoError(t, s.AddEngagement(ctx, user, "liked", domain.EngagementLike))
		}
	}

	ids := func(sort domain.SortMode) []string {
		t.Helper()
		got, _, err := s.GetFeedItems(ctx, domain.Filters{}, sort, 10, 0)
		require.NoError(t, err)
		res := make([]string, len(got))
		for i, it := range got {
			res[i] = it.ID
		}
		return res
	}

	t.Run("newest keeps pin rank primary", func(t *testing.T) {
		assert.Equal(t, []string{"old-pinned", "newest", "liked", "popular"}, ids(domain.SortNewest))
	})

	t.Run("popular orders by collects then likes then recency", func(t *testing.T) {
		assert.Equal(t, []string{"old-pinned", "popular", "liked", "newest"}, ids(domain.SortPopular))
	})

	t.Run("personalized uses newest ordering at storage layer", func(t *testing.T) {
		assert.Equal(t, ids(domain.SortNewest), ids(domain.SortPersonalized))
	})

	t.Run("pagination window", func(t *testing.T) {
		got, total, err := s.GetFeedItems(ctx, domain.Filters{}, domain.SortNewest, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		require.Len(t, got, 2)
		assert.Equal(t, "liked", got[0].ID)
		assert.Equal(t, "popular", got[1].ID)
	})
}
