package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/inspo/pkg/domain"
)

type stubHistoryStore struct {
	entries []domain.CollectionEntry
	err     error
}

func (s *stubHistoryStore) GetUserCollections(_ context.Context, _ string) ([]domain.CollectionEntry, error) {
	return s.entries, s.err
}

func TestVectorBuilder_Build(t *testing.T) {
	t.Run("frequencies from history", func(t *testing.T) {
		store := &stubHistoryStore{entries: []domain.CollectionEntry{
			{ItemID: "i1", HasItem: true, Tags: []string{"kitchen", "modern"}, ContentType: "interior", ProviderID: "p1"},
			{ItemID: "i2", HasItem: true, Tags: []string{"kitchen"}, ContentType: "interior", ProviderID: "p2"},
			{ItemID: "i3", HasItem: true, Tags: []string{"garden"}, ContentType: "exterior", ProviderID: "p1"},
		}}
		builder := NewVectorBuilder(store)

		vectors, err := builder.Build(context.Background(), "user1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"kitchen": 2, "modern": 1, "garden": 1}, vectors.Tags)
		assert.Equal(t, map[string]int{"interior": 2, "exterior": 1}, vectors.Types)
		assert.Equal(t, map[string]int{"p1": 2, "p2": 1}, vectors.Providers)
	})

	t.Run("tags and types lowercased, providers verbatim", func(t *testing.T) {
		store := &stubHistoryStore{entries: []domain.CollectionEntry{
			{ItemID: "i1", HasItem: true, Tags: []string{"Kitchen", "KITCHEN"}, ContentType: "Interior", ProviderID: "Prov-1"},
		}}
		builder := NewVectorBuilder(store)

		vectors, err := builder.Build(context.Background(), "user1")
		require.NoError(t, err)
		assert.Equal(t, 2, vectors.Tags["kitchen"])
		assert.Equal(t, 1, vectors.Types["interior"])
		assert.Equal(t, 1, vectors.Providers["Prov-1"])
	})

	t.Run("entries without item snapshot skipped", func(t *testing.T) {
		store := &stubHistoryStore{entries: []domain.CollectionEntry{
			{ItemID: "gone", HasItem: false, Tags: []string{"kitchen"}, ContentType: "interior", ProviderID: "p1"},
			{ItemID: "i1", HasItem: true, Tags: []string{"garden"}, ContentType: "", ProviderID: ""},
		}}
		builder := NewVectorBuilder(store)

		vectors, err := builder.Build(context.Background(), "user1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"garden": 1}, vectors.Tags)
		assert.Empty(t, vectors.Types, "blank content type not counted")
		assert.Empty(t, vectors.Providers, "blank provider not counted")
	})

	t.Run("empty history yields empty vectors", func(t *testing.T) {
		builder := NewVectorBuilder(&stubHistoryStore{})

		vectors, err := builder.Build(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, vectors.Tags)
		assert.Empty(t, vectors.Types)
		assert.Empty(t, vectors.Providers)
	})

	t.Run("store error propagated", func(t *testing.T) {
		builder := NewVectorBuilder(&stubHistoryStore{err: errors.New("db closed")})

		_, err := builder.Build(context.Background(), "user1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "build preference vectors")
	})
}
