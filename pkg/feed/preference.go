package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/umputun/inspo/pkg/domain"
)

// HistoryStore provides a user's full collection history with item snapshots
type HistoryStore interface {
	GetUserCollections(ctx context.Context, userID string) ([]domain.CollectionEntry, error)
}

// VectorBuilder aggregates a user's collection history into frequency
// vectors over tags, content types and providers. Vectors are rebuilt from
// the full history on every call; raw frequencies are the weights, no
// normalization is applied.
type VectorBuilder struct {
	store HistoryStore
}

// NewVectorBuilder creates a vector builder over the given store
func NewVectorBuilder(store HistoryStore) *VectorBuilder {
	return &VectorBuilder{store: store}
}

// Build computes preference vectors for a user. An empty history yields
// empty vectors, not an error. Entries without a linked item snapshot are
// skipped.
func (b *VectorBuilder) Build(ctx context.Context, userID string) (*domain.PreferenceVectors, error) {
	entries, err := b.store.GetUserCollections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("build preference vectors for %s: %w", userID, err)
	}

	vectors := domain.NewPreferenceVectors()
	for _, e := range entries {
		if !e.HasItem {
			continue
		}
		for _, tag := range e.Tags {
			vectors.Tags[strings.ToLower(tag)]++
		}
		if e.ContentType != "" {
			vectors.Types[strings.ToLower(e.ContentType)]++
		}
		if e.ProviderID != "" {
			vectors.Providers[e.ProviderID]++
		}
	}
	return vectors, nil
}
