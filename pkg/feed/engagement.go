package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/umputun/inspo/pkg/domain"
	"github.com/umputun/inspo/pkg/store"
)

// EngagementStore provides insert/delete on the engagement join relation
type EngagementStore interface {
	AddEngagement(ctx context.Context, userID, itemID string, kind domain.EngagementKind) error
	DeleteEngagement(ctx context.Context, userID, itemID string, kind domain.EngagementKind) error
}

// Toggler sets or clears a user's engagement marker on an item. Both
// directions are idempotent; correctness under concurrent toggles rests on
// the store's uniqueness constraint, no read-before-write is performed.
type Toggler struct {
	store EngagementStore
}

// NewToggler creates an engagement toggler over the given store
func NewToggler(store EngagementStore) *Toggler {
	return &Toggler{store: store}
}

// Set brings the (user, item, kind) marker to the desired state and returns
// the resulting membership. Creating a marker that already exists and
// deleting one that doesn't are both success.
func (t *Toggler) Set(ctx context.Context, itemID, userID string, kind domain.EngagementKind, desired bool) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("unknown engagement kind %q", kind)
	}

	if desired {
		if err := t.store.AddEngagement(ctx, userID, itemID, kind); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return true, nil // already in the desired state
			}
			return false, fmt.Errorf("set engagement: %w", err)
		}
		return true, nil
	}

	if err := t.store.DeleteEngagement(ctx, userID, itemID, kind); err != nil {
		return false, fmt.Errorf("clear engagement: %w", err)
	}
	return false, nil
}
