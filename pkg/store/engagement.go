package store

import (
	"context"
	"fmt"

	"github.com/umputun/inspo/pkg/domain"
)

// engagement marker operations; at most one marker per (user, item, kind)
// is enforced by the UNIQUE constraint, not by application logic

// AddEngagement inserts an engagement marker. A uniqueness violation is
// surfaced as ErrAlreadyExists so callers can treat re-assertion as benign.
func (s *Store) AddEngagement(ctx context.Context, userID, itemID string, kind domain.EngagementKind) error {
	query := `INSERT INTO engagements (user_id, item_id, kind) VALUES (?, ?, ?)`
	if _, err := s.conn.ExecContext(ctx, query, userID, itemID, string(kind)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("engagement %s/%s/%s: %w", userID, itemID, kind, ErrAlreadyExists)
		}
		return fmt.Errorf("add engagement: %w", err)
	}
	return nil
}

// DeleteEngagement removes an engagement marker by its composite key.
// Deleting a non-existent marker is a no-op, not an error.
func (s *Store) DeleteEngagement(ctx context.Context, userID, itemID string, kind domain.EngagementKind) error {
	query := `DELETE FROM engagements WHERE user_id = ? AND item_id = ? AND kind = ?`
	if _, err := s.conn.ExecContext(ctx, query, userID, itemID, string(kind)); err != nil {
		return fmt.Errorf("delete engagement: %w", err)
	}
	return nil
}

// GetUserCollections retrieves the full collection history of a user with a
// snapshot of each linked item's tags, content type and provider id. Entries
// whose item no longer exists come back with HasItem=false.
func (s *Store) GetUserCollections(ctx context.Context, userID string) ([]domain.CollectionEntry, error) {
	query := `
		SELECT e.item_id,
			i.id IS NOT NULL AS has_item,
			COALESCE(i.tags, '[]') AS tags,
			COALESCE(i.content_type, '') AS content_type,
			COALESCE(i.provider_id, '') AS provider_id
		FROM engagements e
		LEFT JOIN items i ON e.item_id = i.id
		WHERE e.user_id = ? AND e.kind = 'collect'
		ORDER BY e.created_at DESC
	`

	var rows []struct {
		ItemID      string  `db:"item_id"`
		HasItem     bool    `db:"has_item"`
		Tags        tagsSQL `db:"tags"`
		ContentType string  `db:"content_type"`
		ProviderID  string  `db:"provider_id"`
	}
	if err := s.conn.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("get user collections: %w", err)
	}

	entries := make([]domain.CollectionEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.CollectionEntry{
			ItemID:      row.ItemID,
			HasItem:     row.HasItem,
			Tags:        row.Tags,
			ContentType: row.ContentType,
			ProviderID:  row.ProviderID,
		}
	}
	return entries, nil
}

// CountEngagements returns the number of markers for an item and kind
func (s *Store) CountEngagements(ctx context.Context, itemID string, kind domain.EngagementKind) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM engagements WHERE item_id = ? AND kind = ?`
	if err := s.conn.GetContext(ctx, &count, query, itemID, string(kind)); err != nil {
		return 0, fmt.Errorf("count engagements: %w", err)
	}
	return count, nil
}
