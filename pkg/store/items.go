package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/google/uuid"

	"github.com/umputun/inspo/pkg/domain"
)

// itemSQL represents a denormalized feed row for SQL operations, items
// joined with their provider display fields
type itemSQL struct {
	ID           string    `db:"id"`
	ProviderID   string    `db:"provider_id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	ImageURL     string    `db:"image_url"`
	Gallery      tagsSQL   `db:"gallery"`
	ContentType  string    `db:"content_type"`
	Location     string    `db:"location"`
	ProjectYear  int       `db:"project_year"`
	PriceMin     float64   `db:"price_min"`
	PriceMax     float64   `db:"price_max"`
	Currency     string    `db:"currency"`
	Tags         tagsSQL   `db:"tags"`
	Featured     bool      `db:"featured"`
	Pinned       bool      `db:"pinned"`
	PinRank      int       `db:"pin_rank"`
	CollectCount int       `db:"collect_count"`
	LikeCount    int       `db:"like_count"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	// joined provider data, populated by feed queries
	CompanyName    string          `db:"company_name"`
	Username       string          `db:"username"`
	LogoURL        string          `db:"logo_url"`
	AvatarURL      string          `db:"avatar_url"`
	ProviderRating sql.NullFloat64 `db:"provider_rating"`
	ReviewCount    int             `db:"review_count"`
	Sponsored      bool            `db:"sponsored"`
	Verified       bool            `db:"verified"`
	Role           string          `db:"role"`
}

// tagsSQL is a JSON array of strings for SQL operations
type tagsSQL []string

// Value implements driver.Valuer for database storage
func (t tagsSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *tagsSQL) Scan(value interface{}) error {
	if value == nil {
		*t = tagsSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return json.Unmarshal([]byte("[]"), t)
	}

	return json.Unmarshal(data, t)
}

// feedSelect is the denormalized feed view, items joined with provider display fields
const feedSelect = `
	SELECT i.*,
		p.company_name, p.username, p.logo_url, p.avatar_url,
		p.rating AS provider_rating, p.review_count, p.sponsored, p.verified, p.role
	FROM items i
	JOIN providers p ON i.provider_id = p.id`

// GetFeedItems retrieves one range of the feed view with the given filters
// and sort mode, plus the exact count of matching rows. All set filters apply
// conjunctively; ordering is always primarily by pin rank descending.
func (s *Store) GetFeedItems(ctx context.Context, filters domain.Filters, sort domain.SortMode, limit, offset int) ([]domain.FeedItem, int, error) {
	where, args := buildFilterClause(filters)

	var total int
	countQuery := `SELECT COUNT(*) FROM items i JOIN providers p ON i.provider_id = p.id` + where
	if err := s.conn.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count feed items: %w", err)
	}

	query := feedSelect + where + orderClause(sort) + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var rows []itemSQL
	if err := s.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("get feed items: %w", err)
	}

	items := make([]domain.FeedItem, len(rows))
	for i, row := range rows {
		items[i] = toDomainItem(&row)
	}
	return items, total, nil
}

// GetFeedItem retrieves a single denormalized feed row by id.
// Returns ErrNotFound when no such item exists.
func (s *Store) GetFeedItem(ctx context.Context, id string) (*domain.FeedItem, error) {
	var row itemSQL
	err := s.conn.GetContext(ctx, &row, feedSelect+` WHERE i.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get feed item: %w", err)
	}
	item := toDomainItem(&row)
	return &item, nil
}

// CreateProvider inserts a new provider, assigning an id if not set
func (s *Store) CreateProvider(ctx context.Context, p *domain.Provider) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO providers (id, company_name, username, logo_url, avatar_url,
			rating, review_count, sponsored, verified, role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.conn.ExecContext(ctx, query, p.ID, p.CompanyName, p.Username, p.Logo, p.Avatar,
		p.Rating, p.ReviewCount, p.Sponsored, p.Verified, p.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("provider %s: %w", p.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("create provider: %w", err)
	}
	return nil
}

// CreateFeedItem inserts a new item, assigning an id if not set, and
// publishes an insert change event to all subscribers
func (s *Store) CreateFeedItem(ctx context.Context, item *domain.FeedItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}

	query := `
		INSERT INTO items (id, provider_id, title, description, image_url, gallery,
			content_type, location, project_year, price_min, price_max, currency,
			tags, featured, pinned, pin_rank, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.conn.ExecContext(ctx, query,
		item.ID, item.ProviderID, item.Title, item.Description, item.Image, tagsSQL(item.Gallery),
		item.ContentType, item.Location, item.ProjectYear, item.PriceMin, item.PriceMax, item.Currency,
		tagsSQL(item.Tags), item.Featured, item.Pinned, item.PinRank, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("item %s: %w", item.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("create feed item: %w", err)
	}

	s.notifier.publish(ChangeEvent{Op: OpInsert, ItemID: item.ID})
	return nil
}

// UpdateFeedItem updates an existing item and publishes an update change
// event. Returns ErrNotFound when the item does not exist. Retries on
// transient SQLite lock errors.
func (s *Store) UpdateFeedItem(ctx context.Context, item *domain.FeedItem) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		query := `
			UPDATE items
			SET title = ?, description = ?, image_url = ?, gallery = ?,
			    content_type = ?, location = ?, project_year = ?,
			    price_min = ?, price_max = ?, currency = ?, tags = ?,
			    featured = ?, pinned = ?, pin_rank = ?, updated_at = datetime('now')
			WHERE id = ?
		`
		result, err := s.conn.ExecContext(ctx, query,
			item.Title, item.Description, item.Image, tagsSQL(item.Gallery),
			item.ContentType, item.Location, item.ProjectYear,
			item.PriceMin, item.PriceMax, item.Currency, tagsSQL(item.Tags),
			item.Featured, item.Pinned, item.PinRank, item.ID)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("update feed item: %w", err)}
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		if affected == 0 {
			return &criticalError{err: fmt.Errorf("item %s: %w", item.ID, ErrNotFound)}
		}
		return nil
	})
	if err != nil {
		var ce *criticalError
		if errors.As(err, &ce) {
			return ce.err
		}
		return err
	}

	s.notifier.publish(ChangeEvent{Op: OpUpdate, ItemID: item.ID})
	return nil
}

// buildFilterClause converts set filters into a conjunctive WHERE clause
func buildFilterClause(filters domain.Filters) (where string, args []interface{}) {
	where = ` WHERE 1=1`

	if filters.ContentType != "" {
		where += ` AND i.content_type = ?`
		args = append(args, filters.ContentType)
	}
	if filters.Location != "" {
		where += ` AND i.location = ?`
		args = append(args, filters.Location)
	}
	if filters.PriceMin != nil {
		where += ` AND i.price_min >= ?`
		args = append(args, *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		where += ` AND i.price_max <= ?`
		args = append(args, *filters.PriceMax)
	}
	if filters.RatingMin != nil {
		where += ` AND p.rating >= ?`
		args = append(args, *filters.RatingMin)
	}
	if filters.Tag != "" {
		where += ` AND EXISTS (SELECT 1 FROM json_each(i.tags) WHERE json_each.value = ?)`
		args = append(args, filters.Tag)
	}
	return where, args
}

// orderClause returns the ORDER BY for a sort mode. Pin rank is the primary
// key in every mode; personalized ranking happens after fetch, so it shares
// the newest ordering at the storage layer.
func orderClause(sort domain.SortMode) string {
	if sort == domain.SortPopular {
		return ` ORDER BY i.pin_rank DESC, i.collect_count DESC, i.like_count DESC, i.created_at DESC`
	}
	return ` ORDER BY i.pin_rank DESC, i.created_at DESC`
}

// toDomainItem converts itemSQL to domain.FeedItem
func toDomainItem(row *itemSQL) domain.FeedItem {
	item := domain.FeedItem{
		ID:           row.ID,
		ProviderID:   row.ProviderID,
		Title:        row.Title,
		Description:  row.Description,
		Image:        row.ImageURL,
		Gallery:      row.Gallery,
		ContentType:  row.ContentType,
		Location:     row.Location,
		ProjectYear:  row.ProjectYear,
		PriceMin:     row.PriceMin,
		PriceMax:     row.PriceMax,
		Currency:     row.Currency,
		Tags:         row.Tags,
		Featured:     row.Featured,
		Pinned:       row.Pinned,
		PinRank:      row.PinRank,
		CollectCount: row.CollectCount,
		LikeCount:    row.LikeCount,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Provider: domain.ProviderInfo{
			CompanyName: row.CompanyName,
			Username:    row.Username,
			Logo:        row.LogoURL,
			Avatar:      row.AvatarURL,
			ReviewCount: row.ReviewCount,
			Sponsored:   row.Sponsored,
			Verified:    row.Verified,
			Role:        row.Role,
		},
	}
	if row.ProviderRating.Valid {
		rating := row.ProviderRating.Float64
		item.Provider.Rating = &rating
	}
	return item
}
