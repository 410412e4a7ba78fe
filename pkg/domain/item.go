package domain

import "time"

// SortMode defines the ordering of a feed page
type SortMode string

// supported sort modes
const (
	SortNewest       SortMode = "newest"
	SortPopular      SortMode = "popular"
	SortPersonalized SortMode = "personalized"
)

// Valid reports whether the sort mode is one of the supported values
func (s SortMode) Valid() bool {
	return s == SortNewest || s == SortPopular || s == SortPersonalized
}

// FeedItem is a denormalized, read-only projection of an inspiration item
// with its provider display fields and engagement counters. Score is attached
// at read time for personalized requests only and is never persisted.
type FeedItem struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Gallery      []string  `json:"gallery,omitempty"`
	ContentType  string    `json:"content_type"`
	Location     string    `json:"location"`
	ProjectYear  int       `json:"project_year,omitempty"`
	PriceMin     float64   `json:"price_min"`
	PriceMax     float64   `json:"price_max"`
	Currency     string    `json:"currency"`
	Tags         []string  `json:"tags,omitempty"`
	Featured     bool      `json:"featured"`
	Pinned       bool      `json:"pinned"`
	PinRank      int       `json:"pin_rank"`
	CollectCount int       `json:"collect_count"`
	LikeCount    int       `json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Provider ProviderInfo `json:"provider"`

	Score *float64 `json:"score,omitempty"` // personalization score, read-time only
}

// ProviderInfo holds the provider display fields denormalized onto a feed item
type ProviderInfo struct {
	CompanyName string   `json:"company_name"`
	Username    string   `json:"username"`
	Logo        string   `json:"logo,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount int      `json:"review_count"`
	Sponsored   bool     `json:"sponsored"`
	Verified    bool     `json:"verified"`
	Role        string   `json:"role,omitempty"`
}

// Provider is the owning provider of feed items
type Provider struct {
	ID          string
	CompanyName string
	Username    string
	Logo        string
	Avatar      string
	Rating      *float64
	ReviewCount int
	Sponsored   bool
	Verified    bool
	Role        string
}

// Filters holds optional feed predicates. An unset field imposes no
// constraint; set fields compose conjunctively.
type Filters struct {
	ContentType string
	Location    string
	PriceMin    *float64
	PriceMax    *float64
	RatingMin   *float64
	Tag         string
}

// FeedRequest describes one feed page request
type FeedRequest struct {
	Filters Filters
	Page    int
	Sort    SortMode
	UserID  string
}

// FeedPage is the result of one feed page request
type FeedPage struct {
	Items    []FeedItem `json:"items"`
	HasMore  bool       `json:"has_more"`
	NextPage *int       `json:"next_page"`
	Total    *int       `json:"total,omitempty"`
}
