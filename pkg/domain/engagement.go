package domain

// EngagementKind is the type of engagement marker a user can put on an item
type EngagementKind string

// supported engagement kinds
const (
	EngagementCollect EngagementKind = "collect"
	EngagementLike    EngagementKind = "like"
)

// Valid reports whether the kind is one of the supported values
func (k EngagementKind) Valid() bool {
	return k == EngagementCollect || k == EngagementLike
}

// CollectionEntry is one record of a user's collection history with a
// snapshot of the linked item's preference-relevant fields. HasItem is false
// when the item no longer exists and the snapshot columns are empty.
type CollectionEntry struct {
	ItemID      string
	HasItem     bool
	Tags        []string
	ContentType string
	ProviderID  string
}

// PreferenceVectors holds per-user frequency weightings derived from the
// user's collection history. Built fresh for every personalized request,
// never cached or persisted. Empty history yields empty maps.
type PreferenceVectors struct {
	Tags      map[string]int
	Types     map[string]int
	Providers map[string]int
}

// NewPreferenceVectors returns vectors with initialized empty maps
func NewPreferenceVectors() *PreferenceVectors {
	return &PreferenceVectors{
		Tags:      map[string]int{},
		Types:     map[string]int{},
		Providers: map[string]int{},
	}
}
