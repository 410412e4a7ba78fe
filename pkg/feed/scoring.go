package feed

import (
	"strings"

	"github.com/umputun/inspo/pkg/domain"
)

// scoring coefficients, fixed by design and not configurable. Engagement
// counters are capped so runaway virality can't drown the direct taste
// signals; tag/type/provider terms are uncapped.
const (
	pinnedBoost    = 5.0
	featuredBoost  = 3.0
	collectWeight  = 0.4
	likeWeight     = 0.2
	ratingWeight   = 0.8
	providerWeight = 2.0
	typeWeight     = 1.5
	engagementCap  = 50
)

// Score maps an item and a user's preference vectors to a relevance score.
// Pure and deterministic; used only to rank candidates within one
// personalized request, never compared across requests or persisted.
func Score(item *domain.FeedItem, vectors *domain.PreferenceVectors) float64 {
	score := 0.0

	if item.Pinned {
		score += pinnedBoost
	}
	if item.Featured {
		score += featuredBoost
	}

	score += float64(min(item.CollectCount, engagementCap)) * collectWeight
	score += float64(min(item.LikeCount, engagementCap)) * likeWeight

	if item.Provider.Rating != nil {
		score += *item.Provider.Rating * ratingWeight
	}

	score += float64(vectors.Providers[item.ProviderID]) * providerWeight
	if item.ContentType != "" {
		score += float64(vectors.Types[strings.ToLower(item.ContentType)]) * typeWeight
	}
	for _, tag := range item.Tags {
		score += float64(vectors.Tags[strings.ToLower(tag)])
	}

	return score
}
