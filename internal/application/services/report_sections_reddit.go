package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/demandlens/backend/internal/domain/entities"
)

const (
	frictionMinScore = 5
	frictionLimit    = 5
)

var (
	pricingFrictionTerms = []string{"price", "cost", "expensive", "$"}
	trustFrictionTerms   = []string{"trust", "scam", "privacy", "support"}

	// switchVerbs drive the synthetic switching-trigger sentences; one
	// sentence per distinct verb found across all mentions.
	switchVerbs = []string{"switched", "cancelled", "canceled", "moved to", "gave up on", "replaced"}
)

// BuildRedditInsights distills collected mentions and clusters into the
// community-research section.
func BuildRedditInsights(mentions []*entities.RedditMention, clusters []*entities.Cluster) entities.RedditInsights {
	return entities.RedditInsights{
		TopObjections:     topClusters(clusters, entities.ClusterTypeObjection, topAngleLimit),
		DesiredFeatures:   topClusters(clusters, entities.ClusterTypeFeature, topAngleLimit),
		PricingFriction:   frictionQuotes(mentions, pricingFrictionTerms),
		TrustFriction:     frictionQuotes(mentions, trustFrictionTerms),
		SwitchingTriggers: switchingTriggers(mentions),
	}
}

// frictionQuotes returns up to 5 high-score mentions whose text contains one
// of the given terms, best-scored first.
func frictionQuotes(mentions []*entities.RedditMention, terms []string) []entities.MentionQuote {
	var scored []*entities.RedditMention
	for _, m := range mentions {
		if m.Score > frictionMinScore {
			scored = append(scored, m)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	quotes := make([]entities.MentionQuote, 0, frictionLimit)
	for _, m := range scored {
		if len(quotes) >= frictionLimit {
			break
		}
		text := strings.ToLower(m.FullText())
		for _, term := range terms {
			if strings.Contains(text, term) {
				quotes = append(quotes, entities.MentionQuote{
					Subreddit: m.Subreddit,
					Title:     m.Title,
					Score:     m.Score,
					Permalink: m.Permalink,
				})
				break
			}
		}
	}
	return quotes
}

func switchingTriggers(mentions []*entities.RedditMention) []string {
	matched := map[string]bool{}
	triggers := []string{}

	for _, verb := range switchVerbs {
		for _, m := range mentions {
			if matched[verb] {
				break
			}
			if strings.Contains(strings.ToLower(m.FullText()), verb) {
				matched[verb] = true
				triggers = append(triggers, fmt.Sprintf("Users report they %s competitors over unresolved frustrations.", verb))
			}
		}
	}
	return triggers
}
