package services

import (
	"sort"
	"strings"

	"github.com/demandlens/backend/internal/domain/entities"
)

const (
	topAdvertiserLimit = 10
	topAngleLimit      = 10
	longestRunningAds  = 5
	offerSnippetLimit  = 5
	angleExampleLimit  = 3
)

var (
	pricingTerms   = []string{"$", "/mo", "per month", "price", "pricing", "% off", "discount"}
	trialTerms     = []string{"free trial", "try free", "trial", "try it free", "no credit card"}
	guaranteeTerms = []string{"guarantee", "money-back", "money back", "refund", "risk-free", "risk free"}
)

// BuildExecutiveSummary picks the top-3 gaps by opportunity score and takes
// the platform recommendation from the first concept idea, defaulting to a
// web recommendation when no concept exists.
func BuildExecutiveSummary(gaps []*entities.GapOpportunity, concepts []*entities.ConceptIdea) entities.ExecutiveSummary {
	summary := entities.ExecutiveSummary{
		TopOpportunities:       topGaps(gaps, 3),
		PlatformRecommendation: "web",
		Rationale:              "Web is the default starting point: fastest to ship and iterate on.",
	}

	if len(concepts) > 0 && concepts[0].Platform != "" {
		summary.PlatformRecommendation = concepts[0].Platform
		if concepts[0].Rationale != "" {
			summary.Rationale = concepts[0].Rationale
		}
	}

	return summary
}

// BuildGapList renders every gap opportunity, best first
func BuildGapList(gaps []*entities.GapOpportunity) []entities.GapSummary {
	return topGaps(gaps, len(gaps))
}

// topGaps returns up to n gaps sorted descending by opportunity score,
// keeping input order for ties.
func topGaps(gaps []*entities.GapOpportunity, n int) []entities.GapSummary {
	sorted := make([]*entities.GapOpportunity, len(gaps))
	copy(sorted, gaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OpportunityScore > sorted[j].OpportunityScore
	})
	if n > len(sorted) {
		n = len(sorted)
	}

	out := make([]entities.GapSummary, 0, n)
	for _, g := range sorted[:n] {
		out = append(out, entities.GapSummary{
			Type:             g.Type,
			Title:            g.Title,
			Problem:          g.Problem,
			Recommendation:   g.Recommendation,
			OpportunityScore: g.OpportunityScore,
			Confidence:       g.Confidence,
			Evidence:         g.Evidence,
		})
	}
	return out
}

// BuildPaidMarketSnapshot aggregates creatives, angle clusters and offer
// extractions into the paid-market section.
func BuildPaidMarketSnapshot(creatives []*entities.AdCreative, clusters []*entities.Cluster, extractions []*entities.Extraction) entities.PaidMarketSnapshot {
	return entities.PaidMarketSnapshot{
		TotalCreatives: len(creatives),
		TopAdvertisers: topAdvertisers(creatives),
		TopAngles:      topClusters(clusters, entities.ClusterTypeAngle, topAngleLimit),
		LongestRunning: longestRunning(creatives),
		OfferPatterns:  offerPatterns(extractions),
	}
}

// topAdvertisers counts creatives per advertiser and averages days running,
// sorted by count descending. Ties keep first-appearance order.
func topAdvertisers(creatives []*entities.AdCreative) []entities.AdvertiserStat {
	type acc struct {
		count     int
		totalDays int
	}
	byName := make(map[string]*acc)
	var order []string

	for _, c := range creatives {
		a, ok := byName[c.Advertiser]
		if !ok {
			a = &acc{}
			byName[c.Advertiser] = a
			order = append(order, c.Advertiser)
		}
		a.count++
		a.totalDays += c.DaysRunning()
	}

	stats := make([]entities.AdvertiserStat, 0, len(order))
	for _, name := range order {
		a := byName[name]
		stats = append(stats, entities.AdvertiserStat{
			Name:           name,
			AdCount:        a.count,
			AvgDaysRunning: float64(a.totalDays) / float64(a.count),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AdCount > stats[j].AdCount
	})

	if len(stats) > topAdvertiserLimit {
		stats = stats[:topAdvertiserLimit]
	}
	return stats
}

// topClusters filters clusters by type and ranks them by frequency
func topClusters(clusters []*entities.Cluster, clusterType entities.ClusterType, limit int) []entities.AngleStat {
	var filtered []*entities.Cluster
	for _, c := range clusters {
		if c.Type == clusterType {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Frequency > filtered[j].Frequency
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	stats := make([]entities.AngleStat, 0, len(filtered))
	for _, c := range filtered {
		examples := c.Examples
		if len(examples) > angleExampleLimit {
			examples = examples[:angleExampleLimit]
		}
		stats = append(stats, entities.AngleStat{
			Label:     c.Label,
			Frequency: c.Frequency,
			Examples:  examples,
		})
	}
	return stats
}

func longestRunning(creatives []*entities.AdCreative) []entities.RunningAd {
	sorted := make([]*entities.AdCreative, len(creatives))
	copy(sorted, creatives)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DaysRunning() > sorted[j].DaysRunning()
	})
	if len(sorted) > longestRunningAds {
		sorted = sorted[:longestRunningAds]
	}

	ads := make([]entities.RunningAd, 0, len(sorted))
	for _, c := range sorted {
		ads = append(ads, entities.RunningAd{
			Advertiser:  c.Advertiser,
			Headline:    c.Headline,
			Source:      c.Source,
			DaysRunning: c.DaysRunning(),
		})
	}
	return ads
}

// offerPatterns collects up to 5 distinct offer snippets per keyword family
func offerPatterns(extractions []*entities.Extraction) entities.OfferPatterns {
	patterns := entities.OfferPatterns{
		Pricing:   []string{},
		Trial:     []string{},
		Guarantee: []string{},
	}
	seen := map[string]bool{}

	collect := func(family string, bucket *[]string, text string, terms []string) {
		if len(*bucket) >= offerSnippetLimit {
			return
		}
		lower := strings.ToLower(text)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				key := family + "|" + lower
				if !seen[key] {
					seen[key] = true
					*bucket = append(*bucket, text)
				}
				return
			}
		}
	}

	for _, e := range extractions {
		text := strings.TrimSpace(e.OfferText)
		if text == "" {
			continue
		}
		collect("pricing", &patterns.Pricing, text, pricingTerms)
		collect("trial", &patterns.Trial, text, trialTerms)
		collect("guarantee", &patterns.Guarantee, text, guaranteeTerms)
	}
	return patterns
}
