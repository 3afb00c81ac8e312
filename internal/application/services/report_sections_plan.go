package services

import (
	"fmt"
	"strings"

	"github.com/demandlens/backend/internal/domain/entities"
)

const (
	adTestCTA      = "Start free - see results in 7 days"
	landingCTA     = "Get started free"
	keywordMinLen  = 4
	topKeywordsCap = 20
)

// BuildUGCPack returns the templated creative-reference section. Live UGC
// winners are not wired yet; the status field makes that explicit to the
// report consumer instead of pretending the examples came from real data.
func BuildUGCPack() entities.UGCWinnersPack {
	return entities.UGCWinnersPack{
		Status: "template",
		ExampleHooks: []string{
			"POV: you finally found a tool that actually does this",
			"Stop paying for software you only use twice a month",
			"I tested 5 alternatives so you don't have to",
		},
		ScriptSkeleton: []string{
			"Hook (0-3s): name the pain in the viewer's own words",
			"Agitate (3-8s): show the cost of the status quo",
			"Reveal (8-15s): product demo on the single killer feature",
			"Proof (15-22s): number, testimonial or before/after",
			"CTA (22-30s): one clear next step",
		},
		ShotList: []string{
			"Selfie-style talking head, natural light",
			"Screen recording of the core workflow",
			"Reaction shot on the result",
		},
	}
}

// BuildActionPlan turns the strongest gaps and clusters into concrete next
// steps: ad tests, a landing-page skeleton and a keyword starter list.
func BuildActionPlan(gaps []*entities.GapOpportunity, clusters []*entities.Cluster) entities.ActionPlan {
	topThree := topGaps(gaps, 3)

	adTests := make([]entities.AdTestConcept, 0, len(topThree))
	for _, g := range topThree {
		adTests = append(adTests, entities.AdTestConcept{
			Concept: g.Title,
			Angle:   g.Problem,
			Copy:    g.Recommendation,
			CTA:     adTestCTA,
		})
	}

	hero := "The tool this market has been asking for"
	if len(topThree) > 0 {
		hero = topThree[0].Title
	}

	objections := topClusters(clusters, entities.ClusterTypeObjection, 3)
	benefits := make([]string, 0, len(objections))
	for _, o := range objections {
		benefits = append(benefits, fmt.Sprintf("No more %s", strings.ToLower(o.Label)))
	}

	return entities.ActionPlan{
		AdTests: adTests,
		LandingPage: entities.LandingPage{
			Hero:     hero,
			Benefits: benefits,
			CTA:      landingCTA,
		},
		TopKeywords: clusterKeywords(clusters),
	}
}

// clusterKeywords collects distinct words longer than four characters from
// cluster labels, in cluster-iteration order.
func clusterKeywords(clusters []*entities.Cluster) []string {
	seen := map[string]bool{}
	keywords := []string{}

	for _, c := range clusters {
		for _, word := range strings.Fields(strings.ToLower(c.Label)) {
			word = strings.Trim(word, ".,!?:;\"'()")
			if len(word) <= keywordMinLen || seen[word] {
				continue
			}
			seen[word] = true
			keywords = append(keywords, word)
			if len(keywords) >= topKeywordsCap {
				return keywords
			}
		}
	}
	return keywords
}
