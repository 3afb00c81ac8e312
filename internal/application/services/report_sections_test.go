package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandlens/backend/internal/domain/entities"
)

func creativeFor(advertiser string, daysAgo int) *entities.AdCreative {
	started := time.Now().AddDate(0, 0, -daysAgo)
	return &entities.AdCreative{
		Advertiser: advertiser,
		Headline:   advertiser + " headline",
		Source:     entities.AdSourceMeta,
		FirstSeen:  started,
		Active:     true,
	}
}

func TestBuildExecutiveSummary_TopThreeGapsByScore(t *testing.T) {
	gaps := []*entities.GapOpportunity{
		{Title: "low", OpportunityScore: 10},
		{Title: "highest", OpportunityScore: 90},
		{Title: "mid", OpportunityScore: 50},
		{Title: "high", OpportunityScore: 80},
	}

	summary := BuildExecutiveSummary(gaps, nil)

	require.Len(t, summary.TopOpportunities, 3)
	assert.Equal(t, "highest", summary.TopOpportunities[0].Title)
	assert.Equal(t, "high", summary.TopOpportunities[1].Title)
	assert.Equal(t, "mid", summary.TopOpportunities[2].Title)
	assert.Equal(t, "web", summary.PlatformRecommendation)
	assert.NotEmpty(t, summary.Rationale)
}

func TestBuildExecutiveSummary_PlatformFromFirstConcept(t *testing.T) {
	concepts := []*entities.ConceptIdea{
		{Platform: "ios", Rationale: "store discovery is strong here"},
		{Platform: "web"},
	}

	summary := BuildExecutiveSummary(nil, concepts)

	assert.Equal(t, "ios", summary.PlatformRecommendation)
	assert.Equal(t, "store discovery is strong here", summary.Rationale)
	assert.Empty(t, summary.TopOpportunities)
}

func TestBuildPaidMarketSnapshot_TopAdvertisers(t *testing.T) {
	creatives := []*entities.AdCreative{
		creativeFor("A", 10),
		creativeFor("A", 20),
		creativeFor("A", 30),
		creativeFor("B", 5),
		creativeFor("B", 15),
		creativeFor("C", 7),
	}

	snapshot := BuildPaidMarketSnapshot(creatives, nil, nil)

	assert.Equal(t, 6, snapshot.TotalCreatives)
	require.Len(t, snapshot.TopAdvertisers, 3)
	assert.Equal(t, "A", snapshot.TopAdvertisers[0].Name)
	assert.Equal(t, 3, snapshot.TopAdvertisers[0].AdCount)
	assert.Equal(t, "B", snapshot.TopAdvertisers[1].Name)
	assert.Equal(t, 2, snapshot.TopAdvertisers[1].AdCount)
	assert.Equal(t, "C", snapshot.TopAdvertisers[2].Name)
	assert.Equal(t, 1, snapshot.TopAdvertisers[2].AdCount)
	assert.InDelta(t, 20, snapshot.TopAdvertisers[0].AvgDaysRunning, 1)
}

func TestBuildPaidMarketSnapshot_AnglesAndOffers(t *testing.T) {
	clusters := []*entities.Cluster{
		{Type: entities.ClusterTypeAngle, Label: "save time", Frequency: 3, Examples: []string{"a", "b", "c", "d"}},
		{Type: entities.ClusterTypeAngle, Label: "save money", Frequency: 9},
		{Type: entities.ClusterTypeObjection, Label: "too pricey", Frequency: 99},
	}
	extractions := []*entities.Extraction{
		{OfferText: "Only $9/mo for everything"},
		{OfferText: "Start your free trial today"},
		{OfferText: "30-day money-back guarantee"},
		{OfferText: "only $9/MO for everything"}, // duplicate, different case
		{OfferText: ""},
	}

	snapshot := BuildPaidMarketSnapshot(nil, clusters, extractions)

	require.Len(t, snapshot.TopAngles, 2)
	assert.Equal(t, "save money", snapshot.TopAngles[0].Label)
	assert.Len(t, snapshot.TopAngles[1].Examples, 3)

	assert.Len(t, snapshot.OfferPatterns.Pricing, 1)
	assert.Equal(t, []string{"Start your free trial today"}, snapshot.OfferPatterns.Trial)
	assert.Equal(t, []string{"30-day money-back guarantee"}, snapshot.OfferPatterns.Guarantee)
}

func TestBuildPaidMarketSnapshot_LongestRunningTopFive(t *testing.T) {
	var creatives []*entities.AdCreative
	for _, days := range []int{3, 40, 12, 90, 1, 55, 20} {
		creatives = append(creatives, creativeFor("X", days))
	}

	snapshot := BuildPaidMarketSnapshot(creatives, nil, nil)

	require.Len(t, snapshot.LongestRunning, 5)
	assert.GreaterOrEqual(t, snapshot.LongestRunning[0].DaysRunning, snapshot.LongestRunning[4].DaysRunning)
	assert.InDelta(t, 90, snapshot.LongestRunning[0].DaysRunning, 1)
}

func TestBuildRedditInsights_FrictionFilters(t *testing.T) {
	mentions := []*entities.RedditMention{
		{Subreddit: "saas", Title: "Way too expensive for what it does", Score: 40, Permalink: "/a"},
		{Subreddit: "saas", Title: "Is this a scam or legit", Score: 25, Permalink: "/b"},
		{Subreddit: "saas", Title: "price hike again", Score: 3, Permalink: "/c"}, // below score floor
		{Subreddit: "saas", Title: "love the new feature", Score: 80, Permalink: "/d"},
	}

	insights := BuildRedditInsights(mentions, nil)

	require.Len(t, insights.PricingFriction, 1)
	assert.Equal(t, "/a", insights.PricingFriction[0].Permalink)
	require.Len(t, insights.TrustFriction, 1)
	assert.Equal(t, "/b", insights.TrustFriction[0].Permalink)
}

func TestBuildRedditInsights_SwitchingTriggersOnePerVerb(t *testing.T) {
	mentions := []*entities.RedditMention{
		{Title: "I switched to a competitor last week", Score: 10},
		{Title: "also switched, best decision", Score: 8},
		{Title: "cancelled my plan yesterday", Score: 12},
	}

	insights := BuildRedditInsights(mentions, nil)

	require.Len(t, insights.SwitchingTriggers, 2)
	assert.Contains(t, insights.SwitchingTriggers[0], "switched")
	assert.Contains(t, insights.SwitchingTriggers[1], "cancelled")
}

func TestBuildRedditInsights_ClusterSubsets(t *testing.T) {
	clusters := []*entities.Cluster{
		{Type: entities.ClusterTypeObjection, Label: "setup is painful", Frequency: 4},
		{Type: entities.ClusterTypeObjection, Label: "no api access", Frequency: 9},
		{Type: entities.ClusterTypeFeature, Label: "bulk export", Frequency: 6},
		{Type: entities.ClusterTypeAngle, Label: "save time", Frequency: 100},
	}

	insights := BuildRedditInsights(nil, clusters)

	require.Len(t, insights.TopObjections, 2)
	assert.Equal(t, "no api access", insights.TopObjections[0].Label)
	require.Len(t, insights.DesiredFeatures, 1)
	assert.Equal(t, "bulk export", insights.DesiredFeatures[0].Label)
}

func TestBuildPlatformGap_Saturation(t *testing.T) {
	var apps []*entities.AppStoreResult
	for i := 0; i < 25; i++ {
		apps = append(apps, &entities.AppStoreResult{Platform: entities.PlatformIOS, Name: "app", ReviewCount: i})
	}

	gap := BuildPlatformGap(apps, nil, nil)

	assert.Equal(t, 50.0, gap.Saturation.IOS)
	assert.Equal(t, 0.0, gap.Saturation.Android)
	assert.Equal(t, 0.0, gap.Saturation.Web)
	assert.Len(t, gap.TopIOSApps, 5)
	assert.GreaterOrEqual(t, gap.TopIOSApps[0].ReviewCount, gap.TopIOSApps[4].ReviewCount)
}

func TestBuildPlatformGap_SaturationIsCapped(t *testing.T) {
	var apps []*entities.AppStoreResult
	for i := 0; i < 80; i++ {
		apps = append(apps, &entities.AppStoreResult{Platform: entities.PlatformAndroid})
	}

	gap := BuildPlatformGap(apps, nil, nil)

	assert.Equal(t, 100.0, gap.Saturation.Android)
}

func TestBuildPlatformGap_RecommendationRules(t *testing.T) {
	// 60 creatives => web saturation 60; no mobile apps => mobile avg 0.
	var creatives []*entities.AdCreative
	for i := 0; i < 60; i++ {
		creatives = append(creatives, creativeFor("X", 1))
	}

	gap := BuildPlatformGap(nil, creatives, nil)
	assert.Equal(t, "mobile", gap.Recommendation)

	gap = BuildPlatformGap(nil, nil, nil)
	assert.Equal(t, "hybrid", gap.Recommendation)

	gap = BuildPlatformGap(nil, nil, []*entities.ConceptIdea{{Platform: "web"}})
	assert.Equal(t, "web", gap.Recommendation)
}

func TestBuildModeledEconomics_Defaults(t *testing.T) {
	econ := BuildModeledEconomics(nil)

	assert.Equal(t, 2.0, econ.CPC.Expected)
	assert.Equal(t, 50.0, econ.CAC.Expected)
	assert.Equal(t, 1_000_000.0, econ.TAM.Expected)
	require.Len(t, econ.Scenarios, 2)
	assert.Equal(t, 500, econ.Scenarios[0].Reach)       // 1000 / 2.0
	assert.Equal(t, 20, econ.Scenarios[0].Conversions)  // 1000 / 50
	assert.Equal(t, 5000, econ.Scenarios[1].Reach)      // 10000 / 2.0
	assert.Equal(t, 200, econ.Scenarios[1].Conversions) // 10000 / 50
}

func TestBuildModeledEconomics_ConceptMetricsPassThrough(t *testing.T) {
	concepts := []*entities.ConceptIdea{{
		Metrics: &entities.ConceptMetrics{
			CPC: entities.Range{Low: 1, Expected: 3, High: 6},
			CAC: entities.Range{Low: 20, Expected: 80, High: 200},
			TAM: entities.Range{Low: 1, Expected: 2, High: 3},
		},
	}}

	econ := BuildModeledEconomics(concepts)

	assert.Equal(t, 3.0, econ.CPC.Expected)
	assert.Equal(t, 333, econ.Scenarios[0].Reach) // floor(1000 / 3)
	assert.Equal(t, 12, econ.Scenarios[0].Conversions)
}

func TestBuildBuildability_DefaultsAndBuckets(t *testing.T) {
	assessment := BuildBuildability(nil)

	assert.Equal(t, 50, assessment.ImplementationDifficulty)
	assert.Equal(t, "1-3 months", assessment.TimeToMVP)
	assert.Equal(t, entities.LevelMedium, assessment.HumanTouch)
	assert.Empty(t, assessment.RiskFlags)

	easy := BuildBuildability([]*entities.ConceptIdea{{
		Metrics: &entities.ConceptMetrics{ImplementationDifficulty: 25},
	}})
	assert.Equal(t, "2-4 weeks", easy.TimeToMVP)

	hard := BuildBuildability([]*entities.ConceptIdea{{
		Metrics: &entities.ConceptMetrics{ImplementationDifficulty: 85},
	}})
	assert.Equal(t, "3-6 months", hard.TimeToMVP)
}

func TestBuildBuildability_RiskFlags(t *testing.T) {
	assessment := BuildBuildability([]*entities.ConceptIdea{{
		Name:      "MediTrack",
		OneLiner:  "AI powered patient scheduling",
		GapThesis: "clinics overpay for legacy tools",
		Metrics:   &entities.ConceptMetrics{ImplementationDifficulty: 60},
	}})

	require.Len(t, assessment.RiskFlags, 2)
	assert.Contains(t, assessment.RiskFlags[0], "Health domain")
	assert.Contains(t, assessment.RiskFlags[1], "AI features")
}

func TestBuildUGCPack_IsExplicitTemplate(t *testing.T) {
	pack := BuildUGCPack()

	assert.Equal(t, "template", pack.Status)
	assert.NotEmpty(t, pack.ExampleHooks)
	assert.NotEmpty(t, pack.ScriptSkeleton)
	assert.NotEmpty(t, pack.ShotList)
}

func TestBuildActionPlan(t *testing.T) {
	gaps := []*entities.GapOpportunity{
		{Title: "Simpler onboarding", Problem: "setup takes hours", Recommendation: "ship a 5 minute wizard", OpportunityScore: 90},
		{Title: "Fair pricing", Problem: "per-seat pricing punishes teams", Recommendation: "flat team plan", OpportunityScore: 70},
	}
	clusters := []*entities.Cluster{
		{Type: entities.ClusterTypeObjection, Label: "Hidden Fees", Frequency: 8},
		{Type: entities.ClusterTypeAngle, Label: "effortless automation workflow", Frequency: 5},
	}

	plan := BuildActionPlan(gaps, clusters)

	require.Len(t, plan.AdTests, 2)
	assert.Equal(t, "Simpler onboarding", plan.AdTests[0].Concept)
	assert.Equal(t, "setup takes hours", plan.AdTests[0].Angle)
	assert.Equal(t, "ship a 5 minute wizard", plan.AdTests[0].Copy)
	assert.NotEmpty(t, plan.AdTests[0].CTA)

	assert.Equal(t, "Simpler onboarding", plan.LandingPage.Hero)
	assert.Equal(t, []string{"No more hidden fees"}, plan.LandingPage.Benefits)

	assert.Equal(t, []string{"hidden", "effortless", "automation", "workflow"}, plan.TopKeywords)
}

func TestBuildActionPlan_EmptyInputs(t *testing.T) {
	plan := BuildActionPlan(nil, nil)

	assert.Empty(t, plan.AdTests)
	assert.NotEmpty(t, plan.LandingPage.Hero)
	assert.Empty(t, plan.LandingPage.Benefits)
	assert.Empty(t, plan.TopKeywords)
}

func TestBuildersAcceptEmptyRows(t *testing.T) {
	summary := BuildExecutiveSummary(nil, nil)
	assert.NotNil(t, summary.TopOpportunities)

	snapshot := BuildPaidMarketSnapshot(nil, nil, nil)
	assert.Equal(t, 0, snapshot.TotalCreatives)
	assert.NotNil(t, snapshot.TopAdvertisers)
	assert.NotNil(t, snapshot.OfferPatterns.Pricing)

	insights := BuildRedditInsights(nil, nil)
	assert.NotNil(t, insights.SwitchingTriggers)

	gap := BuildPlatformGap(nil, nil, nil)
	assert.Equal(t, "hybrid", gap.Recommendation)
}
