package services

import (
	"math"
	"sort"
	"strings"

	"github.com/demandlens/backend/internal/domain/entities"
)

const (
	mobileSaturationCap = 50
	webSaturationCap    = 100
	topAppLimit         = 5
)

// BuildPlatformGap scores how crowded each platform is and recommends where
// to build. Web saturation is derived from ad volume since web apps have no
// store listing to count.
func BuildPlatformGap(apps []*entities.AppStoreResult, creatives []*entities.AdCreative, concepts []*entities.ConceptIdea) entities.PlatformGap {
	var ios, android []*entities.AppStoreResult
	for _, app := range apps {
		switch app.Platform {
		case entities.PlatformIOS:
			ios = append(ios, app)
		case entities.PlatformAndroid:
			android = append(android, app)
		}
	}

	saturation := entities.PlatformSaturation{
		IOS:     saturationPct(len(ios), mobileSaturationCap),
		Android: saturationPct(len(android), mobileSaturationCap),
		Web:     saturationPct(len(creatives), webSaturationCap),
	}

	return entities.PlatformGap{
		Saturation:     saturation,
		TopIOSApps:     topApps(ios),
		TopAndroidApps: topApps(android),
		Recommendation: platformRecommendation(saturation, concepts),
	}
}

func saturationPct(count, limit int) float64 {
	return math.Min(float64(count)/float64(limit), 1) * 100
}

func topApps(apps []*entities.AppStoreResult) []entities.AppSummary {
	sorted := make([]*entities.AppStoreResult, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReviewCount > sorted[j].ReviewCount
	})
	if len(sorted) > topAppLimit {
		sorted = sorted[:topAppLimit]
	}

	out := make([]entities.AppSummary, 0, len(sorted))
	for _, app := range sorted {
		out = append(out, entities.AppSummary{
			Name:        app.Name,
			Rating:      app.Rating,
			ReviewCount: app.ReviewCount,
		})
	}
	return out
}

func platformRecommendation(s entities.PlatformSaturation, concepts []*entities.ConceptIdea) string {
	if len(concepts) > 0 && concepts[0].Platform != "" {
		return concepts[0].Platform
	}

	mobileAvg := (s.IOS + s.Android) / 2
	switch {
	case mobileAvg < 30 && s.Web > 50:
		return "mobile"
	case s.Web < 30 && mobileAvg > 50:
		return "web"
	default:
		return "hybrid"
	}
}

// defaultEconomics is used when no concept carries modeled metrics
var defaultEconomics = entities.ModeledEconomics{
	CPC: entities.Range{Low: 0.5, Expected: 2.0, High: 5.0},
	CAC: entities.Range{Low: 10, Expected: 50, High: 150},
	TAM: entities.Range{Low: 100_000, Expected: 1_000_000, High: 10_000_000},
}

// BuildModeledEconomics passes through the first concept's metrics, falling
// back to fixed industry defaults, and models two ad-spend scenarios.
func BuildModeledEconomics(concepts []*entities.ConceptIdea) entities.ModeledEconomics {
	econ := defaultEconomics
	if len(concepts) > 0 && concepts[0].Metrics != nil {
		m := concepts[0].Metrics
		econ.CPC = m.CPC
		econ.CAC = m.CAC
		econ.TAM = m.TAM
	}

	econ.Scenarios = []entities.BudgetScenario{
		budgetScenario(1_000, econ.CPC.Expected, econ.CAC.Expected),
		budgetScenario(10_000, econ.CPC.Expected, econ.CAC.Expected),
	}
	return econ
}

func budgetScenario(spend, cpc, cac float64) entities.BudgetScenario {
	s := entities.BudgetScenario{Spend: spend}
	if cpc > 0 {
		s.Reach = int(spend / cpc)
	}
	if cac > 0 {
		s.Conversions = int(spend / cac)
	}
	return s
}

// riskKeywordFamilies maps regulated-domain terms to the advisory flag they
// raise. The \bai\b style word-boundary check for "ai" is done manually to
// avoid matching words like "maintain".
var riskKeywordFamilies = []struct {
	terms []string
	flag  string
}{
	{[]string{"health", "medical", "patient", "clinical"}, "Health domain: verify HIPAA or local medical-data regulation before launch."},
	{[]string{"finance", "payment", "invest", "loan", "banking"}, "Financial domain: payments and investment advice carry licensing requirements."},
	{[]string{"data", "privacy", "personal information", "gdpr"}, "Data handling: privacy regulation (GDPR/CCPA) applies to stored user data."},
	{[]string{" ai ", "ai-", "artificial intelligence", "machine learning", "llm"}, "AI features: model output quality and disclosure obligations need review."},
}

// BuildBuildability assesses how hard the first concept is to ship
func BuildBuildability(concepts []*entities.ConceptIdea) entities.BuildabilityAssessment {
	assessment := entities.BuildabilityAssessment{
		ImplementationDifficulty: 50,
		HumanTouch:               entities.LevelMedium,
		AutonomousSuitability:    entities.LevelMedium,
		RiskFlags:                []string{},
	}

	var concept *entities.ConceptIdea
	if len(concepts) > 0 {
		concept = concepts[0]
		if m := concept.Metrics; m != nil {
			assessment.ImplementationDifficulty = m.ImplementationDifficulty
			if m.HumanTouch != "" {
				assessment.HumanTouch = m.HumanTouch
			}
			if m.AutonomousSuitability != "" {
				assessment.AutonomousSuitability = m.AutonomousSuitability
			}
		}
	}

	switch {
	case assessment.ImplementationDifficulty < 40:
		assessment.TimeToMVP = "2-4 weeks"
	case assessment.ImplementationDifficulty < 70:
		assessment.TimeToMVP = "1-3 months"
	default:
		assessment.TimeToMVP = "3-6 months"
	}

	if concept != nil {
		text := " " + strings.ToLower(concept.Name+" "+concept.OneLiner+" "+concept.GapThesis) + " "
		for _, family := range riskKeywordFamilies {
			for _, term := range family.terms {
				if strings.Contains(text, term) {
					assessment.RiskFlags = append(assessment.RiskFlags, family.flag)
					break
				}
			}
		}
	}

	return assessment
}
