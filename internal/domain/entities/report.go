package entities

import "time"

// GapSummary is a gap opportunity as rendered into a report
type GapSummary struct {
	Type             GapType  `json:"type"`
	Title            string   `json:"title"`
	Problem          string   `json:"problem"`
	Recommendation   string   `json:"recommendation"`
	OpportunityScore float64  `json:"opportunity_score"`
	Confidence       float64  `json:"confidence"`
	Evidence         []string `json:"evidence,omitempty"`
}

// ExecutiveSummary is the lead report section
type ExecutiveSummary struct {
	TopOpportunities       []GapSummary `json:"top_opportunities"`
	PlatformRecommendation string       `json:"platform_recommendation"`
	Rationale              string       `json:"rationale"`
}

// AdvertiserStat aggregates ad creatives per advertiser
type AdvertiserStat struct {
	Name           string  `json:"name"`
	AdCount        int     `json:"ad_count"`
	AvgDaysRunning float64 `json:"avg_days_running"`
}

// AngleStat is a cluster rendered as a ranked theme
type AngleStat struct {
	Label     string   `json:"label"`
	Frequency int      `json:"frequency"`
	Examples  []string `json:"examples,omitempty"`
}

// RunningAd summarizes one long-running creative
type RunningAd struct {
	Advertiser  string   `json:"advertiser"`
	Headline    string   `json:"headline"`
	Source      AdSource `json:"source"`
	DaysRunning int      `json:"days_running"`
}

// OfferPatterns groups offer snippets by keyword family
type OfferPatterns struct {
	Pricing   []string `json:"pricing"`
	Trial     []string `json:"trial"`
	Guarantee []string `json:"guarantee"`
}

// PaidMarketSnapshot is the paid-ads report section
type PaidMarketSnapshot struct {
	TotalCreatives int              `json:"total_creatives"`
	TopAdvertisers []AdvertiserStat `json:"top_advertisers"`
	TopAngles      []AngleStat      `json:"top_angles"`
	LongestRunning []RunningAd      `json:"longest_running"`
	OfferPatterns  OfferPatterns    `json:"offer_patterns"`
}

// MentionQuote is a mention referenced as evidence in a report
type MentionQuote struct {
	Subreddit string `json:"subreddit"`
	Title     string `json:"title"`
	Score     int    `json:"score"`
	Permalink string `json:"permalink"`
}

// RedditInsights is the community-research report section
type RedditInsights struct {
	TopObjections     []AngleStat    `json:"top_objections"`
	DesiredFeatures   []AngleStat    `json:"desired_features"`
	PricingFriction   []MentionQuote `json:"pricing_friction"`
	TrustFriction     []MentionQuote `json:"trust_friction"`
	SwitchingTriggers []string       `json:"switching_triggers"`
}

// PlatformSaturation holds the saturation percentage per platform
type PlatformSaturation struct {
	IOS     float64 `json:"ios"`
	Android float64 `json:"android"`
	Web     float64 `json:"web"`
}

// AppSummary is an app listing rendered into a report
type AppSummary struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// PlatformGap is the platform-existence-gap report section
type PlatformGap struct {
	Saturation     PlatformSaturation `json:"saturation"`
	TopIOSApps     []AppSummary       `json:"top_ios_apps"`
	TopAndroidApps []AppSummary       `json:"top_android_apps"`
	Recommendation string             `json:"recommendation"`
}

// BudgetScenario models expected reach at a given ad spend
type BudgetScenario struct {
	Spend       float64 `json:"spend"`
	Reach       int     `json:"reach"`
	Conversions int     `json:"conversions"`
}

// ModeledEconomics is the unit-economics report section
type ModeledEconomics struct {
	CPC       Range            `json:"cpc"`
	CAC       Range            `json:"cac"`
	TAM       Range            `json:"tam"`
	Scenarios []BudgetScenario `json:"scenarios"`
}

// BuildabilityAssessment is the feasibility report section
type BuildabilityAssessment struct {
	ImplementationDifficulty int             `json:"implementation_difficulty"`
	TimeToMVP                string          `json:"time_to_mvp"`
	HumanTouch               DifficultyLevel `json:"human_touch"`
	AutonomousSuitability    DifficultyLevel `json:"autonomous_suitability"`
	RiskFlags                []string        `json:"risk_flags"`
}

// UGCWinnersPack is the creative-reference report section. Content is
// templated until the UGC collection integration lands.
type UGCWinnersPack struct {
	Status         string   `json:"status"`
	ExampleHooks   []string `json:"example_hooks"`
	ScriptSkeleton []string `json:"script_skeleton"`
	ShotList       []string `json:"shot_list"`
}

// AdTestConcept is one ready-to-run ad test derived from a gap
type AdTestConcept struct {
	Concept string `json:"concept"`
	Angle   string `json:"angle"`
	Copy    string `json:"copy"`
	CTA     string `json:"cta"`
}

// LandingPage is the recommended landing-page skeleton
type LandingPage struct {
	Hero     string   `json:"hero"`
	Benefits []string `json:"benefits"`
	CTA      string   `json:"cta"`
}

// ActionPlan is the closing report section
type ActionPlan struct {
	AdTests     []AdTestConcept `json:"ad_tests"`
	LandingPage LandingPage     `json:"landing_page"`
	TopKeywords []string        `json:"top_keywords"`
}

// ReportData is the full nine-section report for a run
type ReportData struct {
	RunID            string                 `json:"run_id"`
	NicheQuery       string                 `json:"niche_query"`
	GeneratedAt      time.Time              `json:"generated_at"`
	Scores           RunScores              `json:"scores"`
	ExecutiveSummary ExecutiveSummary       `json:"executive_summary"`
	PaidMarket       PaidMarketSnapshot     `json:"paid_market"`
	RedditInsights   RedditInsights         `json:"reddit_insights"`
	PlatformGap      PlatformGap            `json:"platform_gap"`
	Gaps             []GapSummary           `json:"gaps"`
	Economics        ModeledEconomics       `json:"economics"`
	Buildability     BuildabilityAssessment `json:"buildability"`
	UGCPack          UGCWinnersPack         `json:"ugc_pack"`
	ActionPlan       ActionPlan             `json:"action_plan"`
}
