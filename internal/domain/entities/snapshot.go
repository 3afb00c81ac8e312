package entities

import "time"

// Niche is a demand topic tracked week over week for a user
type Niche struct {
	ID         string    `json:"id" db:"id"`
	OwnerID    string    `json:"owner_id" db:"owner_id"`
	OwnerEmail string    `json:"owner_email" db:"owner_email"`
	Name       string    `json:"name" db:"name"`
	Query      string    `json:"query" db:"query"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TrendDirection summarizes the week-over-week movement of demand
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFlat    TrendDirection = "flat"
	TrendFalling TrendDirection = "falling"
)

// AdSignals holds the paid-market portion of a snapshot
type AdSignals struct {
	ActiveAdvertisers int      `json:"active_advertisers"`
	NewAdvertisers    []string `json:"new_advertisers"`
	TopAngles         []string `json:"top_angles"`
}

// SearchSignals holds the search-demand portion of a snapshot
type SearchSignals struct {
	Volume          int      `json:"volume"`
	VolumeChangePct float64  `json:"volume_change_pct"`
	RisingTerms     []string `json:"rising_terms"`
}

// ForumSignals holds the community-discussion portion of a snapshot
type ForumSignals struct {
	MentionCount  int      `json:"mention_count"`
	TopComplaints []string `json:"top_complaints"`
	AvgSentiment  float64  `json:"avg_sentiment"`
}

// PricingChange records one observed competitor price move
type PricingChange struct {
	Competitor    string  `json:"competitor"`
	OldPrice      float64 `json:"old_price"`
	NewPrice      float64 `json:"new_price"`
	PercentChange float64 `json:"percent_change"`
}

// FeatureChange records one observed competitor feature move
type FeatureChange struct {
	Competitor string `json:"competitor"`
	Feature    string `json:"feature"`
	Kind       string `json:"kind"` // added|removed|changed
}

// CompetitorSignals holds the competitive portion of a snapshot
type CompetitorSignals struct {
	PricingChanges []PricingChange `json:"pricing_changes"`
	FeatureChanges []FeatureChange `json:"feature_changes"`
}

// DemandSnapshot is one weekly point-in-time rollup of market signals for a
// tracked niche, produced by the collector cron and read for week-over-week
// diffing.
type DemandSnapshot struct {
	ID                string            `json:"id" db:"id"`
	NicheID           string            `json:"niche_id" db:"niche_id"`
	WeekOf            time.Time         `json:"week_of" db:"week_of"`
	DemandScore       float64           `json:"demand_score" db:"demand_score"` // 0-100
	ScoreDelta        float64           `json:"score_delta" db:"score_delta"`
	Trend             TrendDirection    `json:"trend" db:"trend"`
	AdSignals         AdSignals         `json:"ad_signals"`
	SearchSignals     SearchSignals     `json:"search_signals"`
	ForumSignals      ForumSignals      `json:"forum_signals"`
	CompetitorSignals CompetitorSignals `json:"competitor_signals"`
	CapturedAt        time.Time         `json:"captured_at" db:"captured_at"`
}
