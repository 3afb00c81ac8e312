package entities

import "time"

// AlertType classifies what triggered an alert
type AlertType string

const (
	AlertCompetitorPrice AlertType = "competitor_price"
	AlertTrendSpike      AlertType = "trend_spike"
	AlertNewAngle        AlertType = "new_angle"
	AlertPainSurge       AlertType = "pain_surge"
	AlertFeatureChange   AlertType = "feature_change"
)

// AlertUrgency grades how quickly an alert should be acted on
type AlertUrgency string

const (
	UrgencyLow    AlertUrgency = "low"
	UrgencyMedium AlertUrgency = "medium"
	UrgencyHigh   AlertUrgency = "high"
)

// Alert is a generated notification about a tracked niche. Created by the
// detector, consumed by the trigger, persisted externally.
type Alert struct {
	ID        string       `json:"id" db:"id"`
	NicheID   string       `json:"niche_id" db:"niche_id"`
	Type      AlertType    `json:"type" db:"type"`
	Title     string       `json:"title" db:"title"`
	Body      string       `json:"body" db:"body"`
	Urgency   AlertUrgency `json:"urgency" db:"urgency"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}
