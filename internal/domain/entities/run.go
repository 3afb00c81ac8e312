package entities

import (
	"time"
)

// RunStatus represents the lifecycle state of an analysis run
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunScores holds the derived scores computed by the analysis pipeline.
// Saturation through opportunity are 0-100, confidence is 0-1.
type RunScores struct {
	Saturation      float64 `json:"saturation" db:"score_saturation"`
	Longevity       float64 `json:"longevity" db:"score_longevity"`
	Dissatisfaction float64 `json:"dissatisfaction" db:"score_dissatisfaction"`
	Misalignment    float64 `json:"misalignment" db:"score_misalignment"`
	Opportunity     float64 `json:"opportunity" db:"score_opportunity"`
	Confidence      float64 `json:"confidence" db:"score_confidence"`
}

// Run represents one market-analysis execution. Runs are created and mutated
// by the collector pipeline; this core reads them only.
type Run struct {
	ID          string     `json:"id" db:"id"`
	ProjectID   string     `json:"project_id" db:"project_id"`
	NicheQuery  string     `json:"niche_query" db:"niche_query"`
	SeedTerms   []string   `json:"seed_terms" db:"seed_terms"`
	Competitors []string   `json:"competitors" db:"competitors"`
	Geo         string     `json:"geo" db:"geo"`
	Status      RunStatus  `json:"status" db:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty" db:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty" db:"finished_at"`
	Scores      RunScores  `json:"scores"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Project groups runs under an owning user account
type Project struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
