package entities

// Range models a low/expected/high estimate triple
type Range struct {
	Low      float64 `json:"low" db:"low"`
	Expected float64 `json:"expected" db:"expected"`
	High     float64 `json:"high" db:"high"`
}

// DifficultyLevel grades human-touch and autonomy suitability
type DifficultyLevel string

const (
	LevelLow    DifficultyLevel = "low"
	LevelMedium DifficultyLevel = "medium"
	LevelHigh   DifficultyLevel = "high"
)

// ConceptMetrics holds the modeled economics and buildability numbers
// attached to a concept idea
type ConceptMetrics struct {
	ConceptID                string          `json:"concept_id" db:"concept_id"`
	CPC                      Range           `json:"cpc"`
	CAC                      Range           `json:"cac"`
	TAM                      Range           `json:"tam"`
	ImplementationDifficulty int             `json:"implementation_difficulty" db:"implementation_difficulty"` // 0-100
	BuildDifficulty          int             `json:"build_difficulty" db:"build_difficulty"`                   // 0-100
	DistributionDifficulty   int             `json:"distribution_difficulty" db:"distribution_difficulty"`    // 0-100
	HumanTouch               DifficultyLevel `json:"human_touch" db:"human_touch"`
	AutonomousSuitability    DifficultyLevel `json:"autonomous_suitability" db:"autonomous_suitability"`
}

// ConceptIdea is a generated product concept for a run
type ConceptIdea struct {
	ID        string          `json:"id" db:"id"`
	RunID     string          `json:"run_id" db:"run_id"`
	Name      string          `json:"name" db:"name"`
	OneLiner  string          `json:"one_liner" db:"one_liner"`
	GapThesis string          `json:"gap_thesis" db:"gap_thesis"`
	Platform  string          `json:"platform" db:"platform"`
	Rationale string          `json:"rationale" db:"rationale"`
	Metrics   *ConceptMetrics `json:"metrics,omitempty"`
}
