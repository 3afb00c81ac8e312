package entities

// GapType classifies a detected market gap
type GapType string

const (
	GapTypeProduct     GapType = "product"
	GapTypeOffer       GapType = "offer"
	GapTypePositioning GapType = "positioning"
	GapTypeTrust       GapType = "trust"
	GapTypePricing     GapType = "pricing"
)

// GapOpportunity represents a detected mismatch between customer demand and
// existing market offerings
type GapOpportunity struct {
	ID               string   `json:"id" db:"id"`
	RunID            string   `json:"run_id" db:"run_id"`
	Type             GapType  `json:"type" db:"type"`
	Title            string   `json:"title" db:"title"`
	Problem          string   `json:"problem" db:"problem"`
	Recommendation   string   `json:"recommendation" db:"recommendation"`
	OpportunityScore float64  `json:"opportunity_score" db:"opportunity_score"` // 0-100
	Confidence       float64  `json:"confidence" db:"confidence"`               // 0-1
	Evidence         []string `json:"evidence" db:"evidence"`
}
