package entities

// ClusterType classifies what a phrase cluster captures
type ClusterType string

const (
	ClusterTypeAngle     ClusterType = "angle"
	ClusterTypeObjection ClusterType = "objection"
	ClusterTypeFeature   ClusterType = "feature"
	ClusterTypeOffer     ClusterType = "offer"
)

// Cluster is a pre-computed grouping of extracted phrases sharing a theme
type Cluster struct {
	ID        string      `json:"id" db:"id"`
	RunID     string      `json:"run_id" db:"run_id"`
	Type      ClusterType `json:"type" db:"type"`
	Label     string      `json:"label" db:"label"`
	Frequency int         `json:"frequency" db:"frequency"`
	Intensity float64     `json:"intensity" db:"intensity"` // 0-1
	Examples  []string    `json:"examples" db:"examples"`
}

// Extraction is one phrase pulled out of a raw source by the extraction
// pipeline, before clustering. OfferText carries any promotional copy the
// extractor attached to it.
type Extraction struct {
	ID        string `json:"id" db:"id"`
	RunID     string `json:"run_id" db:"run_id"`
	Kind      string `json:"kind" db:"kind"`
	Phrase    string `json:"phrase" db:"phrase"`
	OfferText string `json:"offer_text" db:"offer_text"`
	SourceRef string `json:"source_ref" db:"source_ref"`
}
