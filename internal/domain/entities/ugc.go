package entities

import "time"

// UGCAsset is one piece of short-video content used as creative reference
type UGCAsset struct {
	ID        string       `json:"id" db:"id"`
	RunID     string       `json:"run_id" db:"run_id"`
	Source    string       `json:"source" db:"source"` // tiktok|instagram
	URL       string       `json:"url" db:"url"`
	Caption   string       `json:"caption" db:"caption"`
	AuthorID  string       `json:"author_id" db:"author_id"`
	PostedAt  time.Time    `json:"posted_at" db:"posted_at"`
	Metrics   *UGCMetrics  `json:"metrics,omitempty"`
	Patterns  *UGCPatterns `json:"patterns,omitempty"`
	FetchedAt time.Time    `json:"fetched_at" db:"fetched_at"`
}

// UGCMetrics holds engagement counts for an asset
type UGCMetrics struct {
	AssetID  string `json:"asset_id" db:"asset_id"`
	Views    int    `json:"views" db:"views"`
	Likes    int    `json:"likes" db:"likes"`
	Comments int    `json:"comments" db:"comments"`
	Shares   int    `json:"shares" db:"shares"`
}

// UGCPatterns is the classified creative pattern of an asset's caption
type UGCPatterns struct {
	HookType         string  `json:"hook_type"`
	Format           string  `json:"format"`
	ProofType        string  `json:"proof_type"`
	ObjectionHandled string  `json:"objection_handled,omitempty"`
	CTAStyle         string  `json:"cta_style"`
	Confidence       float64 `json:"confidence"` // 0-1
}
