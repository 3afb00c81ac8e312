package providers

import (
	"context"

	"github.com/demandlens/backend/internal/domain/entities"
)

// PatternProvider defines the LLM boundary for creative-pattern extraction.
// Any failure must be treated as non-fatal by callers; the heuristic path
// covers for it.
type PatternProvider interface {
	ExtractPatterns(ctx context.Context, caption string) (*entities.UGCPatterns, error)
}
