package services

import (
	"context"
	"strings"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/providers"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/observability"
)

// PatternService classifies UGC captions into creative patterns. When an LLM
// provider is configured it is tried first; any provider failure falls back
// to the heuristic rules without surfacing an error to the caller.
type PatternService struct {
	llm    providers.PatternProvider
	assets repositories.UGCRepository
}

// NewPatternService creates a pattern service. llm may be nil, in which case
// only the heuristic path runs. assets may be nil for callers that only
// classify captions directly.
func NewPatternService(llm providers.PatternProvider) *PatternService {
	return &PatternService{llm: llm}
}

// NewPatternServiceWithAssets creates a pattern service that can classify a
// whole run's collected UGC.
func NewPatternServiceWithAssets(llm providers.PatternProvider, assets repositories.UGCRepository) *PatternService {
	return &PatternService{llm: llm, assets: assets}
}

// ExtractPatterns classifies one caption
func (s *PatternService) ExtractPatterns(ctx context.Context, caption string) *entities.UGCPatterns {
	if strings.TrimSpace(caption) == "" {
		return ExtractPatternsHeuristic(caption)
	}

	if s.llm != nil {
		patterns, err := s.llm.ExtractPatterns(ctx, caption)
		if err == nil && patterns != nil {
			return patterns
		}
		if err != nil {
			observability.LoggerFromContext(ctx).Debug().
				Err(err).
				Msg("pattern provider failed, using heuristic rules")
		}
	}

	return ExtractPatternsHeuristic(caption)
}

// ExtractBatch classifies each asset's caption independently, returning
// results in input order.
func (s *PatternService) ExtractBatch(ctx context.Context, assets []*entities.UGCAsset) []*entities.UGCPatterns {
	results := make([]*entities.UGCPatterns, len(assets))
	for i, asset := range assets {
		results[i] = s.ExtractPatterns(ctx, asset.Caption)
	}
	return results
}

// ExtractForRun loads a run's collected UGC assets and returns them with
// patterns attached.
func (s *PatternService) ExtractForRun(ctx context.Context, runID string) ([]*entities.UGCAsset, error) {
	ctx, span := observability.StartSpan(ctx, "patterns.extract_run")
	defer span.End()

	assets, err := s.assets.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	for _, asset := range assets {
		asset.Patterns = s.ExtractPatterns(ctx, asset.Caption)
	}
	return assets, nil
}
