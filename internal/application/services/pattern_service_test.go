package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandlens/backend/internal/domain/entities"
)

func TestExtractPatternsHeuristic_EmptyCaption(t *testing.T) {
	for _, caption := range []string{"", "   ", "\n"} {
		patterns := ExtractPatternsHeuristic(caption)

		assert.Equal(t, "Unknown", patterns.HookType)
		assert.Equal(t, "Unknown", patterns.Format)
		assert.Equal(t, "None", patterns.ProofType)
		assert.Equal(t, "None", patterns.CTAStyle)
		assert.Equal(t, 0.1, patterns.Confidence)
	}
}

func TestExtractPatternsHeuristic_POVHook(t *testing.T) {
	patterns := ExtractPatternsHeuristic("POV: you finally automated your invoices")

	assert.Equal(t, "POV / Relatable", patterns.HookType)
	assert.LessOrEqual(t, patterns.Confidence, 0.85)
}

func TestExtractPatternsHeuristic_PainPointBeatsLaterRules(t *testing.T) {
	// Caption matches both the pain-point regex and the hack keyword; the
	// earlier rule must win.
	patterns := ExtractPatternsHeuristic("Stop wasting hours, this hack fixes it")

	assert.Equal(t, "Pain point callout", patterns.HookType)
}

func TestExtractPatternsHeuristic_FormatRules(t *testing.T) {
	tests := []struct {
		caption string
		format  string
	}{
		{"5 tools that replaced my whole stack", "Listicle"},
		{"how to set this up in 2 minutes", "Tutorial"},
		{"notion vs obsidian compared to each other", "Comparison"},
		{"just vibes today", "General"},
	}
	for _, tt := range tests {
		patterns := ExtractPatternsHeuristic(tt.caption)
		assert.Equal(t, tt.format, patterns.Format, "caption: %s", tt.caption)
	}
}

func TestExtractPatternsHeuristic_ConfidenceNeverExceedsCap(t *testing.T) {
	// Everything matches: strong hook, strong format, proof, objection, CTA.
	patterns := ExtractPatternsHeuristic(
		"POV: before and after my desk transformation, 90% faster, actually works, link in bio")

	// (0.9 + 0.85 + 0.8 + 0.8 + 0.8) / 5
	assert.InDelta(t, 0.83, patterns.Confidence, 0.001)
	assert.LessOrEqual(t, patterns.Confidence, 0.85)
	assert.Equal(t, "Trust", patterns.ObjectionHandled)
	assert.Equal(t, "Link in bio", patterns.CTAStyle)
}

func TestExtractPatternsHeuristic_GenericCaptionLowConfidence(t *testing.T) {
	patterns := ExtractPatternsHeuristic("a nice day outside")

	assert.Equal(t, "General", patterns.HookType)
	assert.Equal(t, "General", patterns.Format)
	// (0.5 + 0.4 + 0.3 + 0.3 + 0.3) / 5
	assert.InDelta(t, 0.36, patterns.Confidence, 0.001)
}

type stubPatternProvider struct {
	patterns *entities.UGCPatterns
	err      error
	calls    int
}

func (s *stubPatternProvider) ExtractPatterns(ctx context.Context, caption string) (*entities.UGCPatterns, error) {
	s.calls++
	return s.patterns, s.err
}

func TestPatternService_PrefersProvider(t *testing.T) {
	provider := &stubPatternProvider{
		patterns: &entities.UGCPatterns{HookType: "Curiosity hook", Confidence: 0.95},
	}
	svc := NewPatternService(provider)

	patterns := svc.ExtractPatterns(context.Background(), "wait for it")

	assert.Equal(t, 0.95, patterns.Confidence)
	assert.Equal(t, 1, provider.calls)
}

func TestPatternService_FallsBackOnProviderError(t *testing.T) {
	provider := &stubPatternProvider{err: errors.New("rate limited")}
	svc := NewPatternService(provider)

	patterns := svc.ExtractPatterns(context.Background(), "POV: it just works")

	assert.Equal(t, "POV / Relatable", patterns.HookType)
	assert.LessOrEqual(t, patterns.Confidence, 0.85)
}

func TestPatternService_NilProviderUsesHeuristics(t *testing.T) {
	svc := NewPatternService(nil)

	patterns := svc.ExtractPatterns(context.Background(), "stop paying for two tools")

	assert.Equal(t, "Pain point callout", patterns.HookType)
}

func TestPatternService_EmptyCaptionSkipsProvider(t *testing.T) {
	provider := &stubPatternProvider{err: errors.New("should not be called")}
	svc := NewPatternService(provider)

	patterns := svc.ExtractPatterns(context.Background(), "  ")

	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, 0.1, patterns.Confidence)
}

func TestPatternService_BatchIsIndependentAndOrdered(t *testing.T) {
	svc := NewPatternService(nil)
	assets := []*entities.UGCAsset{
		{Caption: "POV: inbox zero at last"},
		{Caption: ""},
		{Caption: "5 ways to cut your ad spend"},
	}

	results := svc.ExtractBatch(context.Background(), assets)

	require.Len(t, results, 3)
	assert.Equal(t, "POV / Relatable", results[0].HookType)
	assert.Equal(t, "Unknown", results[1].HookType)
	assert.Equal(t, "Listicle", results[2].Format)
}
