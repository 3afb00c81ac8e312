package repositories

import (
	"context"

	"github.com/demandlens/backend/internal/domain/entities"
)

// CreativeRepository defines read access to collected ad creatives
type CreativeRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.AdCreative, error)
}

// MentionRepository defines read access to collected reddit mentions
type MentionRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.RedditMention, error)
}

// ExtractionRepository defines read access to extracted phrases
type ExtractionRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.Extraction, error)
}

// ClusterRepository defines read access to phrase clusters
type ClusterRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.Cluster, error)
}

// GapRepository defines read access to detected gap opportunities
type GapRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.GapOpportunity, error)
}

// ConceptRepository defines read access to concept ideas with their metrics
type ConceptRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.ConceptIdea, error)
}

// AppStoreRepository defines read access to app-store listings
type AppStoreRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.AppStoreResult, error)
}

// UGCRepository defines read access to collected UGC assets
type UGCRepository interface {
	ListByRun(ctx context.Context, runID string) ([]*entities.UGCAsset, error)
}
