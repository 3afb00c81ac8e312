package repositories

import (
	"context"

	"github.com/demandlens/backend/internal/domain/entities"
)

// NicheRepository defines read access to tracked niches
type NicheRepository interface {
	// GetByID retrieves a niche by ID
	GetByID(ctx context.Context, id string) (*entities.Niche, error)

	// ListActive retrieves all niches with tracking enabled
	ListActive(ctx context.Context) ([]*entities.Niche, error)
}

// SnapshotRepository defines read access to weekly demand snapshots
type SnapshotRepository interface {
	// GetLatestPair returns the most recent snapshot for a niche and the one
	// before it, newest first. The previous snapshot is nil for a niche's
	// first tracked week.
	GetLatestPair(ctx context.Context, nicheID string) (current *entities.DemandSnapshot, previous *entities.DemandSnapshot, err error)
}

// NotificationRepository defines the alert persistence write path
type NotificationRepository interface {
	// Create inserts a single notification row
	Create(ctx context.Context, notification *entities.Notification) error

	// CreateBatch inserts all notification rows in one statement
	CreateBatch(ctx context.Context, notifications []*entities.Notification) error
}
