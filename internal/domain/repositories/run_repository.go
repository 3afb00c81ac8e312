package repositories

import (
	"context"

	"github.com/demandlens/backend/internal/domain/entities"
)

// RunRepository defines read access to analysis runs and their projects
type RunRepository interface {
	// GetByID retrieves a run by ID
	GetByID(ctx context.Context, id string) (*entities.Run, error)

	// GetProject retrieves the project owning a run
	GetProject(ctx context.Context, projectID string) (*entities.Project, error)
}

// AccountRepository defines the usage-counter write path
type AccountRepository interface {
	// IncrementReportsGenerated bumps the per-user report counter
	IncrementReportsGenerated(ctx context.Context, userID string) error
}
