package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

// RunAdapter implements read access to runs and projects
type RunAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRunAdapter creates a new run adapter
func NewRunAdapter(client *postgres.Client) repositories.RunRepository {
	return &RunAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a run by ID
func (a *RunAdapter) GetByID(ctx context.Context, id string) (*entities.Run, error) {
	query, args, err := a.db.Select(
		"id", "project_id", "niche_query", "seed_terms", "competitors", "geo",
		"status", "started_at", "finished_at",
		"score_saturation", "score_longevity", "score_dissatisfaction",
		"score_misalignment", "score_opportunity", "score_confidence",
		"created_at",
	).From("runs").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build run query", err)
	}

	run := &entities.Run{}
	var geo sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&run.ID,
		&run.ProjectID,
		&run.NicheQuery,
		pq.Array(&run.SeedTerms),
		pq.Array(&run.Competitors),
		&geo,
		&run.Status,
		&run.StartedAt,
		&run.FinishedAt,
		&run.Scores.Saturation,
		&run.Scores.Longevity,
		&run.Scores.Dissatisfaction,
		&run.Scores.Misalignment,
		&run.Scores.Opportunity,
		&run.Scores.Confidence,
		&run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("run not found")
	}
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to get run", err)
	}

	run.Geo = geo.String
	return run, nil
}

// GetProject retrieves the project owning a run
func (a *RunAdapter) GetProject(ctx context.Context, projectID string) (*entities.Project, error) {
	query, args, err := a.db.Select("id", "owner_id", "name", "created_at").
		From("projects").
		Where(goqu.Ex{"id": projectID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build project query", err)
	}

	project := &entities.Project{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&project.ID,
		&project.OwnerID,
		&project.Name,
		&project.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("project not found")
	}
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to get project", err)
	}

	return project, nil
}
