package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

// GapAdapter implements read access to detected gap opportunities
type GapAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewGapAdapter creates a new gap adapter
func NewGapAdapter(client *postgres.Client) repositories.GapRepository {
	return &GapAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves all gap opportunities detected for a run
func (a *GapAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.GapOpportunity, error) {
	query, args, err := a.db.Select(
		"id", "run_id", "type", "title", "problem", "recommendation",
		"opportunity_score", "confidence", "evidence",
	).From("gap_opportunities").
		Where(goqu.Ex{"run_id": runID}).
		Order(goqu.I("opportunity_score").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build gaps query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list gap opportunities", err)
	}
	defer rows.Close()

	var gaps []*entities.GapOpportunity
	for rows.Next() {
		g := &entities.GapOpportunity{}
		err := rows.Scan(
			&g.ID,
			&g.RunID,
			&g.Type,
			&g.Title,
			&g.Problem,
			&g.Recommendation,
			&g.OpportunityScore,
			&g.Confidence,
			pq.Array(&g.Evidence),
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan gap opportunity", err)
		}
		gaps = append(gaps, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate gap opportunities", err)
	}

	return gaps, nil
}
