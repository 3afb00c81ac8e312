package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

// ClusterAdapter implements read access to phrase clusters
type ClusterAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewClusterAdapter creates a new cluster adapter
func NewClusterAdapter(client *postgres.Client) repositories.ClusterRepository {
	return &ClusterAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves all clusters computed for a run
func (a *ClusterAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.Cluster, error) {
	query, args, err := a.db.Select(
		"id", "run_id", "type", "label", "frequency", "intensity", "examples",
	).From("clusters").
		Where(goqu.Ex{"run_id": runID}).
		Order(goqu.I("frequency").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build clusters query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list clusters", err)
	}
	defer rows.Close()

	var clusters []*entities.Cluster
	for rows.Next() {
		c := &entities.Cluster{}
		err := rows.Scan(
			&c.ID,
			&c.RunID,
			&c.Type,
			&c.Label,
			&c.Frequency,
			&c.Intensity,
			pq.Array(&c.Examples),
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan cluster", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate clusters", err)
	}

	return clusters, nil
}

// ExtractionAdapter implements read access to extracted phrases
type ExtractionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewExtractionAdapter creates a new extraction adapter
func NewExtractionAdapter(client *postgres.Client) repositories.ExtractionRepository {
	return &ExtractionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves all extractions for a run
func (a *ExtractionAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.Extraction, error) {
	query, args, err := a.db.Select(
		"id", "run_id", "kind", "phrase", "offer_text", "source_ref",
	).From("extractions").
		Where(goqu.Ex{"run_id": runID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build extractions query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list extractions", err)
	}
	defer rows.Close()

	var extractions []*entities.Extraction
	for rows.Next() {
		e := &entities.Extraction{}
		var offerText, sourceRef sql.NullString

		err := rows.Scan(&e.ID, &e.RunID, &e.Kind, &e.Phrase, &offerText, &sourceRef)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan extraction", err)
		}

		e.OfferText = offerText.String
		e.SourceRef = sourceRef.String

		extractions = append(extractions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate extractions", err)
	}

	return extractions, nil
}
