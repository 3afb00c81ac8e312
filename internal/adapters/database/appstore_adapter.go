package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

// AppStoreAdapter implements read access to app-store listings
type AppStoreAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppStoreAdapter creates a new app-store adapter
func NewAppStoreAdapter(client *postgres.Client) repositories.AppStoreRepository {
	return &AppStoreAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves all app-store listings found for a run
func (a *AppStoreAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.AppStoreResult, error) {
	query, args, err := a.db.Select(
		"id", "run_id", "platform", "name", "developer", "rating",
		"review_count", "url",
	).From("app_store_results").
		Where(goqu.Ex{"run_id": runID}).
		Order(goqu.I("review_count").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build app-store query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list app-store results", err)
	}
	defer rows.Close()

	var results []*entities.AppStoreResult
	for rows.Next() {
		r := &entities.AppStoreResult{}
		var developer, url sql.NullString

		err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.Platform,
			&r.Name,
			&developer,
			&r.Rating,
			&r.ReviewCount,
			&url,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan app-store result", err)
		}

		r.Developer = developer.String
		r.URL = url.String

		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate app-store results", err)
	}

	return results, nil
}
