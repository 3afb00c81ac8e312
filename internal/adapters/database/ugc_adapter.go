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

// UGCAdapter implements read access to collected UGC assets
type UGCAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUGCAdapter creates a new UGC adapter
func NewUGCAdapter(client *postgres.Client) repositories.UGCRepository {
	return &UGCAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves UGC assets for a run with engagement metrics attached
func (a *UGCAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.UGCAsset, error) {
	query, args, err := a.db.Select(
		goqu.I("u.id"), goqu.I("u.run_id"), goqu.I("u.source"), goqu.I("u.url"),
		goqu.I("u.caption"), goqu.I("u.author_id"), goqu.I("u.posted_at"),
		goqu.I("u.fetched_at"),
		goqu.I("m.views"), goqu.I("m.likes"), goqu.I("m.comments"), goqu.I("m.shares"),
	).From(goqu.T("ugc_assets").As("u")).
		LeftJoin(
			goqu.T("ugc_metrics").As("m"),
			goqu.On(goqu.Ex{"m.asset_id": goqu.I("u.id")}),
		).
		Where(goqu.Ex{"u.run_id": runID}).
		Order(goqu.I("u.posted_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build ugc query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list ugc assets", err)
	}
	defer rows.Close()

	var assets []*entities.UGCAsset
	for rows.Next() {
		asset := &entities.UGCAsset{}
		var caption, authorID sql.NullString
		var views, likes, comments, shares sql.NullInt64

		err := rows.Scan(
			&asset.ID,
			&asset.RunID,
			&asset.Source,
			&asset.URL,
			&caption,
			&authorID,
			&asset.PostedAt,
			&asset.FetchedAt,
			&views,
			&likes,
			&comments,
			&shares,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan ugc asset", err)
		}

		asset.Caption = caption.String
		asset.AuthorID = authorID.String
		if views.Valid {
			asset.Metrics = &entities.UGCMetrics{
				AssetID:  asset.ID,
				Views:    int(views.Int64),
				Likes:    int(likes.Int64),
				Comments: int(comments.Int64),
				Shares:   int(shares.Int64),
			}
		}

		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate ugc assets", err)
	}

	return assets, nil
}
