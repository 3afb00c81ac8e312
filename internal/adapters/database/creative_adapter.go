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

// CreativeAdapter implements read access to collected ad creatives
type CreativeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCreativeAdapter creates a new creative adapter
func NewCreativeAdapter(client *postgres.Client) repositories.CreativeRepository {
	return &CreativeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves all ad creatives collected for a run
func (a *CreativeAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.AdCreative, error) {
	query, args, err := a.db.Select(
		"id", "run_id", "source", "advertiser", "text", "headline",
		"description", "first_seen", "last_seen", "active", "media_type",
	).From("ad_creatives").
		Where(goqu.Ex{"run_id": runID}).
		Order(goqu.I("first_seen").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build creatives query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list ad creatives", err)
	}
	defer rows.Close()

	var creatives []*entities.AdCreative
	for rows.Next() {
		c := &entities.AdCreative{}
		var text, headline, description, mediaType sql.NullString

		err := rows.Scan(
			&c.ID,
			&c.RunID,
			&c.Source,
			&c.Advertiser,
			&text,
			&headline,
			&description,
			&c.FirstSeen,
			&c.LastSeen,
			&c.Active,
			&mediaType,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan ad creative", err)
		}

		c.Text = text.String
		c.Headline = headline.String
		c.Description = description.String
		c.MediaType = mediaType.String

		creatives = append(creatives, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate ad creatives", err)
	}

	return creatives, nil
}
