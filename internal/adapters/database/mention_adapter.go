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

// MentionAdapter implements read access to collected reddit mentions
type MentionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMentionAdapter creates a new mention adapter
func NewMentionAdapter(client *postgres.Client) repositories.MentionRepository {
	return &MentionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves all reddit mentions collected for a run
func (a *MentionAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.RedditMention, error) {
	query, args, err := a.db.Select(
		"id", "run_id", "subreddit", "type", "title", "body", "score",
		"comment_count", "permalink", "posted_at",
	).From("reddit_mentions").
		Where(goqu.Ex{"run_id": runID}).
		Order(goqu.I("score").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build mentions query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list reddit mentions", err)
	}
	defer rows.Close()

	var mentions []*entities.RedditMention
	for rows.Next() {
		m := &entities.RedditMention{}
		var title, body sql.NullString

		err := rows.Scan(
			&m.ID,
			&m.RunID,
			&m.Subreddit,
			&m.Type,
			&title,
			&body,
			&m.Score,
			&m.CommentCount,
			&m.Permalink,
			&m.PostedAt,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan reddit mention", err)
		}

		m.Title = title.String
		m.Body = body.String

		mentions = append(mentions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate reddit mentions", err)
	}

	return mentions, nil
}
