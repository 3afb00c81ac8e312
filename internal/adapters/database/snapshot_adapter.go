package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

// NicheAdapter implements read access to tracked niches
type NicheAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewNicheAdapter creates a new niche adapter
func NewNicheAdapter(client *postgres.Client) repositories.NicheRepository {
	return &NicheAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var nicheColumns = []interface{}{
	"id", "owner_id", "owner_email", "name", "query", "active", "created_at",
}

// GetByID retrieves a niche by ID
func (a *NicheAdapter) GetByID(ctx context.Context, id string) (*entities.Niche, error) {
	query, args, err := a.db.Select(nicheColumns...).
		From("niches").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build niche query", err)
	}

	niche := &entities.Niche{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&niche.ID, &niche.OwnerID, &niche.OwnerEmail, &niche.Name,
		&niche.Query, &niche.Active, &niche.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("niche not found")
	}
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to get niche", err)
	}

	return niche, nil
}

// ListActive retrieves all niches with tracking enabled
func (a *NicheAdapter) ListActive(ctx context.Context) ([]*entities.Niche, error) {
	query, args, err := a.db.Select(nicheColumns...).
		From("niches").
		Where(goqu.Ex{"active": true}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build niches query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list niches", err)
	}
	defer rows.Close()

	var niches []*entities.Niche
	for rows.Next() {
		n := &entities.Niche{}
		err := rows.Scan(
			&n.ID, &n.OwnerID, &n.OwnerEmail, &n.Name,
			&n.Query, &n.Active, &n.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan niche", err)
		}
		niches = append(niches, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate niches", err)
	}

	return niches, nil
}

// SnapshotAdapter implements read access to weekly demand snapshots. The four
// signal sub-objects live in JSONB columns.
type SnapshotAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSnapshotAdapter creates a new snapshot adapter
func NewSnapshotAdapter(client *postgres.Client) repositories.SnapshotRepository {
	return &SnapshotAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetLatestPair returns the two most recent snapshots for a niche, newest
// first. previous is nil when only one snapshot exists; both are nil with a
// NotFound error when none exist.
func (a *SnapshotAdapter) GetLatestPair(ctx context.Context, nicheID string) (*entities.DemandSnapshot, *entities.DemandSnapshot, error) {
	query, args, err := a.db.Select(
		"id", "niche_id", "week_of", "demand_score", "score_delta", "trend",
		"ad_signals", "search_signals", "forum_signals", "competitor_signals",
		"captured_at",
	).From("demand_snapshots").
		Where(goqu.Ex{"niche_id": nicheID}).
		Order(goqu.I("week_of").Desc()).
		Limit(2).
		ToSQL()
	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to build snapshots query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewUpstreamError("failed to list demand snapshots", err)
	}
	defer rows.Close()

	var snapshots []*entities.DemandSnapshot
	for rows.Next() {
		s := &entities.DemandSnapshot{}
		var adRaw, searchRaw, forumRaw, competitorRaw []byte

		err := rows.Scan(
			&s.ID, &s.NicheID, &s.WeekOf, &s.DemandScore, &s.ScoreDelta,
			&s.Trend, &adRaw, &searchRaw, &forumRaw, &competitorRaw,
			&s.CapturedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewUpstreamError("failed to scan demand snapshot", err)
		}

		if err := decodeSignals(adRaw, &s.AdSignals); err != nil {
			return nil, nil, err
		}
		if err := decodeSignals(searchRaw, &s.SearchSignals); err != nil {
			return nil, nil, err
		}
		if err := decodeSignals(forumRaw, &s.ForumSignals); err != nil {
			return nil, nil, err
		}
		if err := decodeSignals(competitorRaw, &s.CompetitorSignals); err != nil {
			return nil, nil, err
		}

		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewUpstreamError("failed to iterate demand snapshots", err)
	}

	switch len(snapshots) {
	case 0:
		return nil, nil, apperrors.NewNotFoundError("no snapshots for niche")
	case 1:
		return snapshots[0], nil, nil
	default:
		return snapshots[0], snapshots[1], nil
	}
}

func decodeSignals(raw []byte, target interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return apperrors.NewUpstreamError("failed to decode snapshot signals", err)
	}
	return nil
}
