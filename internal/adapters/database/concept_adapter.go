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

// ConceptAdapter implements read access to concept ideas and their metrics
type ConceptAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewConceptAdapter creates a new concept adapter
func NewConceptAdapter(client *postgres.Client) repositories.ConceptRepository {
	return &ConceptAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByRun retrieves concept ideas for a run with their metrics attached.
// Concepts without a metrics row come back with a nil Metrics.
func (a *ConceptAdapter) ListByRun(ctx context.Context, runID string) ([]*entities.ConceptIdea, error) {
	query, args, err := a.db.Select(
		goqu.I("c.id"), goqu.I("c.run_id"), goqu.I("c.name"),
		goqu.I("c.one_liner"), goqu.I("c.gap_thesis"), goqu.I("c.platform"),
		goqu.I("c.rationale"),
		goqu.I("m.cpc_low"), goqu.I("m.cpc_expected"), goqu.I("m.cpc_high"),
		goqu.I("m.cac_low"), goqu.I("m.cac_expected"), goqu.I("m.cac_high"),
		goqu.I("m.tam_low"), goqu.I("m.tam_expected"), goqu.I("m.tam_high"),
		goqu.I("m.implementation_difficulty"), goqu.I("m.build_difficulty"),
		goqu.I("m.distribution_difficulty"), goqu.I("m.human_touch"),
		goqu.I("m.autonomous_suitability"),
	).From(goqu.T("concept_ideas").As("c")).
		LeftJoin(
			goqu.T("concept_metrics").As("m"),
			goqu.On(goqu.Ex{"m.concept_id": goqu.I("c.id")}),
		).
		Where(goqu.Ex{"c.run_id": runID}).
		Order(goqu.I("c.created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build concepts query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list concept ideas", err)
	}
	defer rows.Close()

	var concepts []*entities.ConceptIdea
	for rows.Next() {
		c := &entities.ConceptIdea{}
		var oneLiner, gapThesis, platform, rationale sql.NullString
		var cpcLow, cpcExp, cpcHigh sql.NullFloat64
		var cacLow, cacExp, cacHigh sql.NullFloat64
		var tamLow, tamExp, tamHigh sql.NullFloat64
		var implDiff, buildDiff, distDiff sql.NullInt64
		var humanTouch, autonomy sql.NullString

		err := rows.Scan(
			&c.ID, &c.RunID, &c.Name,
			&oneLiner, &gapThesis, &platform, &rationale,
			&cpcLow, &cpcExp, &cpcHigh,
			&cacLow, &cacExp, &cacHigh,
			&tamLow, &tamExp, &tamHigh,
			&implDiff, &buildDiff, &distDiff,
			&humanTouch, &autonomy,
		)
		if err != nil {
			return nil, apperrors.NewUpstreamError("failed to scan concept idea", err)
		}

		c.OneLiner = oneLiner.String
		c.GapThesis = gapThesis.String
		c.Platform = platform.String
		c.Rationale = rationale.String

		// A metrics row exists when any of its columns came back non-null.
		if cpcExp.Valid || cacExp.Valid || implDiff.Valid {
			c.Metrics = &entities.ConceptMetrics{
				ConceptID:                c.ID,
				CPC:                      entities.Range{Low: cpcLow.Float64, Expected: cpcExp.Float64, High: cpcHigh.Float64},
				CAC:                      entities.Range{Low: cacLow.Float64, Expected: cacExp.Float64, High: cacHigh.Float64},
				TAM:                      entities.Range{Low: tamLow.Float64, Expected: tamExp.Float64, High: tamHigh.Float64},
				ImplementationDifficulty: int(implDiff.Int64),
				BuildDifficulty:          int(buildDiff.Int64),
				DistributionDifficulty:   int(distDiff.Int64),
				HumanTouch:               entities.DifficultyLevel(humanTouch.String),
				AutonomousSuitability:    entities.DifficultyLevel(autonomy.String),
			}
		}

		concepts = append(concepts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("failed to iterate concept ideas", err)
	}

	return concepts, nil
}
