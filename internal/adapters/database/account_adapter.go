package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

// AccountAdapter implements per-user usage counter updates
type AccountAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAccountAdapter creates a new account adapter
func NewAccountAdapter(client *postgres.Client) repositories.AccountRepository {
	return &AccountAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// IncrementReportsGenerated bumps the per-user report counter
func (a *AccountAdapter) IncrementReportsGenerated(ctx context.Context, userID string) error {
	query, args, err := a.db.Update("accounts").
		Set(goqu.Record{"reports_generated": goqu.L("reports_generated + 1")}).
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build usage update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewUpstreamError("failed to increment report counter", err)
	}
	return nil
}
