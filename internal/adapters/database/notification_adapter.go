package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

// NotificationAdapter persists alert notifications
type NotificationAdapter struct {
	db *sqlx.DB
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(db *sqlx.DB) repositories.NotificationRepository {
	return &NotificationAdapter{db: db}
}

const notificationInsert = `
	INSERT INTO notifications
	(id, niche_id, alert_id, alert_type, channel, recipient, subject, body,
	 urgency, status, sent_at, error_message, created_at)
	VALUES (:id, :niche_id, :alert_id, :alert_type, :channel, :recipient,
	 :subject, :body, :urgency, :status, :sent_at, :error_message, :created_at)
`

// Create inserts a single notification row
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	fillNotificationDefaults(notification)

	if _, err := a.db.NamedExecContext(ctx, notificationInsert, notification); err != nil {
		return apperrors.NewUpstreamError("failed to create notification", err)
	}
	return nil
}

// CreateBatch inserts all notification rows in one statement
func (a *NotificationAdapter) CreateBatch(ctx context.Context, notifications []*entities.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	for _, n := range notifications {
		fillNotificationDefaults(n)
	}

	if _, err := a.db.NamedExecContext(ctx, notificationInsert, notifications); err != nil {
		return apperrors.NewUpstreamError("failed to batch insert notifications", err)
	}
	return nil
}

func fillNotificationDefaults(n *entities.Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
}
