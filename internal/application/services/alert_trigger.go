package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/providers"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/observability"
)

// defaultDigestMinimum is the alert count above which one niche's alerts are
// combined into a single digest email instead of individual sends.
const defaultDigestMinimum = 3

// TriggerResult reports what one trigger call accomplished. EmailSent true
// with NotificationSaved false means the email went out but the record write
// failed; callers must not resend.
type TriggerResult struct {
	EmailSent         bool
	NotificationSaved bool
	Err               error
}

// BatchResult aggregates trigger outcomes for one niche's detection pass
type BatchResult struct {
	EmailsSent         int
	NotificationsSaved int
	Errors             []error
}

// AlertTrigger delivers detected alerts by email and records each delivery
type AlertTrigger struct {
	email         providers.EmailSender
	notifications repositories.NotificationRepository
	digestMinimum int
}

// NewAlertTrigger creates a new alert trigger
func NewAlertTrigger(email providers.EmailSender, notifications repositories.NotificationRepository) *AlertTrigger {
	return &AlertTrigger{
		email:         email,
		notifications: notifications,
		digestMinimum: defaultDigestMinimum,
	}
}

// WithDigestMinimum overrides the per-niche alert count above which delivery
// switches to a single digest email. Values below 1 keep the default.
func (t *AlertTrigger) WithDigestMinimum(minimum int) *AlertTrigger {
	if minimum >= 1 {
		t.digestMinimum = minimum
	}
	return t
}

// Trigger sends one alert email and persists the notification record. Email
// failure aborts the call before anything is persisted.
func (t *AlertTrigger) Trigger(ctx context.Context, alert *entities.Alert, recipientEmail, nicheName string) TriggerResult {
	subject := alertSubject(alert, nicheName)
	msg := &providers.EmailMessage{
		To:       recipientEmail,
		Subject:  subject,
		HTMLBody: alertHTML(alert, nicheName),
		TextBody: alert.Body,
	}

	if _, err := t.email.Send(ctx, msg); err != nil {
		return TriggerResult{Err: err}
	}

	notification := notificationFor(alert, recipientEmail, subject, alert.Body)
	if err := t.notifications.Create(ctx, notification); err != nil {
		return TriggerResult{EmailSent: true, Err: err}
	}

	return TriggerResult{EmailSent: true, NotificationSaved: true}
}

// TriggerBatch delivers all alerts detected for one niche in one pass. Above
// the digest minimum the alerts collapse into a single combined email so a
// noisy week does not turn into a noisy inbox.
func (t *AlertTrigger) TriggerBatch(ctx context.Context, niche *entities.Niche, alerts []*entities.Alert) BatchResult {
	result := BatchResult{}
	if len(alerts) == 0 {
		return result
	}

	if len(alerts) > t.digestMinimum {
		return t.triggerDigest(ctx, niche, alerts)
	}

	for _, alert := range alerts {
		r := t.Trigger(ctx, alert, niche.OwnerEmail, niche.Name)
		if r.EmailSent {
			result.EmailsSent++
		}
		if r.NotificationSaved {
			result.NotificationsSaved++
		}
		if r.Err != nil {
			result.Errors = append(result.Errors, r.Err)
		}
	}
	return result
}

func (t *AlertTrigger) triggerDigest(ctx context.Context, niche *entities.Niche, alerts []*entities.Alert) BatchResult {
	result := BatchResult{}
	subject := fmt.Sprintf("🔔 %d alerts for %s this week", len(alerts), niche.Name)

	msg := &providers.EmailMessage{
		To:       niche.OwnerEmail,
		Subject:  subject,
		HTMLBody: digestHTML(niche.Name, alerts),
		TextBody: digestText(alerts),
	}
	if _, err := t.email.Send(ctx, msg); err != nil {
		result.Errors = append(result.Errors, err)
		return result
	}
	result.EmailsSent = 1

	notifications := make([]*entities.Notification, 0, len(alerts))
	for _, alert := range alerts {
		notifications = append(notifications, notificationFor(alert, niche.OwnerEmail, subject, alert.Body))
	}
	if err := t.notifications.CreateBatch(ctx, notifications); err != nil {
		observability.LoggerFromContext(ctx).Error().
			Err(err).
			Str("niche_id", niche.ID).
			Msg("digest sent but notification batch insert failed")
		result.Errors = append(result.Errors, err)
		return result
	}
	result.NotificationsSaved = len(notifications)

	return result
}

func notificationFor(alert *entities.Alert, recipient, subject, body string) *entities.Notification {
	sentAt := time.Now()
	return &entities.Notification{
		NicheID:   alert.NicheID,
		AlertID:   alert.ID,
		AlertType: alert.Type,
		Channel:   entities.ChannelEmail,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Urgency:   alert.Urgency,
		Status:    entities.NotificationStatusSent,
		SentAt:    &sentAt,
	}
}

func alertSubject(alert *entities.Alert, nicheName string) string {
	return fmt.Sprintf("%s %s: %s", urgencyEmoji(alert.Urgency), nicheName, alert.Title)
}

func urgencyEmoji(urgency entities.AlertUrgency) string {
	switch urgency {
	case entities.UrgencyHigh:
		return "🔴"
	case entities.UrgencyMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

func alertHTML(alert *entities.Alert, nicheName string) string {
	return fmt.Sprintf(
		"<h2>%s</h2><p><strong>%s</strong> · %s urgency</p><p>%s</p>",
		alert.Title, nicheName, alert.Urgency, alert.Body)
}

func digestHTML(nicheName string, alerts []*entities.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Weekly alerts for %s</h2><ul>", nicheName)
	for _, alert := range alerts {
		fmt.Fprintf(&b, "<li>%s <strong>%s</strong>: %s</li>",
			urgencyEmoji(alert.Urgency), alert.Title, alert.Body)
	}
	b.WriteString("</ul>")
	return b.String()
}

func digestText(alerts []*entities.Alert) string {
	lines := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		lines = append(lines, fmt.Sprintf("- [%s] %s: %s", alert.Urgency, alert.Title, alert.Body))
	}
	return strings.Join(lines, "\n")
}
