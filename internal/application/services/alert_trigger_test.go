package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/providers"
)

type fakeEmailSender struct {
	sent []*providers.EmailMessage
	err  error
}

func (f *fakeEmailSender) Send(ctx context.Context, msg *providers.EmailMessage) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg-1", nil
}

type fakeNotificationRepo struct {
	created   []*entities.Notification
	createErr error
	batchErr  error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entities.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, ns []*entities.Notification) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.created = append(f.created, ns...)
	return nil
}

func testAlert(id string, urgency entities.AlertUrgency) *entities.Alert {
	return &entities.Alert{
		ID:      id,
		NicheID: "niche-1",
		Type:    entities.AlertTrendSpike,
		Title:   "Demand score jumped",
		Body:    "Demand score rose 20 points week over week.",
		Urgency: urgency,
	}
}

func testNiche() *entities.Niche {
	return &entities.Niche{
		ID:         "niche-1",
		OwnerEmail: "founder@example.com",
		Name:       "meal prep apps",
	}
}

func TestTrigger_SendsAndPersists(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeNotificationRepo{}
	trigger := NewAlertTrigger(sender, repo)

	result := trigger.Trigger(context.Background(), testAlert("a-1", entities.UrgencyHigh), "founder@example.com", "meal prep apps")

	assert.True(t, result.EmailSent)
	assert.True(t, result.NotificationSaved)
	assert.NoError(t, result.Err)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "meal prep apps")
	assert.Contains(t, sender.sent[0].Subject, "Demand score jumped")
	assert.Contains(t, sender.sent[0].Subject, "🔴")

	require.Len(t, repo.created, 1)
	assert.Equal(t, "a-1", repo.created[0].AlertID)
	assert.Equal(t, entities.ChannelEmail, repo.created[0].Channel)
	assert.Equal(t, entities.NotificationStatusSent, repo.created[0].Status)
	assert.NotNil(t, repo.created[0].SentAt)
}

func TestTrigger_EmailFailureSkipsPersistence(t *testing.T) {
	sender := &fakeEmailSender{err: errors.New("smtp unreachable")}
	repo := &fakeNotificationRepo{}
	trigger := NewAlertTrigger(sender, repo)

	result := trigger.Trigger(context.Background(), testAlert("a-1", entities.UrgencyMedium), "founder@example.com", "meal prep apps")

	assert.False(t, result.EmailSent)
	assert.False(t, result.NotificationSaved)
	assert.Error(t, result.Err)
	assert.Empty(t, repo.created)
}

func TestTrigger_PersistFailureAfterSend(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeNotificationRepo{createErr: errors.New("insert failed")}
	trigger := NewAlertTrigger(sender, repo)

	result := trigger.Trigger(context.Background(), testAlert("a-1", entities.UrgencyLow), "founder@example.com", "meal prep apps")

	// The email went out; callers must not retry it.
	assert.True(t, result.EmailSent)
	assert.False(t, result.NotificationSaved)
	assert.Error(t, result.Err)
	require.Len(t, sender.sent, 1)
}

func TestTriggerBatch_FewAlertsSendIndividually(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeNotificationRepo{}
	trigger := NewAlertTrigger(sender, repo)
	alerts := []*entities.Alert{
		testAlert("a-1", entities.UrgencyHigh),
		testAlert("a-2", entities.UrgencyMedium),
	}

	result := trigger.TriggerBatch(context.Background(), testNiche(), alerts)

	assert.Equal(t, 2, result.EmailsSent)
	assert.Equal(t, 2, result.NotificationsSaved)
	assert.Empty(t, result.Errors)
	assert.Len(t, sender.sent, 2)
}

func TestTriggerBatch_ManyAlertsCollapseIntoDigest(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeNotificationRepo{}
	trigger := NewAlertTrigger(sender, repo)
	alerts := []*entities.Alert{
		testAlert("a-1", entities.UrgencyHigh),
		testAlert("a-2", entities.UrgencyMedium),
		testAlert("a-3", entities.UrgencyMedium),
		testAlert("a-4", entities.UrgencyLow),
		testAlert("a-5", entities.UrgencyLow),
	}

	result := trigger.TriggerBatch(context.Background(), testNiche(), alerts)

	assert.Equal(t, 1, result.EmailsSent)
	assert.Equal(t, 5, result.NotificationsSaved)
	assert.Empty(t, result.Errors)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "5 alerts")
	require.Len(t, repo.created, 5)
	assert.Equal(t, "a-1", repo.created[0].AlertID)
}

func TestTriggerBatch_CustomDigestMinimum(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeNotificationRepo{}
	trigger := NewAlertTrigger(sender, repo).WithDigestMinimum(1)
	alerts := []*entities.Alert{
		testAlert("a-1", entities.UrgencyHigh),
		testAlert("a-2", entities.UrgencyMedium),
	}

	result := trigger.TriggerBatch(context.Background(), testNiche(), alerts)

	assert.Equal(t, 1, result.EmailsSent)
	assert.Equal(t, 2, result.NotificationsSaved)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "2 alerts")
}

func TestTriggerBatch_DigestEmailFailureSkipsPersistence(t *testing.T) {
	sender := &fakeEmailSender{err: errors.New("smtp unreachable")}
	repo := &fakeNotificationRepo{}
	trigger := NewAlertTrigger(sender, repo)
	alerts := make([]*entities.Alert, 4)
	for i := range alerts {
		alerts[i] = testAlert("a", entities.UrgencyLow)
	}

	result := trigger.TriggerBatch(context.Background(), testNiche(), alerts)

	assert.Equal(t, 0, result.EmailsSent)
	assert.Equal(t, 0, result.NotificationsSaved)
	require.Len(t, result.Errors, 1)
	assert.Empty(t, repo.created)
}

func TestTriggerBatch_AccumulatesPartialFailures(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeNotificationRepo{createErr: errors.New("insert failed")}
	trigger := NewAlertTrigger(sender, repo)
	alerts := []*entities.Alert{
		testAlert("a-1", entities.UrgencyHigh),
		testAlert("a-2", entities.UrgencyMedium),
	}

	result := trigger.TriggerBatch(context.Background(), testNiche(), alerts)

	assert.Equal(t, 2, result.EmailsSent)
	assert.Equal(t, 0, result.NotificationsSaved)
	assert.Len(t, result.Errors, 2)
}

func TestTriggerBatch_EmptyAlertList(t *testing.T) {
	trigger := NewAlertTrigger(&fakeEmailSender{}, &fakeNotificationRepo{})

	result := trigger.TriggerBatch(context.Background(), testNiche(), nil)

	assert.Zero(t, result.EmailsSent)
	assert.Zero(t, result.NotificationsSaved)
}
