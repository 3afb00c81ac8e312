package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandlens/backend/internal/adapters/cache"
	"github.com/demandlens/backend/internal/domain/entities"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

type fakeRunRepo struct {
	run     *entities.Run
	project *entities.Project
	runErr  error
}

func (f *fakeRunRepo) GetByID(ctx context.Context, id string) (*entities.Run, error) {
	if f.runErr != nil {
		return nil, f.runErr
	}
	return f.run, nil
}

func (f *fakeRunRepo) GetProject(ctx context.Context, projectID string) (*entities.Project, error) {
	return f.project, nil
}

type fakeAccountRepo struct {
	increments int32
	err        error
}

func (f *fakeAccountRepo) IncrementReportsGenerated(ctx context.Context, userID string) error {
	atomic.AddInt32(&f.increments, 1)
	return f.err
}

// fakeRows implements every row-set repository, counting total fetches
type fakeRows struct {
	fetches   int32
	creatives []*entities.AdCreative
	gaps      []*entities.GapOpportunity
	fetchErr  error
}

func (f *fakeRows) count() { atomic.AddInt32(&f.fetches, 1) }

func (f *fakeRows) ListByRun(ctx context.Context, runID string) ([]*entities.AdCreative, error) {
	f.count()
	return f.creatives, f.fetchErr
}

type fakeMentions struct{ rows *fakeRows }

func (f *fakeMentions) ListByRun(ctx context.Context, runID string) ([]*entities.RedditMention, error) {
	f.rows.count()
	return nil, nil
}

type fakeExtractions struct{ rows *fakeRows }

func (f *fakeExtractions) ListByRun(ctx context.Context, runID string) ([]*entities.Extraction, error) {
	f.rows.count()
	return nil, nil
}

type fakeClusters struct{ rows *fakeRows }

func (f *fakeClusters) ListByRun(ctx context.Context, runID string) ([]*entities.Cluster, error) {
	f.rows.count()
	return nil, nil
}

type fakeGaps struct{ rows *fakeRows }

func (f *fakeGaps) ListByRun(ctx context.Context, runID string) ([]*entities.GapOpportunity, error) {
	f.rows.count()
	return f.rows.gaps, nil
}

type fakeConcepts struct{ rows *fakeRows }

func (f *fakeConcepts) ListByRun(ctx context.Context, runID string) ([]*entities.ConceptIdea, error) {
	f.rows.count()
	return nil, nil
}

type fakeAppStore struct{ rows *fakeRows }

func (f *fakeAppStore) ListByRun(ctx context.Context, runID string) ([]*entities.AppStoreResult, error) {
	f.rows.count()
	return nil, nil
}

func newTestReportService(runs *fakeRunRepo, rows *fakeRows, accounts *fakeAccountRepo) *ReportService {
	deps := ReportDeps{
		Runs:        runs,
		Creatives:   rows,
		Mentions:    &fakeMentions{rows},
		Extractions: &fakeExtractions{rows},
		Clusters:    &fakeClusters{rows},
		Gaps:        &fakeGaps{rows},
		Concepts:    &fakeConcepts{rows},
		AppStore:    &fakeAppStore{rows},
	}
	if accounts != nil {
		deps.Accounts = accounts
	}
	return NewReportService(deps, cache.NewReportCache(DefaultReportTTL))
}

func completedRun() (*fakeRunRepo, string) {
	return &fakeRunRepo{
		run: &entities.Run{
			ID:         "run-1",
			ProjectID:  "proj-1",
			NicheQuery: "meal prep apps",
			Status:     entities.RunStatusComplete,
			Scores:     entities.RunScores{Opportunity: 72, Confidence: 0.8},
		},
		project: &entities.Project{ID: "proj-1", OwnerID: "user-1"},
	}, "user-1"
}

func TestGenerateReport_EmptyRowsProduceCompleteReport(t *testing.T) {
	runs, userID := completedRun()
	svc := newTestReportService(runs, &fakeRows{}, nil)

	report, err := svc.GenerateReport(context.Background(), "run-1", userID)

	require.NoError(t, err)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "meal prep apps", report.NicheQuery)
	assert.Equal(t, 72.0, report.Scores.Opportunity)
	assert.WithinDuration(t, time.Now(), report.GeneratedAt, time.Second)

	// Every section present with usable defaults, no nils or errors.
	assert.NotNil(t, report.ExecutiveSummary.TopOpportunities)
	assert.Equal(t, "web", report.ExecutiveSummary.PlatformRecommendation)
	assert.Zero(t, report.PaidMarket.TotalCreatives)
	assert.NotNil(t, report.RedditInsights.SwitchingTriggers)
	assert.Equal(t, "hybrid", report.PlatformGap.Recommendation)
	assert.NotNil(t, report.Gaps)
	assert.Len(t, report.Economics.Scenarios, 2)
	assert.Equal(t, 50, report.Buildability.ImplementationDifficulty)
	assert.Equal(t, "template", report.UGCPack.Status)
	assert.NotEmpty(t, report.ActionPlan.LandingPage.Hero)
}

func TestGenerateReport_CacheHitSkipsFetches(t *testing.T) {
	runs, userID := completedRun()
	rows := &fakeRows{}
	svc := newTestReportService(runs, rows, nil)

	first, err := svc.GenerateReport(context.Background(), "run-1", userID)
	require.NoError(t, err)
	assert.Equal(t, int32(7), atomic.LoadInt32(&rows.fetches))

	second, err := svc.GenerateReport(context.Background(), "run-1", userID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(7), atomic.LoadInt32(&rows.fetches), "cache hit must not refetch")
}

func TestGenerateReport_OwnershipMismatch(t *testing.T) {
	runs, _ := completedRun()
	rows := &fakeRows{}
	svc := newTestReportService(runs, rows, nil)

	_, err := svc.GenerateReport(context.Background(), "run-1", "intruder")

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Zero(t, atomic.LoadInt32(&rows.fetches), "unauthorized calls must not fetch")

	// Nothing was cached for the run either.
	assert.Zero(t, svc.CacheStats().Total)
}

func TestGenerateReport_RunNotFound(t *testing.T) {
	runs := &fakeRunRepo{runErr: apperrors.NewNotFoundError("run not found")}
	svc := newTestReportService(runs, &fakeRows{}, nil)

	_, err := svc.GenerateReport(context.Background(), "missing", "user-1")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestGenerateReport_FetchFailureAbortsGeneration(t *testing.T) {
	runs, userID := completedRun()
	rows := &fakeRows{fetchErr: apperrors.NewUpstreamError("query failed", errors.New("conn reset"))}
	svc := newTestReportService(runs, rows, nil)

	_, err := svc.GenerateReport(context.Background(), "run-1", userID)

	require.Error(t, err)
	assert.Zero(t, svc.CacheStats().Total, "failed generations must not cache")
}

func TestGenerateReport_IncrementsUsageCounter(t *testing.T) {
	runs, userID := completedRun()
	accounts := &fakeAccountRepo{}
	svc := newTestReportService(runs, &fakeRows{}, accounts)

	_, err := svc.GenerateReport(context.Background(), "run-1", userID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&accounts.increments))

	// Cache hit does not count as a new generation.
	_, err = svc.GenerateReport(context.Background(), "run-1", userID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&accounts.increments))
}

func TestGenerateReport_CounterFailureIsNonFatal(t *testing.T) {
	runs, userID := completedRun()
	accounts := &fakeAccountRepo{err: errors.New("accounts table locked")}
	svc := newTestReportService(runs, &fakeRows{}, accounts)

	report, err := svc.GenerateReport(context.Background(), "run-1", userID)

	require.NoError(t, err)
	assert.NotNil(t, report)
}

func TestInvalidateReport(t *testing.T) {
	runs, userID := completedRun()
	rows := &fakeRows{}
	svc := newTestReportService(runs, rows, nil)

	_, err := svc.GenerateReport(context.Background(), "run-1", userID)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.CacheStats().Total)

	svc.InvalidateReport("run-1")
	assert.Zero(t, svc.CacheStats().Total)

	_, err = svc.GenerateReport(context.Background(), "run-1", userID)
	require.NoError(t, err)
	assert.Equal(t, int32(14), atomic.LoadInt32(&rows.fetches), "invalidation forces a refetch")
}

func TestGenerateReport_SectionsReflectFetchedRows(t *testing.T) {
	runs, userID := completedRun()
	rows := &fakeRows{
		creatives: []*entities.AdCreative{
			creativeFor("Acme", 30),
			creativeFor("Acme", 10),
			creativeFor("Rival", 5),
		},
		gaps: []*entities.GapOpportunity{
			{Title: "Simpler onboarding", OpportunityScore: 90},
		},
	}
	svc := newTestReportService(runs, rows, nil)

	report, err := svc.GenerateReport(context.Background(), "run-1", userID)

	require.NoError(t, err)
	assert.Equal(t, 3, report.PaidMarket.TotalCreatives)
	require.NotEmpty(t, report.PaidMarket.TopAdvertisers)
	assert.Equal(t, "Acme", report.PaidMarket.TopAdvertisers[0].Name)
	require.Len(t, report.ExecutiveSummary.TopOpportunities, 1)
	assert.Equal(t, "Simpler onboarding", report.Gaps[0].Title)
	assert.Equal(t, "Simpler onboarding", report.ActionPlan.LandingPage.Hero)
}
