package services

import (
	"context"
	"sync"
	"time"

	"github.com/demandlens/backend/internal/adapters/cache"
	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/observability"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

const (
	// DefaultReportTTL is how long a generated report stays cached.
	DefaultReportTTL = 5 * time.Minute

	defaultFetchTimeout = 10 * time.Second
)

// ReportService assembles the nine-section report for a run
type ReportService struct {
	runs        repositories.RunRepository
	creatives   repositories.CreativeRepository
	mentions    repositories.MentionRepository
	extractions repositories.ExtractionRepository
	clusters    repositories.ClusterRepository
	gaps        repositories.GapRepository
	concepts    repositories.ConceptRepository
	appStore    repositories.AppStoreRepository
	accounts    repositories.AccountRepository

	cache        *cache.ReportCache
	metrics      *observability.Metrics
	fetchTimeout time.Duration
}

// ReportDeps bundles the repositories a ReportService reads from
type ReportDeps struct {
	Runs        repositories.RunRepository
	Creatives   repositories.CreativeRepository
	Mentions    repositories.MentionRepository
	Extractions repositories.ExtractionRepository
	Clusters    repositories.ClusterRepository
	Gaps        repositories.GapRepository
	Concepts    repositories.ConceptRepository
	AppStore    repositories.AppStoreRepository

	// Accounts is optional; when set, successful uncached generations bump
	// the owner's usage counter.
	Accounts repositories.AccountRepository

	// Metrics is optional; when set, cache hits and misses are counted.
	Metrics *observability.Metrics
}

// NewReportService creates a new report service. The cache is injected so
// tests can use a fresh instance per test.
func NewReportService(deps ReportDeps, reportCache *cache.ReportCache) *ReportService {
	return &ReportService{
		runs:         deps.Runs,
		creatives:    deps.Creatives,
		mentions:     deps.Mentions,
		extractions:  deps.Extractions,
		clusters:     deps.Clusters,
		gaps:         deps.Gaps,
		concepts:     deps.Concepts,
		appStore:     deps.AppStore,
		accounts:     deps.Accounts,
		cache:        reportCache,
		metrics:      deps.Metrics,
		fetchTimeout: defaultFetchTimeout,
	}
}

// rawRows holds the independently fetched row sets for one run
type rawRows struct {
	creatives   []*entities.AdCreative
	mentions    []*entities.RedditMention
	extractions []*entities.Extraction
	clusters    []*entities.Cluster
	gaps        []*entities.GapOpportunity
	concepts    []*entities.ConceptIdea
	appStore    []*entities.AppStoreResult
}

// GenerateReport builds the report for runID on behalf of userID.
//
// A cache hit returns immediately without re-verifying ownership: a run's
// owning project cannot change after creation, so the check done on the
// cache-miss path still holds for the lifetime of the entry. If ownership
// transfer is ever introduced, this shortcut needs revisiting.
func (s *ReportService) GenerateReport(ctx context.Context, runID, userID string) (*entities.ReportData, error) {
	ctx, span := observability.StartSpan(ctx, "report.generate")
	defer span.End()

	if entry, ok := s.cache.Get(runID); ok {
		observability.RecordCacheLookup(ctx, s.metrics, true)
		return entry.Data, nil
	}
	observability.RecordCacheLookup(ctx, s.metrics, false)

	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}

	project, err := s.runs.GetProject(ctx, run.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, apperrors.NewUnauthorizedError("run does not belong to caller")
	}

	rows, err := s.fetchAll(ctx, runID)
	if err != nil {
		return nil, err
	}

	report := s.assemble(run, rows)
	s.cache.SetWithTTL(runID, report, DefaultReportTTL)

	if s.accounts != nil {
		if err := s.accounts.IncrementReportsGenerated(ctx, userID); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("user_id", userID).
				Msg("failed to increment report usage counter")
		}
	}

	return report, nil
}

// InvalidateReport drops the cached report for a run
func (s *ReportService) InvalidateReport(runID string) {
	s.cache.Invalidate(runID)
}

// CacheStats exposes report cache occupancy
func (s *ReportService) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// fetchAll issues the seven row-set queries concurrently. The queries are
// read-only and scoped by an immutable run id, so no ordering is needed
// between them; the first failure aborts the whole fetch.
func (s *ReportService) fetchAll(ctx context.Context, runID string) (*rawRows, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	rows := &rawRows{}
	fetches := []func() error{
		func() (err error) { rows.creatives, err = s.creatives.ListByRun(ctx, runID); return },
		func() (err error) { rows.mentions, err = s.mentions.ListByRun(ctx, runID); return },
		func() (err error) { rows.extractions, err = s.extractions.ListByRun(ctx, runID); return },
		func() (err error) { rows.clusters, err = s.clusters.ListByRun(ctx, runID); return },
		func() (err error) { rows.gaps, err = s.gaps.ListByRun(ctx, runID); return },
		func() (err error) { rows.concepts, err = s.concepts.ListByRun(ctx, runID); return },
		func() (err error) { rows.appStore, err = s.appStore.ListByRun(ctx, runID); return },
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for _, fetch := range fetches {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				// The first failure wins; sibling fetches fail afterwards
				// with context errors from the cancel.
				once.Do(func() { firstErr = err })
				cancel()
			}
		}(fetch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("report data fetch timed out", err)
	}
	return rows, nil
}

func (s *ReportService) assemble(run *entities.Run, rows *rawRows) *entities.ReportData {
	return &entities.ReportData{
		RunID:            run.ID,
		NicheQuery:       run.NicheQuery,
		GeneratedAt:      time.Now(),
		Scores:           run.Scores,
		ExecutiveSummary: BuildExecutiveSummary(rows.gaps, rows.concepts),
		PaidMarket:       BuildPaidMarketSnapshot(rows.creatives, rows.clusters, rows.extractions),
		RedditInsights:   BuildRedditInsights(rows.mentions, rows.clusters),
		PlatformGap:      BuildPlatformGap(rows.appStore, rows.creatives, rows.concepts),
		Gaps:             BuildGapList(rows.gaps),
		Economics:        BuildModeledEconomics(rows.concepts),
		Buildability:     BuildBuildability(rows.concepts),
		UGCPack:          BuildUGCPack(),
		ActionPlan:       BuildActionPlan(rows.gaps, rows.clusters),
	}
}
