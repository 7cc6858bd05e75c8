// Package scout orchestrates the async enrichment pipeline: external
// search, upsert-by-id merge, sequential per-job analysis with pacing, and
// on-demand kit generation. External calls go through the rate-limit
// Retrier; per-job failures never abort a batch.
package scout

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"jobscout/dashboard-service/internal/identity"
	"jobscout/dashboard-service/internal/kanban"
)

// Posting is a raw candidate returned by the external search, before an id
// is resolved.
type Posting struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	URL        string `json:"url"`
	Summary    string `json:"summary"`
	Source     string `json:"source"`
	PostedDate string `json:"postedDate"`
}

// Searcher finds candidate postings for a role/location query.
type Searcher interface {
	Search(ctx context.Context, role, location string) ([]Posting, error)
}

// Analyzer produces the LLM scoring for one job.
type Analyzer interface {
	Analyze(ctx context.Context, job kanban.Job) (*kanban.JobAnalysis, error)
}

// KitGenerator produces an extended application strategy for an analyzed
// job.
type KitGenerator interface {
	GenerateKit(ctx context.Context, job kanban.Job, analysis kanban.JobAnalysis) (string, error)
}

// Store is the slice of the job collection the pipeline writes through.
// *kanban.Service satisfies it.
type Store interface {
	Get(ctx context.Context, id string) (*kanban.Job, error)
	Upsert(ctx context.Context, job kanban.Job) (*kanban.Job, error)
	SetAnalysis(ctx context.Context, id string, a *kanban.JobAnalysis) error
	SetStrategy(ctx context.Context, id, strategy string) error
}

// Config wires a Pipeline.
type Config struct {
	Store     Store
	Searcher  Searcher
	Analyzer  Analyzer
	Kits      KitGenerator
	Retrier   *Retrier
	PaceDelay time.Duration // pause between analyses within a batch
	Logger    *slog.Logger
}

// Pipeline runs discovery cycles. Jobs within a batch are analyzed
// sequentially in discovery order; the pace delay bounds the request rate
// against the external API.
type Pipeline struct {
	store    Store
	searcher Searcher
	analyzer Analyzer
	kits     KitGenerator
	retrier  *Retrier
	pace     time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *slog.Logger
	now      func() time.Time
}

// NewPipeline constructs a Pipeline. A nil Retrier gets the default policy.
func NewPipeline(cfg Config) *Pipeline {
	retrier := cfg.Retrier
	if retrier == nil {
		retrier = NewRetrier()
	}
	return &Pipeline{
		store:    cfg.Store,
		searcher: cfg.Searcher,
		analyzer: cfg.Analyzer,
		kits:     cfg.Kits,
		retrier:  retrier,
		pace:     cfg.PaceDelay,
		sleep:    sleepCtx,
		logger:   cfg.Logger,
		now:      time.Now,
	}
}

// CycleReport summarizes one discovery cycle.
type CycleReport struct {
	RunID      string `json:"runId"`
	Discovered int    `json:"discovered"`
	Upserted   int    `json:"upserted"`
	Queued     int    `json:"queued"`
	Analyzed   int    `json:"analyzed"`
	Failed     int    `json:"failed"`
}

// RunCycle executes one full discovery cycle: search, merge every candidate
// by its resolved id, then analyze the jobs that still lack analysis. A
// failed search degrades to an empty cycle instead of surfacing an error.
func (p *Pipeline) RunCycle(ctx context.Context, role, location string) CycleReport {
	report := CycleReport{RunID: uuid.New().String()}

	p.logger.Info("scout cycle started",
		slog.String("run_id", report.RunID),
		slog.String("role", role),
		slog.String("location", location),
	)

	var postings []Posting
	err := p.retrier.Do(ctx, func(ctx context.Context) error {
		var searchErr error
		postings, searchErr = p.searcher.Search(ctx, role, location)
		return searchErr
	})
	if err != nil {
		p.logger.Error("scout search failed",
			slog.String("run_id", report.RunID),
			slog.String("error", err.Error()),
		)
		return report
	}
	report.Discovered = len(postings)

	scoutedAt := p.now().UnixMilli()
	queue := make([]kanban.Job, 0, len(postings))
	for _, posting := range postings {
		job := kanban.Job{
			ID:         identity.ResolveID(posting.Title, posting.Company),
			Title:      posting.Title,
			Company:    posting.Company,
			Location:   posting.Location,
			URL:        posting.URL,
			Summary:    posting.Summary,
			Source:     posting.Source,
			PostedDate: posting.PostedDate,
			Status:     kanban.StatusNew,
			ScoutedAt:  scoutedAt,
		}
		merged, err := p.store.Upsert(ctx, job)
		if err != nil {
			p.logger.Error("scout upsert failed",
				slog.String("job_id", job.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Upserted++
		if merged.Analysis == nil {
			queue = append(queue, *merged)
		}
	}
	report.Queued = len(queue)

	// Sequential analysis in discovery order. The batch cannot be aborted
	// mid-job; cancellation takes effect between jobs.
	for i, job := range queue {
		if i > 0 && p.pace > 0 {
			if err := p.sleep(ctx, p.pace); err != nil {
				break
			}
		}
		if ctx.Err() != nil {
			break
		}
		if p.analyzeOne(ctx, job) {
			report.Analyzed++
		} else {
			report.Failed++
		}
	}

	p.logger.Info("scout cycle complete",
		slog.String("run_id", report.RunID),
		slog.Int("discovered", report.Discovered),
		slog.Int("upserted", report.Upserted),
		slog.Int("analyzed", report.Analyzed),
		slog.Int("failed", report.Failed),
	)
	return report
}

// analyzeOne scores a single job and persists the result. When the call
// fails for good, the job settles with the default failure analysis so the
// dashboard keeps rendering; the batch continues either way.
func (p *Pipeline) analyzeOne(ctx context.Context, job kanban.Job) bool {
	var analysis *kanban.JobAnalysis
	err := p.retrier.Do(ctx, func(ctx context.Context) error {
		var aErr error
		analysis, aErr = p.analyzer.Analyze(ctx, job)
		return aErr
	})
	if err != nil {
		p.logger.Error("job analysis failed",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()),
		)
		analysis = kanban.FailedAnalysis()
	}

	if err := p.store.SetAnalysis(ctx, job.ID, analysis); err != nil {
		p.logger.Error("persist analysis failed",
			slog.String("job_id", job.ID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return err == nil
}

// AnalyzeJob re-scores one job on demand (manual re-analyze) and returns
// the refreshed record. Unlike the batch path, a failed call surfaces as
// an error instead of settling with the failure placeholder.
func (p *Pipeline) AnalyzeJob(ctx context.Context, id string) (*kanban.Job, error) {
	job, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var analysis *kanban.JobAnalysis
	err = p.retrier.Do(ctx, func(ctx context.Context) error {
		var aErr error
		analysis, aErr = p.analyzer.Analyze(ctx, *job)
		return aErr
	})
	if err != nil {
		return nil, err
	}

	if err := p.store.SetAnalysis(ctx, id, analysis); err != nil {
		return nil, err
	}
	return p.store.Get(ctx, id)
}

// GenerateKit produces the extended strategy for an analyzed job and
// persists it as a targeted partial update.
func (p *Pipeline) GenerateKit(ctx context.Context, id string) (string, error) {
	job, err := p.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if job.Analysis == nil {
		return "", &kanban.ValidationError{Msg: "kit generation needs an analyzed job"}
	}

	var strategy string
	err = p.retrier.Do(ctx, func(ctx context.Context) error {
		var kitErr error
		strategy, kitErr = p.kits.GenerateKit(ctx, *job, *job.Analysis)
		return kitErr
	})
	if err != nil {
		return "", err
	}

	if err := p.store.SetStrategy(ctx, id, strategy); err != nil {
		return "", err
	}
	return strategy, nil
}
