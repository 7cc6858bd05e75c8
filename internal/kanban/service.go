// Job collection persistence and mutations. The Service is
// transport-agnostic: it is used by the HTTP handlers (api package) and by
// the enrichment pipeline (scout package).
package kanban

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Redis channels carrying change events for dashboard subscribers. The
// collection is last-write-wins: the row returned by each mutation is
// authoritative, subscribers re-read on every event.
const (
	EventCardMoved  = "EVENT_CARD_MOVED"
	EventJobChanged = "EVENT_JOB_CHANGED"
	EventJobDeleted = "EVENT_JOB_DELETED"
)

// AppliedDateFormat is the display format stamped on transition to applied.
const AppliedDateFormat = "2 Jan 2006"

// Service encapsulates all job collection logic.
type Service struct {
	pool   *pgxpool.Pool
	rdb    *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client, logger *slog.Logger) *Service {
	return &Service{pool: pool, rdb: rdb, logger: logger, now: time.Now}
}

const jobColumns = `id, title, company, location, url, summary, source, status,
	posted_date, scouted_at, applied_date, COALESCE(seniority_score, ''),
	interview_date, COALESCE(interview_format, ''), stage_notes, notes,
	tailored_cv, analysis`

func scanJob(row pgx.Row) (Job, error) {
	var (
		j        Job
		status   string
		senior   string
		format   string
		rawWhole []byte
	)
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.URL, &j.Summary,
		&j.Source, &status, &j.PostedDate, &j.ScoutedAt, &j.AppliedDate,
		&senior, &j.InterviewDate, &format, &j.StageNotes, &j.Notes,
		&j.TailoredCV, &rawWhole,
	)
	if err != nil {
		return Job{}, err
	}
	j.Status = NormalizeStatus(Status(status))
	j.SeniorityScore = Seniority(senior)
	j.InterviewFormat = InterviewFormat(format)
	if len(rawWhole) > 0 {
		var a JobAnalysis
		if err := json.Unmarshal(rawWhole, &a); err != nil {
			return Job{}, fmt.Errorf("decode analysis for %s: %w", j.ID, err)
		}
		j.Analysis = &a
	}
	return j, nil
}

// List returns the whole collection, newest scouting first. The dashboard
// view engines (views, stats) work over this snapshot.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY scouted_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("list jobs scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Get returns a single job by id.
func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return &j, nil
}

// Upsert merges a scouted posting into the collection by its resolved id.
// Re-discovering a posting refreshes the descriptive fields and scouted_at
// while status, notes, analysis and the tailored CV survive.
func (s *Service) Upsert(ctx context.Context, job Job) (*Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, company, location, url, summary, source,
		                   status, posted_date, scouted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE
		 SET title       = EXCLUDED.title,
		     company     = EXCLUDED.company,
		     location    = EXCLUDED.location,
		     url         = EXCLUDED.url,
		     summary     = EXCLUDED.summary,
		     source      = EXCLUDED.source,
		     posted_date = EXCLUDED.posted_date,
		     scouted_at  = EXCLUDED.scouted_at,
		     updated_at  = NOW()
		 RETURNING `+jobColumns,
		job.ID, job.Title, job.Company, job.Location, job.URL, job.Summary,
		job.Source, string(NormalizeStatus(job.Status)), job.PostedDate, job.ScoutedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert job %s: %w", job.ID, err)
	}
	s.publish(ctx, EventJobChanged, map[string]string{"jobId": j.ID, "action": "upsert"})
	return &j, nil
}

// Create inserts a manually entered job. The caller runs the Duplicate
// Guard first; a primary-key collision still maps to ErrDuplicate.
func (s *Service) Create(ctx context.Context, job Job) (*Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, company, location, url, summary, source,
		                   status, posted_date, scouted_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO NOTHING
		 RETURNING `+jobColumns,
		job.ID, job.Title, job.Company, job.Location, job.URL, job.Summary,
		job.Source, string(NormalizeStatus(job.Status)), job.PostedDate,
		job.ScoutedAt, job.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create job %s: %w", job.ID, err)
	}
	s.publish(ctx, EventJobChanged, map[string]string{"jobId": j.ID, "action": "create"})
	return &j, nil
}

// SetStatus moves a job to a new pipeline status (drag or manual select).
// Transitioning to applied stamps the applied date with the current date.
func (s *Service) SetStatus(ctx context.Context, id string, to Status) (*Job, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	appliedDate := current.AppliedDate
	if to == StatusApplied {
		appliedDate = s.now().Format(AppliedDateFormat)
	}

	j, err := scanJob(s.pool.QueryRow(ctx,
		`UPDATE jobs
		 SET status = $1, applied_date = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING `+jobColumns,
		string(to), appliedDate, id,
	))
	if err != nil {
		return nil, fmt.Errorf("set status %s: %w", id, err)
	}

	s.publish(ctx, EventCardMoved, map[string]string{
		"jobId": id,
		"from":  string(current.Status),
		"to":    string(to),
	})
	return &j, nil
}

// ToggleSave flips a job between new and saved (archived jobs unarchive
// back to new).
func (s *Service) ToggleSave(ctx context.Context, id string) (*Job, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	to, err := ToggleSaveTarget(current.Status)
	if err != nil {
		return nil, err
	}
	return s.SetStatus(ctx, id, to)
}

// Delete archives a job, or permanently removes an already-archived job
// when confirm is set. Hard deletion without confirmation is rejected.
func (s *Service) Delete(ctx context.Context, id string, confirm bool) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !CanHardDelete(current.Status) {
		_, err := s.SetStatus(ctx, id, StatusArchived)
		return err
	}

	if !confirm {
		return &ValidationError{Msg: "permanent deletion requires confirmation"}
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	s.publish(ctx, EventJobDeleted, map[string]string{"jobId": id})
	return nil
}

// BulkArchive moves every listed job to archived and returns how many rows
// changed.
func (s *Service) BulkArchive(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		string(StatusArchived), ids)
	if err != nil {
		return 0, fmt.Errorf("bulk archive: %w", err)
	}
	n := int(tag.RowsAffected())
	s.publish(ctx, EventJobChanged, map[string]string{
		"action": "bulk-archive",
		"count":  fmt.Sprintf("%d", n),
	})
	return n, nil
}

// BulkDelete permanently removes every listed job. It is confirm-gated and
// returns the removed count so the caller can show it to the user.
func (s *Service) BulkDelete(ctx context.Context, ids []string, confirm bool) (int, error) {
	if !confirm {
		return 0, &ValidationError{Msg: "bulk deletion requires confirmation"}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete: %w", err)
	}
	n := int(tag.RowsAffected())
	s.publish(ctx, EventJobDeleted, map[string]string{
		"action": "bulk-delete",
		"count":  fmt.Sprintf("%d", n),
	})
	return n, nil
}

// ApplyPatch applies a partial user edit. Status changes go through
// SetStatus so the applied-date stamping stays in one place.
func (s *Service) ApplyPatch(ctx context.Context, id string, patch JobPatch) (*Job, error) {
	if patch.Status != nil {
		to, err := ParseStatus(*patch.Status)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		if _, err := s.SetStatus(ctx, id, to); err != nil {
			return nil, err
		}
	}

	set := make([]string, 0, 10)
	args := make([]any, 0, 11)
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Company != nil {
		add("company", *patch.Company)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Summary != nil {
		add("summary", *patch.Summary)
	}
	if patch.PostedDate != nil {
		add("posted_date", *patch.PostedDate)
	}
	if patch.SeniorityScore != nil {
		sn, err := ParseSeniority(*patch.SeniorityScore)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		add("seniority_score", nullable(string(sn)))
	}
	if patch.InterviewDate != nil {
		add("interview_date", *patch.InterviewDate)
	}
	if patch.InterviewFormat != nil {
		f, err := ParseInterviewFormat(*patch.InterviewFormat)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		add("interview_format", nullable(string(f)))
	}
	if patch.StageNotes != nil {
		add("stage_notes", *patch.StageNotes)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}

	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	args = append(args, id)
	j, err := scanJob(s.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE jobs SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
			strings.Join(set, ", "), len(args), jobColumns),
		args...,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patch job %s: %w", id, err)
	}
	s.publish(ctx, EventJobChanged, map[string]string{"jobId": id, "action": "edit"})
	return &j, nil
}

// SetAnalysis writes a complete analysis document as a targeted partial
// update. The all-or-nothing invariant holds: the whole JSONB value is
// replaced in one statement.
func (s *Service) SetAnalysis(ctx context.Context, id string, a *JobAnalysis) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET analysis = $1::jsonb, updated_at = NOW() WHERE id = $2`,
		string(raw), id)
	if err != nil {
		return fmt.Errorf("set analysis %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	s.publish(ctx, EventJobChanged, map[string]string{"jobId": id, "action": "analysis"})
	return nil
}

// SetStrategy updates only the strategy field inside an existing analysis
// (kit generation). Jobs without analysis are rejected.
func (s *Service) SetStrategy(ctx context.Context, id, strategy string) error {
	raw, err := json.Marshal(strategy)
	if err != nil {
		return fmt.Errorf("encode strategy: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs
		 SET analysis = jsonb_set(analysis, '{strategy}', $1::jsonb),
		     updated_at = NOW()
		 WHERE id = $2 AND analysis IS NOT NULL`,
		string(raw), id)
	if err != nil {
		return fmt.Errorf("set strategy %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &ValidationError{Msg: "kit generation needs an analyzed job"}
	}
	s.publish(ctx, EventJobChanged, map[string]string{"jobId": id, "action": "kit"})
	return nil
}

// SetTailoredCV stores the job-scoped résumé variant.
func (s *Service) SetTailoredCV(ctx context.Context, id, cv string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET tailored_cv = $1, updated_at = NOW() WHERE id = $2`,
		cv, id)
	if err != nil {
		return fmt.Errorf("set tailored cv %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	s.publish(ctx, EventJobChanged, map[string]string{"jobId": id, "action": "tailor"})
	return nil
}

// publish emits a change event for dashboard subscribers (non-fatal).
func (s *Service) publish(ctx context.Context, channel string, payload map[string]string) {
	if s.rdb == nil {
		return
	}
	payload["type"] = channel
	event, _ := json.Marshal(payload)
	if err := s.rdb.Publish(ctx, channel, event).Err(); err != nil {
		s.logger.Warn("publish event failed",
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
	}
}

// nullable maps the empty string to SQL NULL for optional enum columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
