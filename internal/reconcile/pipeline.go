package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"rollmatch/internal/assign"
	"rollmatch/internal/config"
	"rollmatch/internal/enrollment"
	"rollmatch/internal/ingest"
	"rollmatch/internal/logging"
	"rollmatch/internal/match"
	"rollmatch/internal/records"
)

// Pipeline wires the reconciliation stages to the enrollment store and the
// configured matcher thresholds.
type Pipeline struct {
	store  *enrollment.Store
	logger *slog.Logger
	cfg    *config.Config
}

// New constructs a pipeline. A nil logger discards output.
func New(store *enrollment.Store, logger *slog.Logger, cfg *config.Config) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{store: store, logger: logger, cfg: cfg}
}

// RunResult is everything one import run surfaces to the caller: the
// suggestions for review, aggregate stats, advisory warnings, and any
// per-row errors. When RowErrors is non-empty the batch is blocked and
// Suggestions is empty.
type RunResult struct {
	Records     []*records.ExternalRecord
	Suggestions []match.Suggestion
	Summary     match.Summary
	Warnings    []string
	RowErrors   []error
	Dropped     int
}

// Blocked reports whether per-row errors prevented matching.
func (r *RunResult) Blocked() bool {
	return len(r.RowErrors) > 0
}

// Run executes ingest, validation, and matching for one attendance export.
func (p *Pipeline) Run(ctx context.Context, path string) (*RunResult, error) {
	table, err := ingest.ReadFile(path, p.cfg.DelimiterRune())
	if err != nil {
		return nil, err
	}
	p.logger.Info("file ingested",
		logging.String("path", path),
		logging.Int("columns", len(table.Headers)),
		logging.Int("rows", len(table.Rows)))

	mapping := ingest.MapHeaders(table.Headers)
	built := records.Build(table, mapping, records.BuildOptions{})
	result := &RunResult{
		Records:   built.Records,
		Warnings:  built.Warnings,
		RowErrors: built.RowErrors,
		Dropped:   built.Dropped,
	}

	p.logger.Info("rows validated",
		logging.Int("records", len(built.Records)),
		logging.Int("dropped", built.Dropped),
		logging.Int("warnings", len(built.Warnings)),
		logging.Int("row_errors", len(built.RowErrors)))

	if result.Blocked() {
		p.logger.Warn("matching blocked by row errors",
			logging.Int("row_errors", len(result.RowErrors)))
		return result, nil
	}

	known, err := p.store.ListPeople(ctx, p.cfg.Matching.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	opts := match.OptionsFromConfig(p.cfg.Matching)
	result.Suggestions = match.MatchAll(built.Records, known, opts)
	result.Summary = match.Summarize(result.Suggestions)

	p.logger.Info("matching complete",
		logging.Int("total", result.Summary.Total),
		logging.Int("exact", result.Summary.Exact),
		logging.Int("high", result.Summary.High),
		logging.Int("medium", result.Summary.Medium),
		logging.Int("low", result.Summary.Low),
		logging.Int("none", result.Summary.None),
		logging.Int("match_rate", result.Summary.MatchRate))

	return result, nil
}

// Resolver builds a review-session resolver over a run's suggestions and the
// current roster.
func (p *Pipeline) Resolver(ctx context.Context, result *RunResult) (*assign.Resolver, error) {
	known, err := p.store.ListPeople(ctx, p.cfg.Matching.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return assign.NewResolver(result.Suggestions, known), nil
}

// RosterImportResult reports a roster load.
type RosterImportResult struct {
	Added     int
	Skipped   int
	Warnings  []string
	RowErrors []error
	Dropped   int
}

// ImportRoster loads a roster export into the people table. Rows need both a
// name and a valid email to enroll; everything else is skipped and tallied.
func (p *Pipeline) ImportRoster(ctx context.Context, path string) (*RosterImportResult, error) {
	table, err := ingest.ReadFile(path, p.cfg.DelimiterRune())
	if err != nil {
		return nil, err
	}

	mapping := ingest.MapHeaders(table.Headers)
	built := records.Build(table, mapping, records.BuildOptions{RequireEmail: true})
	result := &RosterImportResult{
		Warnings:  built.Warnings,
		RowErrors: built.RowErrors,
		Dropped:   built.Dropped,
	}
	if len(built.RowErrors) > 0 {
		return result, nil
	}

	added, skipped, err := p.store.ImportRoster(ctx, built.Records)
	if err != nil {
		return nil, err
	}
	result.Added = added
	result.Skipped = skipped

	p.logger.Info("roster imported",
		logging.String("path", path),
		logging.Int("added", added),
		logging.Int("skipped", skipped))
	return result, nil
}

// CommitResult reports a finalized import.
type CommitResult struct {
	SessionID  string
	Written    int
	Resolved   []assign.Resolution
	Unresolved []string
}

// Commit seeds assignments from a run's suggestions, applies explicit
// selections on top in the order given (a later selection steals a contested
// person from an earlier one), finalizes, and records attendance. The caller
// should bound ctx with a timeout so a slow write cannot block review
// indefinitely; cancellation before the write simply discards the in-memory
// assignment. Every call opens a fresh session, so retrying a failed commit
// records a second session rather than resuming the first; the duplicate
// guard in the store applies within one session only.
func (p *Pipeline) Commit(ctx context.Context, path string, result *RunResult, selections []assign.Selection, verifiedBy string) (*CommitResult, error) {
	if result.Blocked() {
		return nil, fmt.Errorf("cannot commit: %d row error(s) pending correction", len(result.RowErrors))
	}

	resolver, err := p.Resolver(ctx, result)
	if err != nil {
		return nil, err
	}
	resolver.Seed()
	for _, selection := range selections {
		resolver.Select(selection.Key, selection.PersonID)
	}

	resolved, unresolved := resolver.Finalize()

	session, err := p.store.CreateSession(ctx, path)
	if err != nil {
		return nil, err
	}

	entries := make([]enrollment.AttendanceRecord, 0, len(resolved))
	for _, resolution := range resolved {
		entries = append(entries, enrollment.AttendanceRecord{
			PersonID:   resolution.PersonID,
			Status:     enrollment.StatusPresent,
			VerifiedBy: verifiedBy,
		})
	}
	written, err := p.store.RecordAttendance(ctx, session.ID, entries)
	if err != nil {
		return nil, err
	}

	p.logger.Info("attendance committed",
		logging.String("session_id", session.ID),
		logging.Int("written", written),
		logging.Int("unresolved", len(unresolved)))

	return &CommitResult{
		SessionID:  session.ID,
		Written:    written,
		Resolved:   resolved,
		Unresolved: unresolved,
	}, nil
}
