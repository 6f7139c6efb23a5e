package payroll

import (
	"context"
	"io"
	"time"

	"github.com/drewboyeh/payroll-app/internal/domain/roster"
	"github.com/drewboyeh/payroll-app/internal/domain/timeclock"
)

// AnalysisInput is the pure-core entry: already-loaded tables plus an
// optional explicit window. A nil Employees or Stores slice means the roster
// was not supplied at all; a non-nil empty slice means it was supplied but
// matched nothing (the optional columns still participate in the result).
// Explicit Start/End must be supplied together and are used verbatim; when
// both are nil the default pay period is resolved from the current moment.
type AnalysisInput struct {
	Punches   []timeclock.PunchRecord
	Employees []roster.EmployeeRecord
	Stores    []roster.StoreRecord
	Start     *time.Time
	End       *time.Time
}

// RunRequest is the boundary entry: raw pipe-delimited sources to load
// before analysis. TimeClock is required; Employee and Store are optional
// enrichment rosters (nil = not supplied).
type RunRequest struct {
	TimeClock io.Reader
	Employee  io.Reader
	Store     io.Reader
	Start     *time.Time
	End       *time.Time
}

// AnalyzerService computes per-employee store hour proportions for a pay
// period. Implementations are stateless: every call recomputes from its
// inputs alone, so one instance is safe under concurrent requests.
type AnalyzerService interface {
	// ResolvePeriod returns the default 14-day pay period for a reference
	// date: the most recent Sunday strictly before the reference (a Sunday
	// reference steps back a full week) at 23:59:59, minus 13 days at
	// 00:00:00. Pure date arithmetic; never fails.
	ResolvePeriod(reference time.Time) Period

	// AnalyzePayPeriod runs the full pipeline over in-memory tables.
	// Returns ErrNoTimeData when the punch table is absent or empty; an
	// analysis with zero rows is the valid no-matching-data outcome.
	AnalyzePayPeriod(ctx context.Context, input AnalysisInput) (Analysis, error)

	// RunAnalysis loads each supplied source and then analyzes. Structural
	// load failures (undecodable source, missing required columns) are
	// returned as the table's domain sentinel with cause detail.
	RunAnalysis(ctx context.Context, req RunRequest) (Analysis, error)
}
