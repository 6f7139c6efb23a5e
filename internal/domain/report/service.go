package report

import (
	"context"
	"io"

	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
)

// ReportService defines the interface for report export and persistence.
// Writing to a stream and saving to storage are deliberately separate
// operations so callers choose the sink, not the exporter.
type ReportService interface {
	// Write serializes the analysis to w in the given format. Returns
	// ErrNothingToExport when the analysis has no rows.
	Write(ctx context.Context, analysis payroll.Analysis, format Format, w io.Writer) error

	// Save serializes the analysis and persists it as a named artifact,
	// returning its metadata.
	Save(ctx context.Context, analysis payroll.Analysis, format Format) (SavedReport, error)

	// Open streams a previously saved artifact. Returns ErrReportNotFound
	// when no artifact has that filename.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)

	// Delete removes a previously saved artifact.
	Delete(ctx context.Context, filename string) error
}
