package report

import (
	"strings"
	"time"
)

// Format is a supported report export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat normalizes a user-supplied format string. An empty string
// defaults to CSV, matching the original report's behavior.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// FormatForFilename infers the format of a saved artifact from its
// extension. Anything that is not .xlsx serves as CSV.
func FormatForFilename(filename string) Format {
	if strings.HasSuffix(filename, ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// ContentType returns the MIME type to serve the format with.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// SavedReport is the metadata for a report artifact persisted through
// storage. Filename is unique per save (uuid-suffixed) and doubles as the
// handle for download and delete.
type SavedReport struct {
	ID          string
	Filename    string
	Format      Format
	RowCount    int
	URL         string
	GeneratedAt time.Time
}
