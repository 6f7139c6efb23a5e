package timeclock

import (
	"context"
	"io"
)

// PunchRepository loads punch records from a pipe-delimited export source.
type PunchRepository interface {
	// LoadPunches reads every well-formed punch row from src. Malformed rows
	// are skipped; a missing required column or an undecodable source returns
	// an error wrapping ErrPunchTableInvalid.
	LoadPunches(ctx context.Context, src io.Reader) ([]PunchRecord, error)
}
