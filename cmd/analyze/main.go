package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
	"github.com/drewboyeh/payroll-app/internal/domain/report"
	"github.com/drewboyeh/payroll-app/internal/pkg/validator"
	"github.com/drewboyeh/payroll-app/internal/repository/pipetext"
	payrollService "github.com/drewboyeh/payroll-app/internal/service/payroll"
	reportService "github.com/drewboyeh/payroll-app/internal/service/report"
)

// analyze runs one pay-period analysis from the command line and writes the
// report to a file or stdout. An analysis that matches no shifts prints a
// notice and exits 0 without writing anything; malformed input exits 1.
func main() {
	timeClockPath := flag.String("time-clock", "", "pipe-delimited time clock export (required)")
	employeePath := flag.String("employee", "", "pipe-delimited employee roster (optional)")
	storePath := flag.String("store", "", "pipe-delimited store roster (optional)")
	startDate := flag.String("start", "", "explicit period start (used verbatim; requires -end)")
	endDate := flag.String("end", "", "explicit period end (used verbatim; requires -start)")
	outPath := flag.String("out", "", "output path, or - for stdout (default payroll_proportions.<format>)")
	formatName := flag.String("format", "csv", "report format: csv or xlsx")
	flag.Parse()

	if err := run(*timeClockPath, *employeePath, *storePath, *startDate, *endDate, *outPath, *formatName); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(timeClockPath, employeePath, storePath, startDate, endDate, outPath, formatName string) error {
	if timeClockPath == "" {
		return fmt.Errorf("-time-clock is required")
	}

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return fmt.Errorf("unsupported format %q (use csv or xlsx)", formatName)
	}

	start, end, err := parseWindow(startDate, endDate)
	if err != nil {
		return err
	}

	timeClock, err := os.Open(timeClockPath)
	if err != nil {
		return fmt.Errorf("failed to open time clock file: %w", err)
	}
	defer timeClock.Close()

	req := payroll.RunRequest{
		TimeClock: timeClock,
		Start:     start,
		End:       end,
	}

	if employeePath != "" {
		employee, err := os.Open(employeePath)
		if err != nil {
			return fmt.Errorf("failed to open employee file: %w", err)
		}
		defer employee.Close()
		req.Employee = employee
	}

	if storePath != "" {
		store, err := os.Open(storePath)
		if err != nil {
			return fmt.Errorf("failed to open store file: %w", err)
		}
		defer store.Close()
		req.Store = store
	}

	analyzer := payrollService.NewAnalyzerService(
		pipetext.NewPunchRepository(),
		pipetext.NewEmployeeRepository(),
		pipetext.NewStoreRepository(),
	)

	ctx := context.Background()
	analysis, err := analyzer.RunAnalysis(ctx, req)
	if err != nil {
		return err
	}

	const timeFormat = "2006-01-02 15:04:05"
	fmt.Printf("Pay period: %s to %s\n",
		analysis.Period.Start.Format(timeFormat),
		analysis.Period.End.Format(timeFormat))

	if analysis.RowCount() == 0 {
		fmt.Println("No shifts found for the requested period")
		return nil
	}

	fmt.Printf("Employees: %d across %d stores\n", analysis.RowCount(), analysis.StoreCount())
	if missing := analysis.MissingNameCount(); missing > 0 {
		fmt.Printf("Note: %d employees missing from the roster\n", missing)
	}

	var out io.Writer
	if outPath == "-" {
		out = os.Stdout
	} else {
		if outPath == "" {
			outPath = fmt.Sprintf("payroll_proportions.%s", format.Ext())
		}
		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := reportService.WriteAnalysis(analysis, format, out); err != nil {
		return err
	}

	if outPath != "-" {
		fmt.Println("Report written to", outPath)
	}
	return nil
}

// parseWindow parses the explicit window flags. Both sides must be supplied
// together; the values are used verbatim with no day-boundary snapping.
func parseWindow(startDate, endDate string) (*time.Time, *time.Time, error) {
	if (startDate == "") != (endDate == "") {
		return nil, nil, fmt.Errorf("-start and -end must be supplied together")
	}
	if startDate == "" {
		return nil, nil, nil
	}

	start, ok := validator.ParseClockTimestamp(startDate)
	if !ok {
		return nil, nil, fmt.Errorf("invalid -start date: %s", startDate)
	}
	end, ok := validator.ParseClockTimestamp(endDate)
	if !ok {
		return nil, nil, fmt.Errorf("invalid -end date: %s", endDate)
	}
	return &start, &end, nil
}
