package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
	"github.com/drewboyeh/payroll-app/internal/domain/report"
	"github.com/drewboyeh/payroll-app/internal/pkg/storage"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const reportBaseName = "payroll_proportions"

type ReportServiceImpl struct {
	storage storage.FileStorage
}

func NewReportService(storage storage.FileStorage) report.ReportService {
	return &ReportServiceImpl{storage: storage}
}

func (s *ReportServiceImpl) Write(ctx context.Context, analysis payroll.Analysis, format report.Format, w io.Writer) error {
	return WriteAnalysis(analysis, format, w)
}

// WriteAnalysis serializes an analysis to w in the given format. It carries
// no storage dependency, so one-shot callers can stream a report without
// constructing the full service.
func WriteAnalysis(analysis payroll.Analysis, format report.Format, w io.Writer) error {
	if len(analysis.Rows) == 0 {
		return report.ErrNothingToExport
	}

	switch format {
	case report.FormatCSV:
		return writeCSV(analysis, w)
	case report.FormatXLSX:
		return writeXLSX(analysis, w)
	default:
		return report.ErrUnsupportedFormat
	}
}

func (s *ReportServiceImpl) Save(ctx context.Context, analysis payroll.Analysis, format report.Format) (report.SavedReport, error) {
	var buf bytes.Buffer
	if err := s.Write(ctx, analysis, format, &buf); err != nil {
		return report.SavedReport{}, err
	}

	// Unique filename per save
	id := uuid.New().String()
	filename := fmt.Sprintf("%s-%s.%s", reportBaseName, id, format.Ext())

	path, err := s.storage.Upload(ctx, &buf, filename, format.ContentType())
	if err != nil {
		return report.SavedReport{}, fmt.Errorf("failed to save report: %w", err)
	}

	url, err := s.storage.GetURL(ctx, path, 0)
	if err != nil {
		return report.SavedReport{}, fmt.Errorf("failed to resolve report URL: %w", err)
	}

	return report.SavedReport{
		ID:          id,
		Filename:    filename,
		Format:      format,
		RowCount:    analysis.RowCount(),
		URL:         url,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *ReportServiceImpl) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	exists, err := s.storage.Exists(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to check report: %w", err)
	}
	if !exists {
		return nil, report.ErrReportNotFound
	}

	file, err := s.storage.Download(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	return file, nil
}

func (s *ReportServiceImpl) Delete(ctx context.Context, filename string) error {
	exists, err := s.storage.Exists(ctx, filename)
	if err != nil {
		return fmt.Errorf("failed to check report: %w", err)
	}
	if !exists {
		return report.ErrReportNotFound
	}

	if err := s.storage.Delete(ctx, filename); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

// columns returns the header in fixed order, with the optional roster
// columns present only when their roster participated in the analysis.
func columns(analysis payroll.Analysis) []string {
	cols := []string{"Store_ID"}
	if analysis.StoreDetailsJoined {
		cols = append(cols, "Store_Number", "Store_Name")
	}
	cols = append(cols, "Employee_ID")
	if analysis.EmployeeNamesJoined {
		cols = append(cols, "First_Name", "Last_Name")
	}
	cols = append(cols, "Hours_Worked", "Total_Store_Hours", "Hours_Proportion", "Hours_Percentage")
	return cols
}

// csvValues renders one result row in the same order as columns. Missing
// join values become empty cells. Hour columns round to one decimal at
// presentation; proportion and percentage keep full precision.
func csvValues(analysis payroll.Analysis, row payroll.ResultRow) []string {
	values := []string{row.StoreID}
	if analysis.StoreDetailsJoined {
		values = append(values, deref(row.StoreNumber), deref(row.StoreName))
	}
	values = append(values, row.EmployeeID)
	if analysis.EmployeeNamesJoined {
		values = append(values, deref(row.FirstName), deref(row.LastName))
	}
	values = append(values,
		formatHours(row.HoursWorked),
		formatHours(row.TotalStoreHours),
		formatFull(row.HoursProportion),
		formatFull(row.HoursPercentage),
	)
	return values
}

// xlsxValues renders one result row with native types: strings for the
// identity and name columns, float64 at full precision for the numeric
// ones. Rounding is a text-presentation concern and stays in the CSV path.
func xlsxValues(analysis payroll.Analysis, row payroll.ResultRow) []interface{} {
	values := []interface{}{row.StoreID}
	if analysis.StoreDetailsJoined {
		values = append(values, deref(row.StoreNumber), deref(row.StoreName))
	}
	values = append(values, row.EmployeeID)
	if analysis.EmployeeNamesJoined {
		values = append(values, deref(row.FirstName), deref(row.LastName))
	}
	values = append(values,
		row.HoursWorked,
		row.TotalStoreHours,
		row.HoursProportion,
		row.HoursPercentage,
	)
	return values
}

func writeCSV(analysis payroll.Analysis, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns(analysis)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range analysis.Rows {
		if err := writer.Write(csvValues(analysis, row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeXLSX(analysis payroll.Analysis, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, name := range columns(analysis) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, row := range analysis.Rows {
		for colIdx, value := range xlsxValues(analysis, row) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatFull(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
