package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
	"github.com/drewboyeh/payroll-app/internal/domain/report"
	"github.com/drewboyeh/payroll-app/internal/handler/http/response"
	"github.com/drewboyeh/payroll-app/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Analysis
	GetPeriod(w http.ResponseWriter, r *http.Request)
	Analyze(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)

	// Saved reports
	SaveReport(w http.ResponseWriter, r *http.Request)
	DownloadReport(w http.ResponseWriter, r *http.Request)
	DeleteReport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	analyzerService payroll.AnalyzerService
	reportService   report.ReportService
	maxUploadBytes  int64
}

func NewPayrollHandler(analyzerService payroll.AnalyzerService, reportService report.ReportService, maxUploadBytes int64) PayrollHandler {
	return &payrollHandlerImpl{
		analyzerService: analyzerService,
		reportService:   reportService,
		maxUploadBytes:  maxUploadBytes,
	}
}

const emptyResultMessage = "No shifts found for the requested period"

// GetPeriod echoes the default pay period for an optional ?date= reference.
func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	reference := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.ParseClockTimestamp(raw)
		if !ok {
			response.ValidationError(w, map[string]string{
				"date": "date must be a valid date or timestamp",
			})
			return
		}
		reference = parsed
	}

	period := h.analyzerService.ResolvePeriod(reference)
	response.Success(w, payroll.NewPeriodResponse(period))
}

// Analyze runs the full analysis over the uploaded tables and returns the
// result rows as JSON. An analysis matching no shifts is a 200 with zero
// rows, never an error.
func (h *payrollHandlerImpl) Analyze(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.runFromForm(w, r)
	if !ok {
		return
	}

	if analysis.RowCount() == 0 {
		response.SuccessWithMessage(w, emptyResultMessage, payroll.NewAnalysisResponse(analysis))
		return
	}

	response.Success(w, payroll.NewAnalysisResponse(analysis))
}

// Export runs the analysis and streams the report as a download in the
// requested ?format= (csv by default).
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	analysis, ok := h.runFromForm(w, r)
	if !ok {
		return
	}

	if analysis.RowCount() == 0 {
		response.SuccessWithMessage(w, emptyResultMessage, payroll.NewAnalysisResponse(analysis))
		return
	}

	// Serialize before touching headers so a failure can still become a
	// JSON error response
	var buf bytes.Buffer
	if err := h.reportService.Write(r.Context(), analysis, format, &buf); err != nil {
		slog.Error("failed to write report", "format", format, "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payroll_proportions.%s", format.Ext())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, &buf); err != nil {
		slog.Error("failed to stream report", "error", err)
	}
}

// SaveReport runs the analysis and persists the report as a named artifact.
func (h *payrollHandlerImpl) SaveReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	analysis, ok := h.runFromForm(w, r)
	if !ok {
		return
	}

	if analysis.RowCount() == 0 {
		response.SuccessWithMessage(w, emptyResultMessage, payroll.NewAnalysisResponse(analysis))
		return
	}

	saved, err := h.reportService.Save(r.Context(), analysis, format)
	if err != nil {
		slog.Error("failed to save report", "format", format, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report saved", report.NewSavedReportResponse(saved))
}

func (h *payrollHandlerImpl) DownloadReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	file, err := h.reportService.Open(r.Context(), filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", report.FormatForFilename(filename).ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("failed to stream saved report", "filename", filename, "error", err)
	}
}

func (h *payrollHandlerImpl) DeleteReport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := h.reportService.Delete(r.Context(), filename); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report deleted", nil)
}

// runFromForm parses the multipart upload, runs the analysis, and writes
// the error response itself when anything fails; the second return value
// reports whether the caller may proceed.
func (h *payrollHandlerImpl) runFromForm(w http.ResponseWriter, r *http.Request) (payroll.Analysis, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return payroll.Analysis{}, false
	}

	timeClock, _, err := r.FormFile("time_clock")
	if err != nil {
		response.ValidationError(w, map[string]string{
			"time_clock": "time clock file is required",
		})
		return payroll.Analysis{}, false
	}
	defer timeClock.Close()

	employee := optionalFormFile(r, "employee")
	if employee != nil {
		defer employee.Close()
	}
	store := optionalFormFile(r, "store")
	if store != nil {
		defer store.Close()
	}

	window := payroll.AnalyzeRequest{
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
	}
	if err := window.Validate(); err != nil {
		response.HandleError(w, err)
		return payroll.Analysis{}, false
	}
	start, end := window.Window()

	req := payroll.RunRequest{
		TimeClock: timeClock,
		Start:     start,
		End:       end,
	}
	// A nil reader marks the roster as not supplied; the typed nil from a
	// missing form file must not leak into the interface field
	if employee != nil {
		req.Employee = employee
	}
	if store != nil {
		req.Store = store
	}

	analysis, err := h.analyzerService.RunAnalysis(r.Context(), req)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		response.HandleError(w, err)
		return payroll.Analysis{}, false
	}

	return analysis, true
}

func optionalFormFile(r *http.Request, field string) multipart.File {
	file, _, err := r.FormFile(field)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			slog.Error("failed to read form file", "field", field, "error", err)
		}
		return nil
	}
	return file
}
