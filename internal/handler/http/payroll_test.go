package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drewboyeh/payroll-app/internal/config"
	"github.com/drewboyeh/payroll-app/internal/domain/payroll"
	"github.com/drewboyeh/payroll-app/internal/domain/report"
	"github.com/drewboyeh/payroll-app/internal/pkg/storage"
	"github.com/drewboyeh/payroll-app/internal/repository/pipetext"
	payrollService "github.com/drewboyeh/payroll-app/internal/service/payroll"
	reportService "github.com/drewboyeh/payroll-app/internal/service/report"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeClockUpload = "Store_ID|Employee_ID|Start|End\n" +
		"1|A|2024-01-01 08:00:00|2024-01-01 12:00:00\n" +
		"1|B|2024-01-01 08:00:00|2024-01-01 16:00:00\n"
	employeeUpload = "Employee_ID|First_Name|Last_Name|Store_ID\n" +
		"A|Ana|Lopez|1\n" +
		"B|Ben|Ruiz|1\n"
	storeUpload = "Store_ID|Store_Number|Store_Name\n" +
		"1|001|Downtown\n"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:        8080,
			Env:         "test",
			FrontendURL: "http://localhost:3000",
		},
		Upload: config.UploadConfig{MaxMB: 8},
	}

	reportStorage, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/reports")
	require.NoError(t, err)

	analyzerSvc := payrollService.NewAnalyzerService(
		pipetext.NewPunchRepository(),
		pipetext.NewEmployeeRepository(),
		pipetext.NewStoreRepository(),
	)
	reportSvc := reportService.NewReportService(reportStorage)
	handler := NewPayrollHandler(analyzerSvc, reportSvc, cfg.MaxUploadBytes())

	return NewRouter(cfg, handler)
}

// analysisForm builds the multipart upload for the analyze endpoints.
func analysisForm(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".txt")
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func postForm(t *testing.T, router *chi.Mux, url string, files, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := analysisForm(t, files, fields)
	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

var defaultWindow = map[string]string{
	"start_date": "2024-01-01",
	"end_date":   "2024-01-14 23:59:59",
}

func TestGetPeriod(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/period?date=2024-01-17", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	var period payroll.PeriodResponse
	require.NoError(t, json.Unmarshal(resp.Data, &period))
	assert.Equal(t, "2024-01-01 00:00:00", period.PeriodStart)
	assert.Equal(t, "2024-01-14 23:59:59", period.PeriodEnd)
}

func TestGetPeriod_InvalidDate(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/period?date=garbage", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyze(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze", map[string]string{
		"time_clock": timeClockUpload,
		"employee":   employeeUpload,
		"store":      storeUpload,
	}, defaultWindow)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	var analysis payroll.AnalysisResponse
	require.NoError(t, json.Unmarshal(resp.Data, &analysis))
	assert.Equal(t, 2, analysis.RowCount)
	assert.Equal(t, 1, analysis.StoreCount)
	assert.Equal(t, 0, analysis.MissingNames)
	require.Len(t, analysis.Rows, 2)

	// B worked more and sorts first
	assert.Equal(t, "B", analysis.Rows[0].EmployeeID)
	require.NotNil(t, analysis.Rows[0].FirstName)
	assert.Equal(t, "Ben", *analysis.Rows[0].FirstName)
	require.NotNil(t, analysis.Rows[0].StoreName)
	assert.Equal(t, "Downtown", *analysis.Rows[0].StoreName)
	assert.InDelta(t, 8.0, analysis.Rows[0].HoursWorked, 1e-9)
	assert.InDelta(t, 12.0, analysis.Rows[0].TotalStoreHours, 1e-9)
}

func TestAnalyze_WithoutRosters(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze", map[string]string{
		"time_clock": timeClockUpload,
	}, defaultWindow)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)

	var analysis payroll.AnalysisResponse
	require.NoError(t, json.Unmarshal(resp.Data, &analysis))
	require.Len(t, analysis.Rows, 2)
	assert.Nil(t, analysis.Rows[0].FirstName)
	assert.Nil(t, analysis.Rows[0].StoreName)
}

func TestAnalyze_EmptyWindowIsOK(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze", map[string]string{
		"time_clock": timeClockUpload,
	}, map[string]string{
		"start_date": "2030-01-01",
		"end_date":   "2030-01-14",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)

	var analysis payroll.AnalysisResponse
	require.NoError(t, json.Unmarshal(resp.Data, &analysis))
	assert.Equal(t, 0, analysis.RowCount)
}

func TestAnalyze_MissingTimeClockFile(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze", map[string]string{
		"employee": employeeUpload,
	}, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "time_clock")
}

func TestAnalyze_SingleSidedWindow(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze", map[string]string{
		"time_clock": timeClockUpload,
	}, map[string]string{
		"start_date": "2024-01-01",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyze_MalformedPunchTable(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze", map[string]string{
		"time_clock": "Store_ID|Employee_ID|Start\n1|A|2024-01-01\n", // End missing
	}, defaultWindow)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "End")
}

func TestExport_CSV(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze/export?format=csv", map[string]string{
		"time_clock": timeClockUpload,
	}, defaultWindow)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll_proportions.csv")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Store_ID,Employee_ID,Hours_Worked,Total_Store_Hours,Hours_Proportion,Hours_Percentage", lines[0])
}

func TestExport_UnsupportedFormat(t *testing.T) {
	router := newTestRouter(t)

	rec := postForm(t, router, "/api/v1/payroll/analyze/export?format=pdf", map[string]string{
		"time_clock": timeClockUpload,
	}, defaultWindow)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavedReportLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Save
	rec := postForm(t, router, "/api/v1/payroll/reports?format=csv", map[string]string{
		"time_clock": timeClockUpload,
	}, defaultWindow)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	var saved report.SavedReportResponse
	require.NoError(t, json.Unmarshal(resp.Data, &saved))
	assert.Equal(t, "csv", saved.Format)
	assert.Equal(t, 2, saved.RowCount)
	require.NotEmpty(t, saved.Filename)

	// Download
	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/reports/"+saved.Filename, nil)
	downloadRec := httptest.NewRecorder()
	router.ServeHTTP(downloadRec, req)
	require.Equal(t, http.StatusOK, downloadRec.Code)
	assert.Equal(t, "text/csv", downloadRec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(downloadRec.Body.String(), "Store_ID,"))

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/payroll/reports/"+saved.Filename, nil)
	deleteRec := httptest.NewRecorder()
	router.ServeHTTP(deleteRec, req)
	require.Equal(t, http.StatusOK, deleteRec.Code)

	// Gone
	req = httptest.NewRequest(http.MethodGet, "/api/v1/payroll/reports/"+saved.Filename, nil)
	goneRec := httptest.NewRecorder()
	router.ServeHTTP(goneRec, req)
	assert.Equal(t, http.StatusNotFound, goneRec.Code)
}

func TestDownloadReport_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/reports/nope.csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
