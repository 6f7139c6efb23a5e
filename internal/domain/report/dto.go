package report

// SavedReportResponse is the boundary representation of a saved artifact.
type SavedReportResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	RowCount    int    `json:"row_count"`
	URL         string `json:"url"`
	GeneratedAt string `json:"generated_at"`
}

// NewSavedReportResponse converts a SavedReport to its boundary form.
func NewSavedReportResponse(r SavedReport) SavedReportResponse {
	return SavedReportResponse{
		ID:          r.ID,
		Filename:    r.Filename,
		Format:      string(r.Format),
		RowCount:    r.RowCount,
		URL:         r.URL,
		GeneratedAt: r.GeneratedAt.Format("2006-01-02 15:04:05"),
	}
}
