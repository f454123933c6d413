package interfaces

import (
	"net/http"
	"strings"
	"time"

	"bmw-sales-analytics/internal/observability/metrics"
	application "bmw-sales-analytics/internal/reporting/application"
)

// ExportHandler serves the workbook and PDF report downloads.
type ExportHandler struct {
	service *application.ReportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(service *application.ReportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// ServeHTTP handles GET /api/v1/export/{workbook,report}.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	target := strings.TrimPrefix(r.URL.Path, "/api/v1/export/")
	switch target {
	case "workbook":
		h.export(w, r, "xlsx")
	case "report":
		h.export(w, r, "pdf")
	default:
		http.Error(w, "unknown export", http.StatusNotFound)
	}
}

func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request, format string) {
	start := time.Now()

	data, err := h.service.Assemble(r.Context())
	if err != nil {
		metrics.ObserveExport(format, "error", time.Since(start))
		http.Error(w, "assemble error", http.StatusInternalServerError)
		return
	}

	var (
		payload     []byte
		contentType string
		filename    string
	)
	switch format {
	case "xlsx":
		payload, err = BuildAnalysisWorkbook(data)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "sales_analysis.xlsx"
	case "pdf":
		payload, err = BuildAnalysisPDF(data)
		contentType = "application/pdf"
		filename = "sales_analysis_report.pdf"
	}
	if err != nil {
		metrics.ObserveExport(format, "error", time.Since(start))
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	metrics.ObserveExport(format, "", time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}
