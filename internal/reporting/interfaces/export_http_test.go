package interfaces

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	analyticsapp "bmw-sales-analytics/internal/analytics/application"
	application "bmw-sales-analytics/internal/reporting/application"
	"bmw-sales-analytics/internal/sales/infrastructure/memory"
)

func newExportHandler() *ExportHandler {
	repo := memory.NewRecordRepository()
	service := application.NewReportService(
		defaultConfig(),
		analyticsapp.NewAnalyticsService(repo),
		repo,
		nil,
	)
	return NewExportHandler(service)
}

func TestExportWorkbookDownload(t *testing.T) {
	handler := newExportHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/workbook", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "sales_analysis.xlsx") {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("expected workbook bytes")
	}
}

func TestExportReportDownload(t *testing.T) {
	handler := newExportHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/report", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatalf("expected a PDF body")
	}
}

func TestExportUnknownTarget(t *testing.T) {
	handler := newExportHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/csv", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
