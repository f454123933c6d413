package interfaces

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	analyticsapp "bmw-sales-analytics/internal/analytics/application"
	application "bmw-sales-analytics/internal/reporting/application"
	sales "bmw-sales-analytics/internal/sales/domain"
	"bmw-sales-analytics/internal/sales/infrastructure/memory"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func seededReportData(t *testing.T, cfg application.Config) application.ReportData {
	t.Helper()

	repo := memory.NewRecordRepository()
	inputs := []sales.RecordInput{
		{
			Model: "X5", Year: 2022, Region: "Europe", Color: "Black",
			FuelType: sales.FuelPetrol, Transmission: sales.TransmissionAutomatic,
			EngineSizeL: decimal.NewNullDecimal(decimal.RequireFromString("3.0")),
			MileageKM:   42000, PriceUSD: decimal.RequireFromString("61500.00"), SalesVolume: 4500,
		},
		{
			Model: "i4", Year: 2023, Region: "Europe", Color: "White",
			FuelType: sales.FuelElectric, Transmission: sales.TransmissionAutomatic,
			MileageKM: 12000, PriceUSD: decimal.RequireFromString("55200.00"), SalesVolume: 7200,
		},
	}
	for _, input := range inputs {
		record, err := sales.NewSalesRecord(input)
		if err != nil {
			t.Fatalf("new record: %v", err)
		}
		if err := repo.Insert(context.Background(), record); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	service := application.NewReportService(
		cfg,
		analyticsapp.NewAnalyticsService(repo),
		repo,
		fixedClock{at: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
	data, err := service.Assemble(context.Background())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return data
}

func defaultConfig() application.Config {
	return application.Config{
		Title:         "BMW Sales Deep Dive Analysis",
		Subtitle:      "2010-2024",
		CurrencyLabel: "USD",
		TopModelLimit: 10,
		Sheets:        application.AllSheets,
	}
}

func TestBuildAnalysisWorkbook(t *testing.T) {
	data := seededReportData(t, defaultConfig())

	payload, err := BuildAnalysisWorkbook(data)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	book, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	for _, want := range application.AllSheets {
		found := false
		for _, got := range sheets {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing sheet %s in %v", want, sheets)
		}
	}

	header, err := book.GetCellValue(application.SheetTopModels, "A1")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if header != "Model" {
		t.Fatalf("unexpected Top_Models header %q", header)
	}

	// The electric record has no engine size; the raw sheet renders N/A.
	rows, err := book.GetRows(application.SheetRawData)
	if err != nil {
		t.Fatalf("read raw rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 records, got %d rows", len(rows))
	}
	sawUndefined := false
	for _, row := range rows[1:] {
		if len(row) > 7 && row[7] == "N/A" {
			sawUndefined = true
		}
	}
	if !sawUndefined {
		t.Fatalf("expected an N/A engine size cell")
	}
}

func TestBuildAnalysisWorkbookSheetSubset(t *testing.T) {
	cfg := defaultConfig()
	cfg.Sheets = []string{application.SheetRawData, application.SheetTopModels}
	data := seededReportData(t, cfg)

	payload, err := BuildAnalysisWorkbook(data)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	book, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %v", sheets)
	}
}

func TestBuildAnalysisPDF(t *testing.T) {
	data := seededReportData(t, defaultConfig())

	payload, err := BuildAnalysisPDF(data)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !strings.HasPrefix(string(payload), "%PDF") {
		t.Fatalf("expected a PDF header, got %q", string(payload[:8]))
	}
}

func TestBuildAnalysisPDFEmptySnapshot(t *testing.T) {
	data := application.ReportData{
		Config:      defaultConfig(),
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	payload, err := BuildAnalysisPDF(data)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if len(payload) == 0 {
		t.Fatalf("expected PDF bytes for an empty snapshot")
	}
}
