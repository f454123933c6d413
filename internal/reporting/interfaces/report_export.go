package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	application "bmw-sales-analytics/internal/reporting/application"
)

// undefinedCell is what an undefined ratio renders as. Safe division
// never produces zero or infinity in its place.
const undefinedCell = "N/A"

func fixed2(value decimal.Decimal) string { return value.StringFixed(2) }

func nullFixed2(value decimal.NullDecimal) string {
	if !value.Valid {
		return undefinedCell
	}
	return value.Decimal.StringFixed(2)
}

func nullUnits(value *int64) string {
	if value == nil {
		return undefinedCell
	}
	return fmt.Sprintf("%d", *value)
}

// BuildAnalysisWorkbook renders the multi-sheet XLSX analysis workbook.
func BuildAnalysisWorkbook(data application.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	first := true

	sheet := func(name string) (string, error) {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return "", err
			}
			first = false
			return name, nil
		}
		if _, err := f.NewSheet(name); err != nil {
			return "", err
		}
		return name, nil
	}

	writeRow := func(name string, row int, values ...any) error {
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	cfg := data.Config

	if cfg.WantsSheet(application.SheetRawData) {
		name, err := sheet(application.SheetRawData)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "ID", "Model", "Year", "Region", "Color", "Fuel Type", "Transmission", "Engine Size (L)", "Mileage (KM)", "Price ("+cfg.CurrencyLabel+")", "Sales Volume", "Classification", "Created At"); err != nil {
			return nil, err
		}
		for i, record := range data.Records {
			engine := undefinedCell
			if size := record.EngineSizeL(); size.Valid {
				engine = size.Decimal.StringFixed(1)
			}
			if err := writeRow(name, i+2,
				record.ID().String(),
				record.Model(),
				record.Year(),
				record.Region(),
				record.Color(),
				string(record.FuelType()),
				string(record.Transmission()),
				engine,
				record.MileageKM(),
				fixed2(record.PriceUSD()),
				record.SalesVolume(),
				string(record.Classification()),
				record.CreatedAt().Format(time.RFC3339),
			); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetExecutive) && data.HasSummary {
		name, err := sheet(application.SheetExecutive)
		if err != nil {
			return nil, err
		}
		summary := data.Summary
		rows := [][2]any{
			{"Year", summary.Year},
			{"Prior Year", summary.PriorYear},
			{"Total Units", summary.TotalUnits},
			{"Prior Year Units", summary.PriorYearUnits},
			{"Revenue (Millions)", fixed2(summary.RevenueMillions)},
			{"Average Price", nullFixed2(summary.AveragePrice)},
			{"YoY Growth %", fixed2(summary.GrowthPercent)},
		}
		for i, row := range rows {
			if err := writeRow(name, i+1, row[0], row[1]); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetRegional) {
		name, err := sheet(application.SheetRegional)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Region", "Year", "Units Sold", "Revenue", "Avg Price", "Avg Mileage (KM)", "Electric %", "Models"); err != nil {
			return nil, err
		}
		for i, row := range data.Regional {
			if err := writeRow(name, i+2, row.Region, row.Year, row.UnitsSold, fixed2(row.Revenue), nullFixed2(row.AveragePrice), nullFixed2(row.AverageMileageKM), nullFixed2(row.ElectricSharePercent), row.Models); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetModels) {
		name, err := sheet(application.SheetModels)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Model", "Lifetime Units", "Years Active", "Avg Price", "Avg Engine (L)", "High %"); err != nil {
			return nil, err
		}
		for i, row := range data.Models {
			if err := writeRow(name, i+2, row.Model, row.LifetimeUnits, row.YearsActive, nullFixed2(row.AveragePrice), nullFixed2(row.AverageEngineSizeL), nullFixed2(row.HighSharePercent)); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetTopModels) {
		name, err := sheet(application.SheetTopModels)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Model", "Total Units", "Avg Price", "Record Count"); err != nil {
			return nil, err
		}
		for i, row := range data.TopModels {
			if err := writeRow(name, i+2, row.Model, row.TotalUnits, nullFixed2(row.AveragePrice), row.RecordCount); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetYoYTrends) {
		name, err := sheet(application.SheetYoYTrends)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Year", "Fuel Type", "Total Units", "Previous Units", "Growth %", "Trend"); err != nil {
			return nil, err
		}
		for i, row := range data.YoYTrends {
			if err := writeRow(name, i+2, row.Year, string(row.FuelType), row.TotalUnits, nullUnits(row.PreviousUnits), nullFixed2(row.GrowthPercent), row.Trend); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetFuelTrends) {
		name, err := sheet(application.SheetFuelTrends)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Fuel Type", "Year", "Records", "Total Units", "Avg Price", "Avg Engine (L)", "Automatic %", "Models"); err != nil {
			return nil, err
		}
		for i, row := range data.FuelTrends {
			if err := writeRow(name, i+2, string(row.FuelType), row.Year, row.RecordCount, row.TotalUnits, nullFixed2(row.AveragePrice), nullFixed2(row.AverageEngineSizeL), nullFixed2(row.AutomaticSharePercent), row.Models); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetYearly) {
		name, err := sheet(application.SheetYearly)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Year", "Records", "Total Units", "Avg Price", "Avg Mileage (KM)", "Avg Engine (L)"); err != nil {
			return nil, err
		}
		for i, row := range data.Yearly {
			if err := writeRow(name, i+2, row.Year, row.RecordCount, row.TotalUnits, nullFixed2(row.AveragePrice), nullFixed2(row.AverageMileageKM), nullFixed2(row.AverageEngineSizeL)); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetTransmissionMix) {
		name, err := sheet(application.SheetTransmissionMix)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Region", "Transmission", "Records", "Region Share %"); err != nil {
			return nil, err
		}
		for i, row := range data.TransmissionMix {
			if err := writeRow(name, i+2, row.Region, string(row.Transmission), row.RecordCount, nullFixed2(row.RegionSharePercent)); err != nil {
				return nil, err
			}
		}
	}

	if cfg.WantsSheet(application.SheetSegmentMix) {
		name, err := sheet(application.SheetSegmentMix)
		if err != nil {
			return nil, err
		}
		if err := writeRow(name, 1, "Segment", "Records", "Total Units", "Avg Price"); err != nil {
			return nil, err
		}
		for i, row := range data.SegmentMix {
			if err := writeRow(name, i+2, string(row.Segment), row.RecordCount, row.TotalUnits, nullFixed2(row.AveragePrice)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAnalysisPDF renders the narrative PDF report: cover page,
// executive summary, and the top-model leaderboard.
func BuildAnalysisPDF(data application.ReportData) ([]byte, error) {
	cfg := data.Config
	pdf := gofpdf.New("P", "mm", "A4", "")

	// Cover page
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 24)
	pdf.Ln(60)
	pdf.CellFormat(0, 12, cfg.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 10, cfg.Subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(20)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, "Generated: "+data.GeneratedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	// Executive summary
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "EXECUTIVE SUMMARY")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 11)

	overview := data.Overview
	line := func(text string) {
		pdf.Cell(0, 7, text)
		pdf.Ln(7)
	}
	line(fmt.Sprintf("Total Records Analyzed: %d", overview.RecordCount))
	line(fmt.Sprintf("Total Sales Volume: %d", overview.TotalUnits))
	if overview.RecordCount > 0 {
		line(fmt.Sprintf("Date Range: %d - %d", overview.FirstYear, overview.LastYear))
	}
	line(fmt.Sprintf("Average Price (%s): %s", cfg.CurrencyLabel, nullFixed2(overview.AveragePrice)))
	line(fmt.Sprintf("Average Mileage (KM): %s", nullFixed2(overview.AverageMileageKM)))
	if overview.TopModel != "" {
		line("Top Model: " + overview.TopModel)
	}
	if overview.TopRegion != "" {
		line("Top Region: " + overview.TopRegion)
	}
	if overview.DominantFuelType != "" {
		line("Dominant Fuel Type: " + string(overview.DominantFuelType))
	}
	if overview.TopColor != "" {
		line("Most Popular Color: " + overview.TopColor)
	}
	line("Automatic Transmission Share: " + nullFixed2(overview.AutomaticSharePercent) + "%")

	if data.HasSummary {
		summary := data.Summary
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, fmt.Sprintf("LATEST YEAR: %d", summary.Year))
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 11)
		line(fmt.Sprintf("Units Sold: %d", summary.TotalUnits))
		line(fmt.Sprintf("Revenue (%s Millions): %s", cfg.CurrencyLabel, fixed2(summary.RevenueMillions)))
		line("Average Price: " + nullFixed2(summary.AveragePrice))
		line(fmt.Sprintf("Growth vs %d: %s%%", summary.PriorYear, fixed2(summary.GrowthPercent)))
	}

	// Top models table
	if len(data.TopModels) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, "TOP MODELS")
		pdf.Ln(10)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 6, "Model", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, "Total Units", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, "Avg Price", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, row := range data.TopModels {
			pdf.CellFormat(60, 6, row.Model, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 6, fmt.Sprintf("%d", row.TotalUnits), "1", 0, "R", false, 0, "")
			pdf.CellFormat(45, 6, nullFixed2(row.AveragePrice), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
