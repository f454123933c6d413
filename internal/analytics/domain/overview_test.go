package analytics

import (
	"testing"

	sales "bmw-sales-analytics/internal/sales/domain"
)

func TestYearlySummaryAscending(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{year: 2023, volume: 500, mileageKM: 10000}),
		mustRecord(t, recordSpec{year: 2021, volume: 300, mileageKM: 30000}),
		mustRecord(t, recordSpec{year: 2021, volume: 200, mileageKM: 10000, model: "i4", fuel: sales.FuelElectric}),
	}

	rows := BuildYearlySummary(records)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Year != 2021 || rows[1].Year != 2023 {
		t.Fatalf("expected ascending years, got %d then %d", rows[0].Year, rows[1].Year)
	}

	first := rows[0]
	if first.RecordCount != 2 || first.TotalUnits != 500 {
		t.Fatalf("unexpected 2021 aggregates: count=%d units=%d", first.RecordCount, first.TotalUnits)
	}
	requireDecimal(t, first.AverageMileageKM, "20000")
	// The electric record contributes nothing to the engine average.
	requireDecimal(t, first.AverageEngineSizeL, "2")
}

func TestTransmissionMixRegionShare(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{region: "Europe", transmission: sales.TransmissionAutomatic}),
		mustRecord(t, recordSpec{region: "Europe", transmission: sales.TransmissionAutomatic, model: "i4", fuel: sales.FuelElectric}),
		mustRecord(t, recordSpec{region: "Europe", transmission: sales.TransmissionManual, model: "M3"}),
		mustRecord(t, recordSpec{region: "Asia", transmission: sales.TransmissionManual}),
	}

	rows := BuildTransmissionMix(records)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Region != "Asia" {
		t.Fatalf("expected Asia first, got %s", rows[0].Region)
	}
	requireDecimal(t, rows[0].RegionSharePercent, "100")

	// Europe: automatic (2 of 3) before manual (1 of 3).
	if rows[1].Transmission != sales.TransmissionAutomatic || rows[1].RecordCount != 2 {
		t.Fatalf("unexpected Europe leader: %s count=%d", rows[1].Transmission, rows[1].RecordCount)
	}
	requireDecimal(t, rows[1].RegionSharePercent, "66.67")
	requireDecimal(t, rows[2].RegionSharePercent, "33.33")
}

func TestSegmentMixBuckets(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{model: "X5", volume: 5000}),
		mustRecord(t, recordSpec{model: "X3", volume: 3000}),
		mustRecord(t, recordSpec{model: "i4", fuel: sales.FuelElectric, volume: 2000}),
		mustRecord(t, recordSpec{model: "M3", volume: 1500}),
		mustRecord(t, recordSpec{model: "3 Series", volume: 1000}),
	}

	rows := BuildSegmentMix(records)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Segment != sales.SegmentSUV || rows[0].TotalUnits != 8000 {
		t.Fatalf("expected SUV with 8000 units first, got %s with %d", rows[0].Segment, rows[0].TotalUnits)
	}
	wantOrder := []sales.Segment{sales.SegmentSUV, sales.SegmentISeries, sales.SegmentMSeries, sales.SegmentSedan}
	for i, want := range wantOrder {
		if rows[i].Segment != want {
			t.Fatalf("expected %s at index %d, got %s", want, i, rows[i].Segment)
		}
	}
}

func TestDatasetOverviewHeadlines(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{model: "X5", region: "Europe", year: 2020, color: "Black", volume: 5000, mileageKM: 10000}),
		mustRecord(t, recordSpec{model: "X5", region: "Asia", year: 2023, color: "Black", volume: 3000, mileageKM: 30000}),
		mustRecord(t, recordSpec{model: "i4", region: "Europe", year: 2022, color: "White", fuel: sales.FuelElectric, transmission: sales.TransmissionManual, volume: 1000, mileageKM: 20000}),
	}

	overview := BuildDatasetOverview(records)
	if overview.RecordCount != 3 || overview.TotalUnits != 9000 {
		t.Fatalf("unexpected totals: count=%d units=%d", overview.RecordCount, overview.TotalUnits)
	}
	if overview.FirstYear != 2020 || overview.LastYear != 2023 {
		t.Fatalf("unexpected year span %d..%d", overview.FirstYear, overview.LastYear)
	}
	if overview.TopModel != "X5" {
		t.Fatalf("unexpected top model %s", overview.TopModel)
	}
	if overview.TopRegion != "Europe" {
		t.Fatalf("unexpected top region %s", overview.TopRegion)
	}
	if overview.DominantFuelType != sales.FuelPetrol {
		t.Fatalf("unexpected dominant fuel %s", overview.DominantFuelType)
	}
	if overview.TopColor != "Black" {
		t.Fatalf("unexpected top color %s", overview.TopColor)
	}
	requireDecimal(t, overview.AverageMileageKM, "20000")
	// 2 automatic records of 3.
	requireDecimal(t, overview.AutomaticSharePercent, "66.67")
}

func TestDatasetOverviewEmpty(t *testing.T) {
	overview := BuildDatasetOverview(nil)
	if overview.RecordCount != 0 || overview.TopModel != "" {
		t.Fatalf("expected zero overview, got %+v", overview)
	}
}
