package analytics

import (
	"reflect"
	"testing"

	sales "bmw-sales-analytics/internal/sales/domain"
)

func TestRegionalPerformanceGroupsAndShares(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{region: "Europe", year: 2022, model: "i4", fuel: sales.FuelElectric, volume: 200, price: "60000.00", mileageKM: 10000}),
		mustRecord(t, recordSpec{region: "Europe", year: 2022, model: "X5", fuel: sales.FuelPetrol, volume: 400, price: "50000.00", mileageKM: 30000}),
		mustRecord(t, recordSpec{region: "Asia", year: 2023, model: "X5", volume: 1000}),
	}

	rows := BuildRegionalPerformance(records)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Region != "Asia" || rows[0].Year != 2023 {
		t.Fatalf("expected Asia/2023 first, got %s/%d", rows[0].Region, rows[0].Year)
	}

	europe := rows[1]
	if europe.Region != "Europe" || europe.Year != 2022 {
		t.Fatalf("expected Europe/2022, got %s/%d", europe.Region, europe.Year)
	}
	if europe.UnitsSold != 600 {
		t.Fatalf("expected 600 units, got %d", europe.UnitsSold)
	}
	// 200 electric units of 600.
	requireDecimal(t, europe.ElectricSharePercent, "33.33")
	requireDecimal(t, europe.AveragePrice, "55000")
	requireDecimal(t, europe.AverageMileageKM, "20000")
	if europe.Models != "X5, i4" {
		t.Fatalf("unexpected model list %q", europe.Models)
	}
	// 200*60000 + 400*50000.
	if europe.Revenue.String() != "32000000" {
		t.Fatalf("unexpected revenue %s", europe.Revenue.String())
	}
}

func TestRegionalPerformanceIdempotent(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{region: "Europe", year: 2022, volume: 300}),
		mustRecord(t, recordSpec{region: "Asia", year: 2021, volume: 700}),
	}
	first := BuildRegionalPerformance(records)
	second := BuildRegionalPerformance(records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestRegionalPerformanceEmptySnapshot(t *testing.T) {
	if rows := BuildRegionalPerformance(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
