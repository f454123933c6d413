package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

func TestYearOverYearTrendsLag(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{year: 2020, fuel: sales.FuelPetrol, volume: 1000}),
		mustRecord(t, recordSpec{year: 2022, fuel: sales.FuelPetrol, volume: 1200}),
		mustRecord(t, recordSpec{year: 2022, fuel: sales.FuelDiesel, volume: 500}),
	}

	rows := BuildYearOverYearTrends(records)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Year != 2020 || first.FuelType != sales.FuelPetrol {
		t.Fatalf("expected 2020/Petrol first, got %d/%s", first.Year, first.FuelType)
	}
	if first.PreviousUnits != nil || first.GrowthPercent.Valid {
		t.Fatalf("first year of a fuel type must have no lag value")
	}
	if first.Trend != TrendStable {
		t.Fatalf("expected Stable for undefined growth, got %s", first.Trend)
	}

	// 2022 Petrol lags against 2020, the previous year present for the
	// fuel type, not against calendar 2021.
	var petrol2022 YearOverYearTrendRow
	for _, row := range rows {
		if row.Year == 2022 && row.FuelType == sales.FuelPetrol {
			petrol2022 = row
		}
	}
	if petrol2022.PreviousUnits == nil || *petrol2022.PreviousUnits != 1000 {
		t.Fatalf("expected lag units 1000, got %v", petrol2022.PreviousUnits)
	}
	requireDecimal(t, petrol2022.GrowthPercent, "20")
	if petrol2022.Trend != TrendStrongGrowth {
		t.Fatalf("expected Strong Growth, got %s", petrol2022.Trend)
	}

	// Diesel first appears in 2022, so its only row has no lag.
	var diesel2022 YearOverYearTrendRow
	for _, row := range rows {
		if row.FuelType == sales.FuelDiesel {
			diesel2022 = row
		}
	}
	if diesel2022.PreviousUnits != nil {
		t.Fatalf("expected no lag for the first Diesel year")
	}
}

func TestTrendLabelBoundaries(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"10.01", TrendStrongGrowth},
		{"10", TrendModerateGrowth},
		{"0.01", TrendModerateGrowth},
		{"0", TrendStable},
		{"-0.01", TrendModerateDecline},
		{"-10", TrendModerateDecline},
		{"-10.01", TrendSignificantDecline},
	}
	for _, tc := range cases {
		growth := decimal.NewNullDecimal(decimal.RequireFromString(tc.value))
		if got := trendLabel(growth); got != tc.want {
			t.Fatalf("trendLabel(%s) = %s, want %s", tc.value, got, tc.want)
		}
	}
	if got := trendLabel(decimal.NullDecimal{}); got != TrendStable {
		t.Fatalf("trendLabel(undefined) = %s, want %s", got, TrendStable)
	}
}

func TestFuelTypeTrendsAutomaticShare(t *testing.T) {
	records := []*sales.SalesRecord{
		mustRecord(t, recordSpec{year: 2022, fuel: sales.FuelPetrol, transmission: sales.TransmissionAutomatic, volume: 300}),
		mustRecord(t, recordSpec{year: 2022, fuel: sales.FuelPetrol, transmission: sales.TransmissionManual, volume: 100, model: "M3"}),
		mustRecord(t, recordSpec{year: 2021, fuel: sales.FuelHybrid, volume: 250}),
	}

	rows := BuildFuelTypeTrends(records)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Fuel type ascending: Hybrid before Petrol.
	if rows[0].FuelType != sales.FuelHybrid || rows[1].FuelType != sales.FuelPetrol {
		t.Fatalf("unexpected order: %s, %s", rows[0].FuelType, rows[1].FuelType)
	}

	petrol := rows[1]
	if petrol.RecordCount != 2 || petrol.TotalUnits != 400 {
		t.Fatalf("unexpected petrol aggregates: count=%d units=%d", petrol.RecordCount, petrol.TotalUnits)
	}
	// 300 automatic units of 400.
	requireDecimal(t, petrol.AutomaticSharePercent, "75")
	if petrol.Models != "M3, X5" {
		t.Fatalf("unexpected model list %q", petrol.Models)
	}
}
