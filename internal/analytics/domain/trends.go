package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

// Trend labels for the year-over-year fuel type view.
const (
	TrendStrongGrowth       = "Strong Growth"
	TrendModerateGrowth     = "Moderate Growth"
	TrendSignificantDecline = "Significant Decline"
	TrendModerateDecline    = "Moderate Decline"
	TrendStable             = "Stable"
)

// YearOverYearTrendRow is one (year, fuel type) group with its lag
// comparison against the preceding year for the same fuel type.
type YearOverYearTrendRow struct {
	Year          int                 `json:"year"`
	FuelType      sales.FuelType      `json:"fuel_type"`
	TotalUnits    int64               `json:"total_units"`
	PreviousUnits *int64              `json:"previous_units"`
	GrowthPercent decimal.NullDecimal `json:"growth_percent"`
	Trend         string              `json:"trend"`
}

// BuildYearOverYearTrends groups the snapshot by (year, fuel type) and
// computes each row's lag value as the units of the preceding year within
// the same fuel type, in ascending year order. The first year of a fuel
// type has no lag value. Rows are ordered by year, then fuel type.
func BuildYearOverYearTrends(records []*sales.SalesRecord) []YearOverYearTrendRow {
	byFuel := make(map[sales.FuelType]map[int]int64)
	for _, record := range records {
		years := byFuel[record.FuelType()]
		if years == nil {
			years = make(map[int]int64)
			byFuel[record.FuelType()] = years
		}
		years[record.Year()] += record.SalesVolume()
	}

	var rows []YearOverYearTrendRow
	for fuel, years := range byFuel {
		ordered := make([]int, 0, len(years))
		for year := range years {
			ordered = append(ordered, year)
		}
		sort.Ints(ordered)

		for i, year := range ordered {
			row := YearOverYearTrendRow{
				Year:       year,
				FuelType:   fuel,
				TotalUnits: years[year],
			}
			if i > 0 {
				previous := years[ordered[i-1]]
				row.PreviousUnits = &previous
				row.GrowthPercent = percentOf(
					decimal.NewFromInt(row.TotalUnits-previous),
					decimal.NewFromInt(previous),
				)
			}
			row.Trend = trendLabel(row.GrowthPercent)
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].FuelType < rows[j].FuelType
	})
	return rows
}

// trendLabel buckets a growth percentage; the first matching condition
// wins, so boundary values fall to the less extreme bucket. An undefined
// growth matches nothing and lands on Stable.
func trendLabel(growth decimal.NullDecimal) string {
	if !growth.Valid {
		return TrendStable
	}
	value := growth.Decimal
	switch {
	case value.GreaterThan(decimal.NewFromInt(10)):
		return TrendStrongGrowth
	case value.GreaterThan(decimal.Zero):
		return TrendModerateGrowth
	case value.LessThan(decimal.NewFromInt(-10)):
		return TrendSignificantDecline
	case value.LessThan(decimal.Zero):
		return TrendModerateDecline
	default:
		return TrendStable
	}
}

// FuelTypeTrendRow is one (fuel type, year) group.
type FuelTypeTrendRow struct {
	FuelType              sales.FuelType      `json:"fuel_type"`
	Year                  int                 `json:"year"`
	RecordCount           int64               `json:"record_count"`
	TotalUnits            int64               `json:"total_units"`
	AveragePrice          decimal.NullDecimal `json:"average_price"`
	AverageEngineSizeL    decimal.NullDecimal `json:"average_engine_size_l"`
	AutomaticSharePercent decimal.NullDecimal `json:"automatic_share_percent"`
	Models                string              `json:"models"`
}

type fuelYear struct {
	fuel sales.FuelType
	year int
}

type fuelTrendGroup struct {
	count          int64
	units          int64
	automaticUnits int64
	priceSum       decimal.Decimal
	engine         engineSizeSum
	models         map[string]struct{}
}

// BuildFuelTypeTrends groups the snapshot by (fuel type, year). The
// automatic share is the automatic-transmission portion of units sold.
// Rows are ordered by fuel type, then year.
func BuildFuelTypeTrends(records []*sales.SalesRecord) []FuelTypeTrendRow {
	groups := make(map[fuelYear]*fuelTrendGroup)
	for _, record := range records {
		key := fuelYear{fuel: record.FuelType(), year: record.Year()}
		group := groups[key]
		if group == nil {
			group = &fuelTrendGroup{models: make(map[string]struct{})}
			groups[key] = group
		}
		group.count++
		group.units += record.SalesVolume()
		if record.Transmission() == sales.TransmissionAutomatic {
			group.automaticUnits += record.SalesVolume()
		}
		group.priceSum = group.priceSum.Add(record.PriceUSD())
		group.engine.add(record)
		group.models[record.Model()] = struct{}{}
	}

	rows := make([]FuelTypeTrendRow, 0, len(groups))
	for key, group := range groups {
		rows = append(rows, FuelTypeTrendRow{
			FuelType:              key.fuel,
			Year:                  key.year,
			RecordCount:           group.count,
			TotalUnits:            group.units,
			AveragePrice:          averageOf(group.priceSum, group.count),
			AverageEngineSizeL:    group.engine.average(),
			AutomaticSharePercent: percentOf(decimal.NewFromInt(group.automaticUnits), decimal.NewFromInt(group.units)),
			Models:                modelList(group.models),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FuelType != rows[j].FuelType {
			return rows[i].FuelType < rows[j].FuelType
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}
