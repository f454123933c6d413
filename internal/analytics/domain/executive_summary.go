package analytics

import (
	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

// ExecutiveSummary compares the most recent year against the year before
// it.
type ExecutiveSummary struct {
	Year            int                 `json:"year"`
	PriorYear       int                 `json:"prior_year"`
	TotalUnits      int64               `json:"total_units"`
	PriorYearUnits  int64               `json:"prior_year_units"`
	RevenueMillions decimal.Decimal     `json:"revenue_millions"`
	AveragePrice    decimal.NullDecimal `json:"average_price"`
	GrowthPercent   decimal.Decimal     `json:"growth_percent"`
}

// BuildExecutiveSummary computes the summary for the latest year present
// in the snapshot. The second return value is false for an empty
// snapshot. When the prior year has no records the growth is defined as
// zero (the current year compared against itself), an explicit fallback
// rather than an undefined ratio.
func BuildExecutiveSummary(records []*sales.SalesRecord) (ExecutiveSummary, bool) {
	if len(records) == 0 {
		return ExecutiveSummary{}, false
	}

	latest := records[0].Year()
	for _, record := range records[1:] {
		if record.Year() > latest {
			latest = record.Year()
		}
	}
	prior := latest - 1

	var (
		units      int64
		priorUnits int64
		revenue    decimal.Decimal
		priceSum   decimal.Decimal
		count      int64
	)
	for _, record := range records {
		switch record.Year() {
		case latest:
			units += record.SalesVolume()
			revenue = revenue.Add(record.Revenue())
			priceSum = priceSum.Add(record.PriceUSD())
			count++
		case prior:
			priorUnits += record.SalesVolume()
		}
	}

	growth := decimal.Zero
	if priorUnits > 0 {
		delta := decimal.NewFromInt(units - priorUnits)
		growth = delta.Div(decimal.NewFromInt(priorUnits)).Mul(oneHundred).Round(2)
	}

	return ExecutiveSummary{
		Year:            latest,
		PriorYear:       prior,
		TotalUnits:      units,
		PriorYearUnits:  priorUnits,
		RevenueMillions: revenue.Div(million).Round(2),
		AveragePrice:    averageOf(priceSum, count),
		GrowthPercent:   growth,
	}, true
}
