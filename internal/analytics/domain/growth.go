package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

// Growth status labels for the growth analyzer.
const (
	GrowthRapid           = "Rapid Growth"
	GrowthSteady          = "Steady Growth"
	GrowthSharpDecline    = "Sharp Decline"
	GrowthModerateDecline = "Moderate Decline"
	GrowthStable          = "Stable"
)

// GrowthFilter optionally pins grouping dimensions of the growth
// analysis. A supplied value substitutes the grouping key for every
// record rather than restricting which records participate: filtering on
// a region relabels all records into that one region before grouping.
// Callers who want restriction must pre-filter the snapshot themselves.
type GrowthFilter struct {
	Year   *int
	Region *string
	Model  *string
}

// GrowthRow is one year-over-year comparison for a (region, model) pair.
type GrowthRow struct {
	Year           int                 `json:"year"`
	Region         string              `json:"region"`
	Model          string              `json:"model"`
	CurrentUnits   int64               `json:"current_units"`
	PreviousUnits  int64               `json:"previous_units"`
	AbsoluteChange int64               `json:"absolute_change"`
	GrowthPercent  decimal.NullDecimal `json:"growth_percent"`
	GrowthStatus   string              `json:"growth_status"`
}

type growthKey struct {
	year   int
	region string
	model  string
}

// AnalyzeGrowth groups the snapshot by (year, region, model), with any
// filter dimension fixed as a constant, and emits one row per group that
// has an immediately preceding year within the same (region, model) pair.
// The first year of a pair yields no row; a preceding year with zero
// units cannot occur in a validated store, but a zero previous value
// still emits the row with an undefined percentage. Rows are ordered by
// year descending, then growth percentage descending with undefined
// values last.
func AnalyzeGrowth(records []*sales.SalesRecord, filter GrowthFilter) []GrowthRow {
	units := make(map[growthKey]int64)
	for _, record := range records {
		key := growthKey{
			year:   record.Year(),
			region: record.Region(),
			model:  record.Model(),
		}
		if filter.Year != nil {
			key.year = *filter.Year
		}
		if filter.Region != nil {
			key.region = *filter.Region
		}
		if filter.Model != nil {
			key.model = *filter.Model
		}
		units[key] += record.SalesVolume()
	}

	// Collect the ascending year sequence per (region, model) pair so the
	// lag is an explicit previous-element scan, not a calendar subtraction.
	type pair struct {
		region string
		model  string
	}
	years := make(map[pair][]int)
	for key := range units {
		p := pair{region: key.region, model: key.model}
		years[p] = append(years[p], key.year)
	}

	var rows []GrowthRow
	for p, sequence := range years {
		sort.Ints(sequence)
		for i := 1; i < len(sequence); i++ {
			current := units[growthKey{year: sequence[i], region: p.region, model: p.model}]
			previous := units[growthKey{year: sequence[i-1], region: p.region, model: p.model}]

			row := GrowthRow{
				Year:           sequence[i],
				Region:         p.region,
				Model:          p.model,
				CurrentUnits:   current,
				PreviousUnits:  previous,
				AbsoluteChange: current - previous,
				GrowthPercent:  percentOf(decimal.NewFromInt(current-previous), decimal.NewFromInt(previous)),
			}
			row.GrowthStatus = growthStatus(row.GrowthPercent)
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year > rows[j].Year
		}
		return lessGrowthDesc(rows[i].GrowthPercent, rows[j].GrowthPercent)
	})
	return rows
}

// lessGrowthDesc orders growth percentages descending with undefined
// values after every defined one.
func lessGrowthDesc(a, b decimal.NullDecimal) bool {
	switch {
	case a.Valid && b.Valid:
		return a.Decimal.GreaterThan(b.Decimal)
	case a.Valid:
		return true
	default:
		return false
	}
}

// growthStatus buckets a growth percentage; the first matching condition
// wins. An undefined percentage matches nothing and lands on Stable.
func growthStatus(growth decimal.NullDecimal) string {
	if !growth.Valid {
		return GrowthStable
	}
	value := growth.Decimal
	switch {
	case value.GreaterThan(decimal.NewFromInt(15)):
		return GrowthRapid
	case value.GreaterThan(decimal.NewFromInt(5)):
		return GrowthSteady
	case value.LessThan(decimal.NewFromInt(-15)):
		return GrowthSharpDecline
	case value.LessThan(decimal.NewFromInt(-5)):
		return GrowthModerateDecline
	default:
		return GrowthStable
	}
}
