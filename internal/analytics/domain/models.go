package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

// ModelAnalyticsRow is one model with all years collapsed.
type ModelAnalyticsRow struct {
	Model              string              `json:"model"`
	LifetimeUnits      int64               `json:"lifetime_units"`
	YearsActive        int                 `json:"years_active"`
	AveragePrice       decimal.NullDecimal `json:"average_price"`
	AverageEngineSizeL decimal.NullDecimal `json:"average_engine_size_l"`
	HighSharePercent   decimal.NullDecimal `json:"high_share_percent"`
}

type modelGroup struct {
	model     string
	units     int64
	years     map[int]struct{}
	priceSum  decimal.Decimal
	engine    engineSizeSum
	count     int64
	highCount int64
}

// BuildModelAnalytics groups the snapshot by model. Electric records are
// excluded from the engine size average since they carry none, and the
// High share denominator is the record count, not the unit volume. Rows
// are ordered by lifetime units descending, then model name.
func BuildModelAnalytics(records []*sales.SalesRecord) []ModelAnalyticsRow {
	groups := make(map[string]*modelGroup)
	for _, record := range records {
		group := groups[record.Model()]
		if group == nil {
			group = &modelGroup{model: record.Model(), years: make(map[int]struct{})}
			groups[record.Model()] = group
		}
		group.units += record.SalesVolume()
		group.years[record.Year()] = struct{}{}
		group.priceSum = group.priceSum.Add(record.PriceUSD())
		group.engine.add(record)
		group.count++
		if record.Classification() == sales.ClassificationHigh {
			group.highCount++
		}
	}

	rows := make([]ModelAnalyticsRow, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, ModelAnalyticsRow{
			Model:              group.model,
			LifetimeUnits:      group.units,
			YearsActive:        len(group.years),
			AveragePrice:       averageOf(group.priceSum, group.count),
			AverageEngineSizeL: group.engine.average(),
			HighSharePercent:   percentOf(decimal.NewFromInt(group.highCount), decimal.NewFromInt(group.count)),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LifetimeUnits != rows[j].LifetimeUnits {
			return rows[i].LifetimeUnits > rows[j].LifetimeUnits
		}
		return rows[i].Model < rows[j].Model
	})
	return rows
}

// DefaultTopModelLimit caps the top models view when no limit is given.
const DefaultTopModelLimit = 10

// TopModelRow is one model in the by-volume leaderboard.
type TopModelRow struct {
	Model        string              `json:"model"`
	TotalUnits   int64               `json:"total_units"`
	AveragePrice decimal.NullDecimal `json:"average_price"`
	RecordCount  int64               `json:"record_count"`
}

// BuildTopModels ranks models by total units sold, descending, limited to
// the given count. A non-positive limit falls back to the default.
func BuildTopModels(records []*sales.SalesRecord, limit int) []TopModelRow {
	if limit <= 0 {
		limit = DefaultTopModelLimit
	}

	type topGroup struct {
		units    int64
		priceSum decimal.Decimal
		count    int64
	}
	groups := make(map[string]*topGroup)
	for _, record := range records {
		group := groups[record.Model()]
		if group == nil {
			group = &topGroup{}
			groups[record.Model()] = group
		}
		group.units += record.SalesVolume()
		group.priceSum = group.priceSum.Add(record.PriceUSD())
		group.count++
	}

	rows := make([]TopModelRow, 0, len(groups))
	for model, group := range groups {
		rows = append(rows, TopModelRow{
			Model:        model,
			TotalUnits:   group.units,
			AveragePrice: averageOf(group.priceSum, group.count),
			RecordCount:  group.count,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalUnits != rows[j].TotalUnits {
			return rows[i].TotalUnits > rows[j].TotalUnits
		}
		return rows[i].Model < rows[j].Model
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
