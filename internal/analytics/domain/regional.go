package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

// RegionalPerformanceRow is one (region, year) group.
type RegionalPerformanceRow struct {
	Region               string              `json:"region"`
	Year                 int                 `json:"year"`
	UnitsSold            int64               `json:"units_sold"`
	Revenue              decimal.Decimal     `json:"revenue"`
	AveragePrice         decimal.NullDecimal `json:"average_price"`
	AverageMileageKM     decimal.NullDecimal `json:"average_mileage_km"`
	ElectricSharePercent decimal.NullDecimal `json:"electric_share_percent"`
	Models               string              `json:"models"`
}

type regionYear struct {
	region string
	year   int
}

type regionalGroup struct {
	region        string
	year          int
	units         int64
	electricUnits int64
	revenue       decimal.Decimal
	priceSum      decimal.Decimal
	mileageSum    int64
	count         int64
	models        map[string]struct{}
}

// BuildRegionalPerformance groups the snapshot by (region, year). The
// electric share is the electric portion of units sold, not of record
// count. Rows are ordered by region, then year.
func BuildRegionalPerformance(records []*sales.SalesRecord) []RegionalPerformanceRow {
	groups := make(map[regionYear]*regionalGroup)
	for _, record := range records {
		key := regionYear{region: record.Region(), year: record.Year()}
		group := groups[key]
		if group == nil {
			group = &regionalGroup{
				region: record.Region(),
				year:   record.Year(),
				models: make(map[string]struct{}),
			}
			groups[key] = group
		}
		group.units += record.SalesVolume()
		if record.FuelType() == sales.FuelElectric {
			group.electricUnits += record.SalesVolume()
		}
		group.revenue = group.revenue.Add(record.Revenue())
		group.priceSum = group.priceSum.Add(record.PriceUSD())
		group.mileageSum += record.MileageKM()
		group.count++
		group.models[record.Model()] = struct{}{}
	}

	rows := make([]RegionalPerformanceRow, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, RegionalPerformanceRow{
			Region:               group.region,
			Year:                 group.year,
			UnitsSold:            group.units,
			Revenue:              group.revenue.Round(2),
			AveragePrice:         averageOf(group.priceSum, group.count),
			AverageMileageKM:     averageOf(decimal.NewFromInt(group.mileageSum), group.count),
			ElectricSharePercent: percentOf(decimal.NewFromInt(group.electricUnits), decimal.NewFromInt(group.units)),
			Models:               modelList(group.models),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}
