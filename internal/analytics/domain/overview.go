package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	sales "bmw-sales-analytics/internal/sales/domain"
)

// YearlySummaryRow is one calendar year across all regions and models.
type YearlySummaryRow struct {
	Year               int                 `json:"year"`
	RecordCount        int64               `json:"record_count"`
	TotalUnits         int64               `json:"total_units"`
	AveragePrice       decimal.NullDecimal `json:"average_price"`
	AverageMileageKM   decimal.NullDecimal `json:"average_mileage_km"`
	AverageEngineSizeL decimal.NullDecimal `json:"average_engine_size_l"`
}

// BuildYearlySummary groups the snapshot by year, ascending.
func BuildYearlySummary(records []*sales.SalesRecord) []YearlySummaryRow {
	type yearGroup struct {
		count      int64
		units      int64
		priceSum   decimal.Decimal
		mileageSum int64
		engine     engineSizeSum
	}
	groups := make(map[int]*yearGroup)
	for _, record := range records {
		group := groups[record.Year()]
		if group == nil {
			group = &yearGroup{}
			groups[record.Year()] = group
		}
		group.count++
		group.units += record.SalesVolume()
		group.priceSum = group.priceSum.Add(record.PriceUSD())
		group.mileageSum += record.MileageKM()
		group.engine.add(record)
	}

	rows := make([]YearlySummaryRow, 0, len(groups))
	for year, group := range groups {
		rows = append(rows, YearlySummaryRow{
			Year:               year,
			RecordCount:        group.count,
			TotalUnits:         group.units,
			AveragePrice:       averageOf(group.priceSum, group.count),
			AverageMileageKM:   averageOf(decimal.NewFromInt(group.mileageSum), group.count),
			AverageEngineSizeL: group.engine.average(),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows
}

// TransmissionMixRow is one (region, transmission) group with its share
// of the region's records.
type TransmissionMixRow struct {
	Region             string              `json:"region"`
	Transmission       sales.Transmission  `json:"transmission"`
	RecordCount        int64               `json:"record_count"`
	RegionSharePercent decimal.NullDecimal `json:"region_share_percent"`
}

// BuildTransmissionMix groups the snapshot by (region, transmission).
// The share is the group's portion of the region's record count. Rows are
// ordered by region, then record count descending.
func BuildTransmissionMix(records []*sales.SalesRecord) []TransmissionMixRow {
	type mixKey struct {
		region  string
		gearbox sales.Transmission
	}
	counts := make(map[mixKey]int64)
	regionTotals := make(map[string]int64)
	for _, record := range records {
		counts[mixKey{region: record.Region(), gearbox: record.Transmission()}]++
		regionTotals[record.Region()]++
	}

	rows := make([]TransmissionMixRow, 0, len(counts))
	for key, count := range counts {
		rows = append(rows, TransmissionMixRow{
			Region:             key.region,
			Transmission:       key.gearbox,
			RecordCount:        count,
			RegionSharePercent: percentOf(decimal.NewFromInt(count), decimal.NewFromInt(regionTotals[key.region])),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		if rows[i].RecordCount != rows[j].RecordCount {
			return rows[i].RecordCount > rows[j].RecordCount
		}
		return rows[i].Transmission < rows[j].Transmission
	})
	return rows
}

// SegmentMixRow is one model segment across the whole snapshot.
type SegmentMixRow struct {
	Segment      sales.Segment       `json:"segment"`
	RecordCount  int64               `json:"record_count"`
	TotalUnits   int64               `json:"total_units"`
	AveragePrice decimal.NullDecimal `json:"average_price"`
}

// BuildSegmentMix groups the snapshot by model segment, ordered by total
// units descending.
func BuildSegmentMix(records []*sales.SalesRecord) []SegmentMixRow {
	type segmentGroup struct {
		count    int64
		units    int64
		priceSum decimal.Decimal
	}
	groups := make(map[sales.Segment]*segmentGroup)
	for _, record := range records {
		segment := sales.SegmentOf(record.Model())
		group := groups[segment]
		if group == nil {
			group = &segmentGroup{}
			groups[segment] = group
		}
		group.count++
		group.units += record.SalesVolume()
		group.priceSum = group.priceSum.Add(record.PriceUSD())
	}

	rows := make([]SegmentMixRow, 0, len(groups))
	for segment, group := range groups {
		rows = append(rows, SegmentMixRow{
			Segment:      segment,
			RecordCount:  group.count,
			TotalUnits:   group.units,
			AveragePrice: averageOf(group.priceSum, group.count),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalUnits != rows[j].TotalUnits {
			return rows[i].TotalUnits > rows[j].TotalUnits
		}
		return rows[i].Segment < rows[j].Segment
	})
	return rows
}

// DatasetOverview is the headline figures of the whole snapshot, used by
// the narrative report.
type DatasetOverview struct {
	RecordCount           int64               `json:"record_count"`
	TotalUnits            int64               `json:"total_units"`
	FirstYear             int                 `json:"first_year"`
	LastYear              int                 `json:"last_year"`
	AveragePrice          decimal.NullDecimal `json:"average_price"`
	AverageMileageKM      decimal.NullDecimal `json:"average_mileage_km"`
	TopModel              string              `json:"top_model"`
	TopRegion             string              `json:"top_region"`
	DominantFuelType      sales.FuelType      `json:"dominant_fuel_type"`
	TopColor              string              `json:"top_color"`
	AutomaticSharePercent decimal.NullDecimal `json:"automatic_share_percent"`
}

// BuildDatasetOverview computes the headline figures. An empty snapshot
// yields the zero overview.
func BuildDatasetOverview(records []*sales.SalesRecord) DatasetOverview {
	if len(records) == 0 {
		return DatasetOverview{}
	}

	var (
		overview       DatasetOverview
		priceSum       decimal.Decimal
		mileageSum     int64
		automaticCount int64
		modelUnits     = make(map[string]int64)
		regionUnits    = make(map[string]int64)
		fuelUnits      = make(map[sales.FuelType]int64)
		colorCounts    = make(map[string]int64)
	)
	overview.FirstYear = records[0].Year()
	overview.LastYear = records[0].Year()

	for _, record := range records {
		overview.RecordCount++
		overview.TotalUnits += record.SalesVolume()
		if record.Year() < overview.FirstYear {
			overview.FirstYear = record.Year()
		}
		if record.Year() > overview.LastYear {
			overview.LastYear = record.Year()
		}
		priceSum = priceSum.Add(record.PriceUSD())
		mileageSum += record.MileageKM()
		if record.Transmission() == sales.TransmissionAutomatic {
			automaticCount++
		}
		modelUnits[record.Model()] += record.SalesVolume()
		regionUnits[record.Region()] += record.SalesVolume()
		fuelUnits[record.FuelType()] += record.SalesVolume()
		if record.Color() != "" {
			colorCounts[record.Color()]++
		}
	}

	overview.AveragePrice = averageOf(priceSum, overview.RecordCount)
	overview.AverageMileageKM = averageOf(decimal.NewFromInt(mileageSum), overview.RecordCount)
	overview.AutomaticSharePercent = percentOf(decimal.NewFromInt(automaticCount), decimal.NewFromInt(overview.RecordCount))
	overview.TopModel = maxKey(modelUnits)
	overview.TopRegion = maxKey(regionUnits)
	overview.TopColor = maxKey(colorCounts)

	var bestFuel sales.FuelType
	var bestFuelUnits int64 = -1
	for fuel, units := range fuelUnits {
		if units > bestFuelUnits || (units == bestFuelUnits && fuel < bestFuel) {
			bestFuel = fuel
			bestFuelUnits = units
		}
	}
	overview.DominantFuelType = bestFuel

	return overview
}

// maxKey picks the key with the highest value, breaking ties lexically.
func maxKey(values map[string]int64) string {
	var best string
	var bestValue int64 = -1
	for key, value := range values {
		if value > bestValue || (value == bestValue && key < best) {
			best = key
			bestValue = value
		}
	}
	return best
}
