package application

import (
	"context"
	"time"

	analytics "bmw-sales-analytics/internal/analytics/domain"
	"bmw-sales-analytics/internal/observability/metrics"
	sales "bmw-sales-analytics/internal/sales/domain"
)

// RecordReader supplies the record snapshot the views are computed over.
type RecordReader interface {
	All(ctx context.Context) ([]*sales.SalesRecord, error)
}

// AnalyticsService computes the aggregation views and the growth
// analysis against the current record snapshot. It holds no state of its
// own; every call reads through to the store.
type AnalyticsService struct {
	reader RecordReader
}

// NewAnalyticsService builds an AnalyticsService.
func NewAnalyticsService(reader RecordReader) *AnalyticsService {
	return &AnalyticsService{reader: reader}
}

func (s *AnalyticsService) snapshot(ctx context.Context, view string) ([]*sales.SalesRecord, func(), error) {
	start := time.Now()
	records, err := s.reader.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	return records, func() { metrics.ObserveView(view, time.Since(start)) }, nil
}

// ExecutiveSummary computes the latest-vs-prior-year summary. The second
// return value is false when the store is empty.
func (s *AnalyticsService) ExecutiveSummary(ctx context.Context) (analytics.ExecutiveSummary, bool, error) {
	records, done, err := s.snapshot(ctx, "executive_summary")
	if err != nil {
		return analytics.ExecutiveSummary{}, false, err
	}
	defer done()
	summary, ok := analytics.BuildExecutiveSummary(records)
	return summary, ok, nil
}

// RegionalPerformance computes the (region, year) view.
func (s *AnalyticsService) RegionalPerformance(ctx context.Context) ([]analytics.RegionalPerformanceRow, error) {
	records, done, err := s.snapshot(ctx, "regional_performance")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildRegionalPerformance(records), nil
}

// ModelAnalytics computes the per-model view.
func (s *AnalyticsService) ModelAnalytics(ctx context.Context) ([]analytics.ModelAnalyticsRow, error) {
	records, done, err := s.snapshot(ctx, "model_analytics")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildModelAnalytics(records), nil
}

// YearOverYearTrends computes the (year, fuel type) lag view.
func (s *AnalyticsService) YearOverYearTrends(ctx context.Context) ([]analytics.YearOverYearTrendRow, error) {
	records, done, err := s.snapshot(ctx, "yoy_trends")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildYearOverYearTrends(records), nil
}

// FuelTypeTrends computes the (fuel type, year) view.
func (s *AnalyticsService) FuelTypeTrends(ctx context.Context) ([]analytics.FuelTypeTrendRow, error) {
	records, done, err := s.snapshot(ctx, "fuel_trends")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildFuelTypeTrends(records), nil
}

// YearlySummary computes the per-year view.
func (s *AnalyticsService) YearlySummary(ctx context.Context) ([]analytics.YearlySummaryRow, error) {
	records, done, err := s.snapshot(ctx, "yearly_summary")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildYearlySummary(records), nil
}

// TopModels ranks models by total units sold.
func (s *AnalyticsService) TopModels(ctx context.Context, limit int) ([]analytics.TopModelRow, error) {
	records, done, err := s.snapshot(ctx, "top_models")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildTopModels(records, limit), nil
}

// TransmissionMix computes the (region, transmission) breakdown.
func (s *AnalyticsService) TransmissionMix(ctx context.Context) ([]analytics.TransmissionMixRow, error) {
	records, done, err := s.snapshot(ctx, "transmission_mix")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildTransmissionMix(records), nil
}

// SegmentMix computes the per-segment breakdown.
func (s *AnalyticsService) SegmentMix(ctx context.Context) ([]analytics.SegmentMixRow, error) {
	records, done, err := s.snapshot(ctx, "segment_mix")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.BuildSegmentMix(records), nil
}

// DatasetOverview computes the headline figures for the whole snapshot.
func (s *AnalyticsService) DatasetOverview(ctx context.Context) (analytics.DatasetOverview, error) {
	records, done, err := s.snapshot(ctx, "dataset_overview")
	if err != nil {
		return analytics.DatasetOverview{}, err
	}
	defer done()
	return analytics.BuildDatasetOverview(records), nil
}

// Growth runs the growth analyzer with the given filter.
func (s *AnalyticsService) Growth(ctx context.Context, filter analytics.GrowthFilter) ([]analytics.GrowthRow, error) {
	records, done, err := s.snapshot(ctx, "growth")
	if err != nil {
		return nil, err
	}
	defer done()
	return analytics.AnalyzeGrowth(records, filter), nil
}
