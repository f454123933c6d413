package application

import (
	"context"
	"time"

	analyticsapp "bmw-sales-analytics/internal/analytics/application"
	analytics "bmw-sales-analytics/internal/analytics/domain"
	sales "bmw-sales-analytics/internal/sales/domain"
)

// ReportData is everything the workbook and PDF renderers need,
// assembled from one pass over the analytics service so all sections
// describe the same snapshot.
type ReportData struct {
	Config      Config
	GeneratedAt time.Time

	Records  []*sales.SalesRecord
	Overview analytics.DatasetOverview

	Summary    analytics.ExecutiveSummary
	HasSummary bool

	Regional        []analytics.RegionalPerformanceRow
	Models          []analytics.ModelAnalyticsRow
	TopModels       []analytics.TopModelRow
	YoYTrends       []analytics.YearOverYearTrendRow
	FuelTrends      []analytics.FuelTypeTrendRow
	Yearly          []analytics.YearlySummaryRow
	TransmissionMix []analytics.TransmissionMixRow
	SegmentMix      []analytics.SegmentMixRow
}

// Clock provides time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ReportService assembles report data from the analytical layer.
type ReportService struct {
	cfg       Config
	analytics *analyticsapp.AnalyticsService
	records   analyticsapp.RecordReader
	clock     Clock
}

// NewReportService builds a ReportService.
func NewReportService(cfg Config, service *analyticsapp.AnalyticsService, records analyticsapp.RecordReader, clock Clock) *ReportService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ReportService{cfg: cfg, analytics: service, records: records, clock: clock}
}

// Assemble gathers every report section.
func (s *ReportService) Assemble(ctx context.Context) (ReportData, error) {
	data := ReportData{Config: s.cfg, GeneratedAt: s.clock.Now()}

	var err error
	if data.Records, err = s.records.All(ctx); err != nil {
		return ReportData{}, err
	}
	if data.Overview, err = s.analytics.DatasetOverview(ctx); err != nil {
		return ReportData{}, err
	}
	if data.Summary, data.HasSummary, err = s.analytics.ExecutiveSummary(ctx); err != nil {
		return ReportData{}, err
	}
	if data.Regional, err = s.analytics.RegionalPerformance(ctx); err != nil {
		return ReportData{}, err
	}
	if data.Models, err = s.analytics.ModelAnalytics(ctx); err != nil {
		return ReportData{}, err
	}
	if data.TopModels, err = s.analytics.TopModels(ctx, s.cfg.TopModelLimit); err != nil {
		return ReportData{}, err
	}
	if data.YoYTrends, err = s.analytics.YearOverYearTrends(ctx); err != nil {
		return ReportData{}, err
	}
	if data.FuelTrends, err = s.analytics.FuelTypeTrends(ctx); err != nil {
		return ReportData{}, err
	}
	if data.Yearly, err = s.analytics.YearlySummary(ctx); err != nil {
		return ReportData{}, err
	}
	if data.TransmissionMix, err = s.analytics.TransmissionMix(ctx); err != nil {
		return ReportData{}, err
	}
	if data.SegmentMix, err = s.analytics.SegmentMix(ctx); err != nil {
		return ReportData{}, err
	}
	return data, nil
}
