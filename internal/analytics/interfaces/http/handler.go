package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	analyticsapp "bmw-sales-analytics/internal/analytics/application"
	analytics "bmw-sales-analytics/internal/analytics/domain"
)

// ViewsHandler serves the aggregation views under /api/v1/views/.
type ViewsHandler struct {
	service *analyticsapp.AnalyticsService
}

// NewViewsHandler constructs a ViewsHandler.
func NewViewsHandler(service *analyticsapp.AnalyticsService) *ViewsHandler {
	return &ViewsHandler{service: service}
}

// ServeHTTP handles GET /api/v1/views/{view}.
func (h *ViewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	view := strings.TrimPrefix(r.URL.Path, "/api/v1/views/")
	ctx := r.Context()

	var (
		payload any
		err     error
	)
	switch view {
	case "executive-summary":
		summary, ok, buildErr := h.service.ExecutiveSummary(ctx)
		if buildErr != nil {
			err = buildErr
			break
		}
		if !ok {
			http.Error(w, "no records", http.StatusNotFound)
			return
		}
		payload = summary
	case "regional":
		payload, err = h.service.RegionalPerformance(ctx)
	case "models":
		payload, err = h.service.ModelAnalytics(ctx)
	case "top-models":
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, parseErr := strconv.Atoi(raw)
			if parseErr != nil || parsed <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}
		payload, err = h.service.TopModels(ctx, limit)
	case "yoy-trends":
		payload, err = h.service.YearOverYearTrends(ctx)
	case "fuel-trends":
		payload, err = h.service.FuelTypeTrends(ctx)
	case "yearly":
		payload, err = h.service.YearlySummary(ctx)
	case "transmission-mix":
		payload, err = h.service.TransmissionMix(ctx)
	case "segment-mix":
		payload, err = h.service.SegmentMix(ctx)
	case "overview":
		payload, err = h.service.DatasetOverview(ctx)
	default:
		http.Error(w, "unknown view", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "view error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// GrowthHandler serves the growth analyzer.
type GrowthHandler struct {
	service *analyticsapp.AnalyticsService
}

// NewGrowthHandler constructs a GrowthHandler.
func NewGrowthHandler(service *analyticsapp.AnalyticsService) *GrowthHandler {
	return &GrowthHandler{service: service}
}

// ServeHTTP handles GET /api/v1/growth. Any of year, region and model
// may be supplied; an unmatched filter yields an empty array, never an
// error.
func (h *GrowthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	var filter analytics.GrowthFilter
	query := r.URL.Query()
	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "year must be an integer", http.StatusBadRequest)
			return
		}
		filter.Year = &year
	}
	if raw := query.Get("region"); raw != "" {
		filter.Region = &raw
	}
	if raw := query.Get("model"); raw != "" {
		filter.Model = &raw
	}

	rows, err := h.service.Growth(r.Context(), filter)
	if err != nil {
		http.Error(w, "growth error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []analytics.GrowthRow{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}
