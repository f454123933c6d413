package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	salesapp "bmw-sales-analytics/internal/sales/application"
	sales "bmw-sales-analytics/internal/sales/domain"
)

// RecordsHandler serves record insertion and the full snapshot.
type RecordsHandler struct {
	service *salesapp.RecordAppService
}

// NewRecordsHandler constructs a RecordsHandler.
func NewRecordsHandler(service *salesapp.RecordAppService) *RecordsHandler {
	return &RecordsHandler{service: service}
}

type recordRequest struct {
	Model        string              `json:"model"`
	Year         int                 `json:"year"`
	Region       string              `json:"region"`
	Color        string              `json:"color"`
	FuelType     string              `json:"fuel_type"`
	Transmission string              `json:"transmission"`
	EngineSizeL  decimal.NullDecimal `json:"engine_size_l"`
	MileageKM    int64               `json:"mileage_km"`
	PriceUSD     decimal.Decimal     `json:"price_usd"`
	SalesVolume  int64               `json:"sales_volume"`
}

type validationResponse struct {
	Error      string                 `json:"error"`
	Violations []sales.FieldViolation `json:"violations"`
}

// ServeHTTP handles POST and GET /api/v1/records.
func (h *RecordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.insert(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *RecordsHandler) insert(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	record, err := h.service.Insert(r.Context(), sales.RecordInput{
		Model:        req.Model,
		Year:         req.Year,
		Region:       req.Region,
		Color:        req.Color,
		FuelType:     sales.FuelType(req.FuelType),
		Transmission: sales.Transmission(req.Transmission),
		EngineSizeL:  req.EngineSizeL,
		MileageKM:    req.MileageKM,
		PriceUSD:     req.PriceUSD,
		SalesVolume:  req.SalesVolume,
	})
	if err != nil {
		if verr, ok := sales.AsValidationError(err); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(validationResponse{
				Error:      "invalid record",
				Violations: verr.Violations,
			})
			return
		}
		if errors.Is(err, sales.ErrDuplicateRecord) {
			http.Error(w, "duplicate record", http.StatusConflict)
			return
		}
		http.Error(w, "insert error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(record)
}

func (h *RecordsHandler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.All(r.Context())
	if err != nil {
		http.Error(w, "query error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*sales.SalesRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}
