package sales

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FuelType is the propulsion type of a sold vehicle.
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
)

// IsValid checks if the fuel type is one of the supported values.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	default:
		return false
	}
}

// Transmission is the gearbox type of a sold vehicle.
type Transmission string

const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
)

// IsValid checks if the transmission is one of the supported values.
func (t Transmission) IsValid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic:
		return true
	default:
		return false
	}
}

// Year bounds and field limits for a sales record.
const (
	MinYear      = 2010
	MaxYear      = 2024
	MaxMileageKM = 200000
)

var (
	minEngineSizeL = decimal.RequireFromString("1.0")
	maxEngineSizeL = decimal.RequireFromString("6.0")
)

// RecordInput carries the caller-supplied fields of a sales record
// candidate. Identity, timestamp and classification are assigned by the
// domain, never by the caller.
type RecordInput struct {
	Model        string
	Year         int
	Region       string
	Color        string
	FuelType     FuelType
	Transmission Transmission
	EngineSizeL  decimal.NullDecimal
	MileageKM    int64
	PriceUSD     decimal.Decimal
	SalesVolume  int64
}

// SalesRecord is one validated observation of a model/year/region
// combination. Invariants:
// 1) Year in [2010, 2024], price > 0, volume > 0, mileage in [0, 200000].
// 2) Engine size is present iff the fuel type is not Electric, and when
//    present lies in [1.0, 6.0] with at most one fractional digit.
// 3) Classification is derived from the sales volume and is never stored
//    or mutated independently of it.
// Records are immutable once constructed.
type SalesRecord struct {
	id           uuid.UUID
	model        string
	year         int
	region       string
	color        string
	fuelType     FuelType
	transmission Transmission
	engineSizeL  decimal.NullDecimal
	mileageKM    int64
	priceUSD     decimal.Decimal
	salesVolume  int64

	classification Classification
	createdAt      time.Time
}

// NewSalesRecord validates a candidate and builds a record with a fresh
// identity and creation timestamp. On failure it returns a
// *ValidationError listing every violated invariant.
func NewSalesRecord(input RecordInput) (*SalesRecord, error) {
	return RestoreSalesRecord(uuid.New(), input, time.Now().UTC())
}

// RestoreSalesRecord rebuilds a record from persisted state. The same
// invariants apply as on first construction and the classification is
// recomputed from the volume, so a corrupted row cannot re-enter the
// domain.
func RestoreSalesRecord(id uuid.UUID, input RecordInput, createdAt time.Time) (*SalesRecord, error) {
	if id == uuid.Nil {
		return nil, ErrEmptyRecordID
	}
	if createdAt.IsZero() {
		return nil, ErrInvalidCreatedAt
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	return &SalesRecord{
		id:             id,
		model:          input.Model,
		year:           input.Year,
		region:         input.Region,
		color:          input.Color,
		fuelType:       input.FuelType,
		transmission:   input.Transmission,
		engineSizeL:    input.EngineSizeL,
		mileageKM:      input.MileageKM,
		priceUSD:       input.PriceUSD,
		salesVolume:    input.SalesVolume,
		classification: Classify(input.SalesVolume),
		createdAt:      createdAt.UTC(),
	}, nil
}

func (in RecordInput) validate() error {
	var violations []FieldViolation

	add := func(field, reason string) {
		violations = append(violations, FieldViolation{Field: field, Reason: reason})
	}

	if in.Model == "" {
		add("model", "must not be empty")
	}
	if in.Year < MinYear || in.Year > MaxYear {
		add("year", "must be between 2010 and 2024")
	}
	if in.Region == "" {
		add("region", "must not be empty")
	}
	if !in.FuelType.IsValid() {
		add("fuel_type", "must be one of Petrol, Diesel, Hybrid, Electric")
	}
	if !in.Transmission.IsValid() {
		add("transmission", "must be one of Manual, Automatic")
	}

	// Engine size and fuel type are coupled both ways: Electric records
	// carry no engine size, every other record must carry one.
	switch {
	case in.FuelType == FuelElectric && in.EngineSizeL.Valid:
		add("engine_size_l", "must be absent for Electric records")
	case in.FuelType != FuelElectric && in.FuelType.IsValid() && !in.EngineSizeL.Valid:
		add("engine_size_l", "is required for non-Electric records")
	case in.EngineSizeL.Valid:
		size := in.EngineSizeL.Decimal
		if size.LessThan(minEngineSizeL) || size.GreaterThan(maxEngineSizeL) {
			add("engine_size_l", "must be between 1.0 and 6.0")
		}
		if size.Exponent() < -1 {
			add("engine_size_l", "must have at most one fractional digit")
		}
	}

	if in.MileageKM < 0 || in.MileageKM > MaxMileageKM {
		add("mileage_km", "must be between 0 and 200000")
	}
	if !in.PriceUSD.IsPositive() {
		add("price_usd", "must be greater than zero")
	}
	if in.PriceUSD.Exponent() < -2 {
		add("price_usd", "must have at most two fractional digits")
	}
	if in.SalesVolume <= 0 {
		add("sales_volume", "must be greater than zero")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ID returns the record identity.
func (r *SalesRecord) ID() uuid.UUID { return r.id }

// Model returns the model name.
func (r *SalesRecord) Model() string { return r.model }

// Year returns the model year.
func (r *SalesRecord) Year() int { return r.year }

// Region returns the sales region.
func (r *SalesRecord) Region() string { return r.region }

// Color returns the vehicle color; empty when not recorded.
func (r *SalesRecord) Color() string { return r.color }

// FuelType returns the fuel type.
func (r *SalesRecord) FuelType() FuelType { return r.fuelType }

// Transmission returns the transmission type.
func (r *SalesRecord) Transmission() Transmission { return r.transmission }

// EngineSizeL returns the engine size in liters; invalid for Electric
// records.
func (r *SalesRecord) EngineSizeL() decimal.NullDecimal { return r.engineSizeL }

// MileageKM returns the mileage in kilometers.
func (r *SalesRecord) MileageKM() int64 { return r.mileageKM }

// PriceUSD returns the unit price.
func (r *SalesRecord) PriceUSD() decimal.Decimal { return r.priceUSD }

// SalesVolume returns the number of units sold.
func (r *SalesRecord) SalesVolume() int64 { return r.salesVolume }

// Classification returns the volume bucket derived from the sales volume.
func (r *SalesRecord) Classification() Classification { return r.classification }

// CreatedAt returns the insertion timestamp.
func (r *SalesRecord) CreatedAt() time.Time { return r.createdAt }

// Revenue returns price times volume for this record.
func (r *SalesRecord) Revenue() decimal.Decimal {
	return r.priceUSD.Mul(decimal.NewFromInt(r.salesVolume))
}

// Clone returns a detached copy.
func (r *SalesRecord) Clone() *SalesRecord {
	if r == nil {
		return nil
	}
	copy := *r
	return &copy
}

// recordJSON is the wire shape of a record.
type recordJSON struct {
	ID             string              `json:"id"`
	Model          string              `json:"model"`
	Year           int                 `json:"year"`
	Region         string              `json:"region"`
	Color          string              `json:"color,omitempty"`
	FuelType       FuelType            `json:"fuel_type"`
	Transmission   Transmission        `json:"transmission"`
	EngineSizeL    decimal.NullDecimal `json:"engine_size_l"`
	MileageKM      int64               `json:"mileage_km"`
	PriceUSD       decimal.Decimal     `json:"price_usd"`
	SalesVolume    int64               `json:"sales_volume"`
	Classification Classification      `json:"sales_classification"`
	CreatedAt      time.Time           `json:"created_at"`
}

// MarshalJSON encodes the record for API responses.
func (r *SalesRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:             r.id.String(),
		Model:          r.model,
		Year:           r.year,
		Region:         r.region,
		Color:          r.color,
		FuelType:       r.fuelType,
		Transmission:   r.transmission,
		EngineSizeL:    r.engineSizeL,
		MileageKM:      r.mileageKM,
		PriceUSD:       r.priceUSD,
		SalesVolume:    r.salesVolume,
		Classification: r.classification,
		CreatedAt:      r.createdAt,
	})
}
