package application

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines report branding and layout.
type Config struct {
	Title         string   `yaml:"title"`
	Subtitle      string   `yaml:"subtitle"`
	CurrencyLabel string   `yaml:"currency_label"`
	TopModelLimit int      `yaml:"top_model_limit"`
	Sheets        []string `yaml:"sheets"`
}

// Workbook sheet names; the Sheets config entry selects a subset of
// these, empty meaning all.
const (
	SheetRawData         = "Raw_Data"
	SheetExecutive       = "Executive_Summary"
	SheetRegional        = "Regional_Performance"
	SheetModels          = "Model_Analytics"
	SheetTopModels       = "Top_Models"
	SheetYoYTrends       = "YoY_Trends"
	SheetFuelTrends      = "Fuel_Type_Trends"
	SheetYearly          = "Yearly_Summary"
	SheetTransmissionMix = "Transmission_Mix"
	SheetSegmentMix      = "Segment_Mix"
)

// AllSheets lists every workbook sheet in render order.
var AllSheets = []string{
	SheetRawData,
	SheetExecutive,
	SheetRegional,
	SheetModels,
	SheetTopModels,
	SheetYoYTrends,
	SheetFuelTrends,
	SheetYearly,
	SheetTransmissionMix,
	SheetSegmentMix,
}

// LoadConfig loads report configuration from yaml or env. The yaml file
// named by SALES_REPORT_CONFIG overrides the defaults; individual env
// variables fill any fields the file leaves empty.
func LoadConfig() (Config, error) {
	cfg := Config{
		Title:         getenvDefault("SALES_REPORT_TITLE", "BMW Sales Deep Dive Analysis"),
		Subtitle:      getenvDefault("SALES_REPORT_SUBTITLE", "2010-2024"),
		CurrencyLabel: getenvDefault("SALES_REPORT_CURRENCY", "USD"),
		TopModelLimit: getenvIntDefault("SALES_REPORT_TOP_MODELS", 10),
	}

	if path := os.Getenv("SALES_REPORT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Title == "" {
		cfg.Title = "BMW Sales Deep Dive Analysis"
	}
	if cfg.TopModelLimit <= 0 {
		cfg.TopModelLimit = 10
	}
	if len(cfg.Sheets) == 0 {
		cfg.Sheets = AllSheets
	}
	return cfg, nil
}

// WantsSheet reports whether the config selects a workbook sheet.
func (c Config) WantsSheet(name string) bool {
	for _, sheet := range c.Sheets {
		if sheet == name {
			return true
		}
	}
	return false
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
