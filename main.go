package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	analyticsapp "bmw-sales-analytics/internal/analytics/application"
	analyticshttp "bmw-sales-analytics/internal/analytics/interfaces/http"
	"bmw-sales-analytics/internal/auth"
	"bmw-sales-analytics/internal/observability/metrics"
	reportingapp "bmw-sales-analytics/internal/reporting/application"
	reportinginterfaces "bmw-sales-analytics/internal/reporting/interfaces"
	salesapp "bmw-sales-analytics/internal/sales/application"
	sales "bmw-sales-analytics/internal/sales/domain"
	salesmemory "bmw-sales-analytics/internal/sales/infrastructure/memory"
	salespostgres "bmw-sales-analytics/internal/sales/infrastructure/postgres"
	saleshttp "bmw-sales-analytics/internal/sales/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	metrics.Init()

	var repo sales.RecordRepository
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}

		pgRepo := salespostgres.NewRecordRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pgRepo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			logger.Fatalf("schema error: %v", err)
		}
		repo = pgRepo
		logger.Printf("record store: postgres")
	} else {
		repo = salesmemory.NewRecordRepository()
		logger.Printf("record store: memory")
	}

	reportCfg, err := reportingapp.LoadConfig()
	if err != nil {
		logger.Fatalf("report config error: %v", err)
	}

	recordService := salesapp.NewRecordAppService(repo)
	analyticsService := analyticsapp.NewAnalyticsService(repo)
	reportService := reportingapp.NewReportService(reportCfg, analyticsService, repo, nil)

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/records", saleshttp.NewRecordsHandler(recordService))
	mux.Handle("/api/v1/views/", analyticshttp.NewViewsHandler(analyticsService))
	mux.Handle("/api/v1/growth", analyticshttp.NewGrowthHandler(analyticsService))
	mux.Handle("/api/v1/export/", reportinginterfaces.NewExportHandler(reportService))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	HTTPAddr    string
	DatabaseURL string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		DatabaseURL: getenvDefault("DATABASE_URL", os.Getenv("PG_DSN")),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", os.Getenv("JWT_SECRET")),
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
