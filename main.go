package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	attendanceapp "rollcall-billing/internal/attendance/application"
	attendance "rollcall-billing/internal/attendance/domain"
	attendancepg "rollcall-billing/internal/attendance/infrastructure/postgres"
	attendancesheet "rollcall-billing/internal/attendance/infrastructure/spreadsheet"
	attendancehttp "rollcall-billing/internal/attendance/interfaces/http"
	"rollcall-billing/internal/audit"
	"rollcall-billing/internal/auth"
	billingapp "rollcall-billing/internal/billing/application"
	billing "rollcall-billing/internal/billing/domain"
	billingsheet "rollcall-billing/internal/billing/infrastructure/spreadsheet"
	billinghttp "rollcall-billing/internal/billing/interfaces/http"
	"rollcall-billing/internal/billing/pricing"
	"rollcall-billing/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	metrics.Init()

	var store attendance.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
		store = attendancepg.NewStore(db)
		logger.Printf("attendance store: postgres")
	} else {
		sheetStore, err := attendancesheet.NewStore(cfg.AttendancePath)
		if err != nil {
			logger.Fatalf("attendance store error: %v", err)
		}
		store = sheetStore
		logger.Printf("attendance store: %s", cfg.AttendancePath)
	}

	table, err := pricing.Load(cfg.PricingConfigPath)
	if err != nil {
		logger.Fatalf("pricing config error: %v", err)
	}

	aggregator, err := billing.NewAggregator(table, logger)
	if err != nil {
		logger.Fatalf("aggregator error: %v", err)
	}
	reportWriter, err := billingsheet.NewReportWriter(cfg.BillingPath)
	if err != nil {
		logger.Fatalf("report writer error: %v", err)
	}
	billingService, err := billingapp.NewBillingService(store, aggregator, reportWriter, billingapp.SystemClock{}, logger)
	if err != nil {
		logger.Fatalf("billing service error: %v", err)
	}
	ingestService, err := attendanceapp.NewIngestService(store, logger)
	if err != nil {
		logger.Fatalf("ingest service error: %v", err)
	}

	attendanceHandler, err := attendancehttp.NewHandler(ingestService, logger)
	if err != nil {
		logger.Fatalf("attendance handler error: %v", err)
	}
	billingHandler, err := billinghttp.NewHandler(billingService, audit.NewLogRecorder(logger))
	if err != nil {
		logger.Fatalf("billing handler error: %v", err)
	}

	scheduler, err := billingapp.NewScheduler(cron.New(), billingService, cfg.BillingCron, logger)
	if err != nil {
		logger.Fatalf("scheduler error: %v", err)
	}
	if err := scheduler.Register(); err != nil {
		logger.Fatalf("scheduler register error: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics", "/api/v1/status"}, []string{"/api/v1/attendance"})
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)
	ingestAuth := auth.NewIngestAuthMiddleware([]byte(cfg.IngestSecret), time.Duration(cfg.IngestSkewSeconds)*time.Second)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/attendance", ingestAuth.Wrap(attendanceHandler))
	mux.Handle("/api/v1/status", attendanceHandler)
	mux.Handle("/api/v1/billing/", billingHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL       string
	HTTPAddr          string
	AttendancePath    string
	BillingPath       string
	PricingConfigPath string
	BillingCron       string
	JWTSecret         string
	IngestSecret      string
	IngestSkewSeconds int
}

func loadConfig() config {
	return config{
		DatabaseURL:       getenvDefault("DATABASE_URL", ""),
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		AttendancePath:    getenvDefault("ATTENDANCE_XLSX", "var/attendance.xlsx"),
		BillingPath:       getenvDefault("BILLING_XLSX", "var/billing.xlsx"),
		PricingConfigPath: getenvDefault("PRICING_CONFIG", ""),
		BillingCron:       getenvDefault("BILLING_CRON", billingapp.DefaultCronSpec),
		JWTSecret:         getenvDefault("JWT_SECRET", ""),
		IngestSecret:      getenvDefault("INGEST_SECRET", ""),
		IngestSkewSeconds: getenvIntDefault("INGEST_MAX_SKEW_SECONDS", 300),
	}
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

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}
