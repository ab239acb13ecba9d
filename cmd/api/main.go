package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/hse-assistant/internal/application"
	appai "github.com/bryanwahyu/hse-assistant/internal/application/ai"
	appreports "github.com/bryanwahyu/hse-assistant/internal/application/reports"
	"github.com/bryanwahyu/hse-assistant/internal/config"
	domai "github.com/bryanwahyu/hse-assistant/internal/domain/ai"
	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
	"github.com/bryanwahyu/hse-assistant/internal/infra/ai/offline"
	"github.com/bryanwahyu/hse-assistant/internal/infra/ai/openai"
	"github.com/bryanwahyu/hse-assistant/internal/infra/httpserver"
	"github.com/bryanwahyu/hse-assistant/internal/infra/memory"
	"github.com/bryanwahyu/hse-assistant/internal/middleware"
	"github.com/bryanwahyu/hse-assistant/internal/pkg/logger"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer appLog.Sync()
	ctx := context.Background()

	// init ai client
	var client domai.Client
	switch cfg.AI.Provider {
	case "offline":
		client = offline.NewClient()
		appLog.Warnf(ctx, "ai provider is offline: assessments come from keyword rules")
	default:
		client = openai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	}
	analyzer := appai.NewService(client, appLog)
	analyzer.OnCoerced = middleware.IncrementSeverityCoerced

	// init service
	svc := appreports.NewService(memory.NewReportRepository(), analyzer, appLog)
	svc.Clock = application.SystemClock{}
	svc.Metrics = middleware.AppMetrics{}
	svc.MaxImageBytes = cfg.Upload.MaxImageBytes
	svc.DefaultLanguage = domain.Language(cfg.Server.DefaultLanguage)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
	defer limiter.Close()

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, httpserver.Options{
		Log:             appLog,
		DefaultLanguage: svc.DefaultLanguage,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimiter:     limiter,
		HealthCheckers: map[string]middleware.HealthChecker{
			"ai": middleware.CheckFunc(func(context.Context) error {
				if cfg.AI.Provider == "openai" && cfg.AI.APIKey == "" {
					return errors.New("api key missing")
				}
				return nil
			}),
		},
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// a multimodal analysis can take most of a minute
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		appLog.Infof(ctx, "server listening on %s provider=%s model=%s", addr, cfg.AI.Provider, cfg.AI.Model)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	appLog.Infof(ctx, "shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		appLog.Errorf(ctx, "shutdown error: %v", err)
	}
}
