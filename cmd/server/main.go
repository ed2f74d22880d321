package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/FrancoGastia/AI-Travel-Companion/internal/assistant"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/config"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/handlers"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/logger"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/middleware"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/notify"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/observability"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/scanner"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/session"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/telemetry"
	"github.com/FrancoGastia/AI-Travel-Companion/internal/weather"
)

const serviceName = "travel-companion-api"

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Bool("weather_configured", cfg.WeatherAPIKey != ""),
		zap.Bool("chat_backend_configured", cfg.ChatAPIKey != ""),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	metrics := observability.NewMetrics()

	// Weather lookup, falls back to canned readings without an API key
	weatherClient := weather.NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, zapLogger)
	if cfg.WeatherAPIKey == "" {
		zapLogger.Warn("weather_api_key_not_configured_using_fallback_readings")
	}

	composer := assistant.NewComposer(weatherClient)

	var backend assistant.ChatBackend
	backendMode := assistant.SourceLocal
	if cfg.ChatAPIKey != "" {
		backend = assistant.NewOpenAIBackend(cfg.ChatAPIKey, cfg.ChatBaseURL, cfg.ChatModel, zapLogger)
		backendMode = assistant.SourceBackend
		zapLogger.Info("chat_backend_enabled", zap.String("model", cfg.ChatModel))
	}
	service := assistant.NewService(backend, composer, zapLogger)

	store := session.NewStore()

	rules, err := notify.LoadRulesFile(cfg.RulesFile)
	if err != nil {
		zapLogger.Fatal("failed_to_load_notification_rules", zap.Error(err))
	}
	engine := notify.NewEngine(store, weatherClient, rules)

	// Background scanner
	scanCtx, scanCancel := context.WithCancel(context.Background())
	defer scanCancel()
	bgScanner := scanner.New(store, engine, scanner.LogDelivery{Logger: zapLogger}, scanner.Config{
		Interval:     cfg.ScanInterval,
		ActiveWindow: cfg.ActiveWindow,
		SessionTTL:   cfg.SessionTTL,
	}, zapLogger, metrics)
	go func() {
		if err := bgScanner.Start(scanCtx); err != nil && err != context.Canceled {
			zapLogger.Error("scanner_stopped_with_error", zap.Error(err))
		}
	}()
	zapLogger.Info("started_notification_scanner",
		zap.Duration("interval", cfg.ScanInterval),
		zap.Duration("active_window", cfg.ActiveWindow),
	)

	// Handlers
	chatHandler := handlers.NewChatHandler(service, store, metrics, zapLogger)
	userContextHandler := handlers.NewUserContextHandler(store, zapLogger)
	notificationsHandler := handlers.NewNotificationsHandler(engine, metrics, zapLogger)
	weatherHandler := handlers.NewWeatherHandler(weatherClient, metrics, zapLogger)
	healthChecker := handlers.NewHealthChecker(store, backendMode)

	// Setup router
	r := mux.NewRouter()

	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware(serviceName))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	rateLimitMW, err := middleware.RateLimit(cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	// Public routes (no rate limiting for health checks)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(rateLimitMW)
	chatHandler.RegisterRoutes(apiRouter)
	userContextHandler.RegisterRoutes(apiRouter)
	notificationsHandler.RegisterRoutes(apiRouter)
	weatherHandler.RegisterRoutes(apiRouter)

	// Catch-all OPTIONS handler for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	scanCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
