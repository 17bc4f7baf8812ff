// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/flightwise-ai/travel-assistant/internal/config"
	"github.com/flightwise-ai/travel-assistant/internal/flights"
	"github.com/flightwise-ai/travel-assistant/internal/handler"
	"github.com/flightwise-ai/travel-assistant/internal/llm"
	"github.com/flightwise-ai/travel-assistant/internal/memory"
	"github.com/flightwise-ai/travel-assistant/internal/middleware"
	"github.com/flightwise-ai/travel-assistant/internal/service"
	"github.com/flightwise-ai/travel-assistant/pkg/logger"
	"github.com/flightwise-ai/travel-assistant/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "travel-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Initialize LLM client
	llmClient, err := llm.NewGemini(llm.GeminiConfig{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		BaseURL:     cfg.GeminiBaseURL,
		Timeout:     cfg.GeminiTimeout,
		MaxAttempts: cfg.GeminiMaxAttempts,
		RetryUnit:   cfg.GeminiRetryUnit,
	}, log)
	if err != nil {
		log.Error("failed to create Gemini client", zap.Error(err))
		os.Exit(1)
	}

	// Initialize flight search client
	flightClient, err := flights.NewSerpClient(flights.SerpConfig{
		APIKey:  cfg.SerpAPIKey,
		BaseURL: cfg.SerpAPIBaseURL,
		Timeout: cfg.SerpAPITimeout,
	}, log)
	if err != nil {
		log.Error("failed to create flight search client", zap.Error(err))
		os.Exit(1)
	}

	// Initialize conversation store and chat service
	store := memory.NewInMemory()
	chatSvc := service.NewChatService(store, llmClient, flightClient, cfg.HistoryLimit, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(cfg)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	promptHandler := handler.NewPromptHandler(llmClient, log)
	debugHandler := handler.NewDebugHandler(flightClient, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/chat", chatHandler.Chat)
		r.Route("/chat/sessions/{id}", func(r chi.Router) {
			r.Get("/history", chatHandler.History)
			r.Delete("/", chatHandler.DeleteSession)
		})

		r.Post("/prompt", promptHandler.Ask)

		r.Route("/test", func(r chi.Router) {
			r.Get("/flights", debugHandler.Flights)
			r.Get("/airport-code", debugHandler.AirportCode)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
