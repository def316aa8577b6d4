package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/janedoe/portfolio-server/internal/api"
	"github.com/janedoe/portfolio-server/internal/auth"
	"github.com/janedoe/portfolio-server/internal/config"
	"github.com/janedoe/portfolio-server/internal/core"
	"github.com/janedoe/portfolio-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	seedFlag := flag.Bool("seed", false, "Seed the store with demo content and exit")
	flag.Parse()

	dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer dbStore.Close()

	if *seedFlag {
		if err := dbStore.SeedDemoData(); err != nil {
			logger.Fatal("seeding failed", zap.Error(err))
		}
		logger.Info("demo content seeded")
		os.Exit(0)
	}

	completer, err := core.NewGeminiGateway(context.Background(), cfg.GeminiAPIKey,
		cfg.ChatModel, cfg.ChatTemperature, cfg.ChatMaxTokens)
	if err != nil {
		logger.Fatal("failed to initialize completion gateway", zap.Error(err))
	}
	defer completer.Close()

	// The whole dependency graph is built here, once, and handed down.
	builder := core.NewContextBuilder(dbStore)
	conversations := core.NewConversationService(dbStore, builder, completer, logger)
	voice := core.NewVoiceGateway(core.VoiceConfig{
		APIKey:       cfg.VoiceAPIKey,
		VoiceID:      cfg.VoiceID,
		Model:        cfg.VoiceModel,
		Stability:    cfg.VoiceStability,
		Similarity:   cfg.VoiceSimilarity,
		Style:        cfg.VoiceStyle,
		SpeakerBoost: cfg.VoiceSpeakerBoost,
	}, logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	handler := api.NewAPIHandler(dbStore, conversations, voice, tokens, cfg.AdminPasswordHash, logger)
	router := api.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "DEBUG" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
