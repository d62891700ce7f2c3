package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/infra/backends"
	"birthday_reminder/internal/infra/config"
	"birthday_reminder/internal/infra/discord"
	"birthday_reminder/internal/infra/interactions"
	"birthday_reminder/internal/infra/logger"

	"github.com/gin-gonic/gin"
)

// Discord expects an interaction response within 3 seconds.
const (
	readTimeout     = 3 * time.Second
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return 1
	}
	if err := cfg.ValidateInteractions(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return 1
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")

	verifier, err := discord.NewVerifier(cfg.DiscordPublicKey, time.Now)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := backends.NewRepository(ctx, cfg)
	if err != nil {
		mainLogger.WithError(err).Error("Could not initialize record store")
		return 1
	}
	defer closeRepo()

	registration := app.NewRegistrationService(repo, logger.Component("registration_service"))

	if cfg.Environment == "production" || cfg.Environment == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	interactions.RegisterRoutes(router, interactions.NewHandler(verifier, registration, logger.Component("interactions")))

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		mainLogger.WithField("addr", cfg.ListenAddr).Info("Interactions endpoint listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			mainLogger.WithError(err).Error("Interactions server failed")
			return 1
		}
	case <-ctx.Done():
		mainLogger.Info("Shutting down interactions endpoint...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		mainLogger.WithError(err).Error("Graceful shutdown failed")
		return 1
	}
	mainLogger.Info("Interactions endpoint shut down gracefully.")
	return 0
}
