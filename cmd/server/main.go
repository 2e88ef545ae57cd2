package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/padraigk/florin/internal/api"
	"github.com/padraigk/florin/internal/assistant"
	"github.com/padraigk/florin/internal/auth"
	"github.com/padraigk/florin/internal/config"
	"github.com/padraigk/florin/internal/db"
	"github.com/padraigk/florin/internal/llm"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	if cfg.Debug {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	database, err := db.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to initialize database",
			zap.Error(err),
			zap.String("dbPath", cfg.DBPath))
	}
	defer database.Close()

	oracle, err := llm.New(cfg.OracleBaseURL, cfg.OracleAPIKey, cfg.OracleModel)
	if err != nil {
		logger.Fatal("failed to initialize completion client", zap.Error(err))
	}

	svc := assistant.New(database, oracle, logger)
	authMgr := auth.NewManager(cfg.JWTSecret)
	handler := api.NewHandler(database, svc, authMgr, logger)

	mux := http.NewServeMux()
	handler.Routes(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler.WithRequestID(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
