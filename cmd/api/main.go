package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sellerops/commercedesk/internal/api"
	"github.com/sellerops/commercedesk/internal/config"
	"github.com/sellerops/commercedesk/internal/store"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	server := api.NewServer(cfg, store.New(), log)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Shutdown error")
		}
	}()

	log.WithField("port", cfg.Server.Port).Info("Starting server")
	if err := server.Start(context.Background()); err != nil {
		log.WithError(err).Info("Server stopped")
	}
}
