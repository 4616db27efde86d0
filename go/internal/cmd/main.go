package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rosepool/rosepool/go/internal/draft/gateway"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := defaultConfig()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if cfg.NATS.URL == "" {
		cfg.NATS.URL = os.Getenv("NATS_URL")
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatalf("Failed to setup database: %v", err)
	}
	defer database.Close()

	services := setupServices(database, cfg)
	server := setupServer(services)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background workers: turn orchestrator, outbox shipper, WebSocket fan-out.
	go func() {
		if err := services.Orchestrator.RunScheduler(ctx); err != nil {
			zlog.Error().Err(err).Msg("orchestrator stopped")
		}
	}()

	if services.OutboxListener != nil {
		go func() {
			if err := services.OutboxListener.Start(ctx); err != nil {
				zlog.Error().Err(err).Msg("outbox listener stopped")
			}
		}()
	} else {
		if err := services.OutboxWorker.Start(ctx); err != nil {
			log.Fatalf("Failed to start outbox worker: %v", err)
		}
	}

	go services.ConnectionManager.Start(ctx)

	if cfg.NATS.URL != "" {
		consumerCfg := gateway.DefaultJetStreamConsumerConfig()
		consumerCfg.URL = cfg.NATS.URL
		consumer, err := gateway.NewEventConsumer(services.ConnectionManager, consumerCfg)
		if err != nil {
			zlog.Error().Err(err).Msg("failed to start gateway event consumer")
		} else {
			go func() {
				if err := consumer.Start(ctx); err != nil {
					zlog.Error().Err(err).Msg("gateway event consumer stopped")
				}
			}()
			defer consumer.Stop()
		}
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	cancel()

	if services.OutboxListener != nil {
		if err := services.OutboxListener.Stop(); err != nil {
			log.Printf("Outbox listener stop: %v", err)
		}
	} else if err := services.OutboxWorker.Stop(); err != nil {
		log.Printf("Outbox worker stop: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
