package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/guild-hub/guild-hub/internal/api/http"
	appInventory "github.com/guild-hub/guild-hub/internal/application/inventory"
	appMember "github.com/guild-hub/guild-hub/internal/application/member"
	appTrade "github.com/guild-hub/guild-hub/internal/application/trade"
	"github.com/guild-hub/guild-hub/internal/config"
	"github.com/guild-hub/guild-hub/internal/domain/trade"
	"github.com/guild-hub/guild-hub/internal/infrastructure/postgres"
	"github.com/guild-hub/guild-hub/internal/infrastructure/sse"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	inventoryRepo := postgres.NewInventoryRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	tradeRepo := postgres.NewTradeRepository(pool)

	// infrastructure
	sseHub := sse.NewHub(logger)
	defer sseHub.Stop()

	// services
	inventorySvc := appInventory.NewService(inventoryRepo, logger)
	memberSvc := appMember.NewService(memberRepo, sseHub, logger)

	clock := trade.SystemClock{}
	coordinator := appTrade.NewCommitCoordinator(inventorySvc, inventorySvc, cfg.CommitTimeout, logger)
	scheduler := appTrade.NewScheduler(clock)
	tradeStore := appTrade.NewStore(
		inventorySvc,
		coordinator,
		scheduler,
		tradeRepo,
		sseHub,
		clock,
		appTrade.Config{
			InvitationTTL:  cfg.InvitationTTL,
			NegotiationTTL: cfg.NegotiationTTL,
		},
		logger,
	)

	// API server
	apiServer := httpapi.NewServer(tradeStore, inventorySvc, memberSvc, sseHub, cfg.GatewayTokenHash, cfg.TradeXPAward, logger)

	httpServer := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     apiServer.Router(),
		ReadTimeout: 15 * time.Second,
		// No write timeout: /v1/stream connections stay open indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
