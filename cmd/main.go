package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianortiz/auctionEscrow/internal/auction/application"
	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/cristianortiz/auctionEscrow/internal/auction/infra/ledger/memory"
	"github.com/cristianortiz/auctionEscrow/internal/auction/infra/repository/postgres"
	"github.com/cristianortiz/auctionEscrow/internal/auction/infra/rest"
	auctionws "github.com/cristianortiz/auctionEscrow/internal/auction/infra/websocket"
	"github.com/cristianortiz/auctionEscrow/internal/shared/config"
	"github.com/cristianortiz/auctionEscrow/internal/shared/db"
	"github.com/cristianortiz/auctionEscrow/internal/shared/db/migrations"
	"github.com/cristianortiz/auctionEscrow/internal/shared/httpserver"
	"github.com/cristianortiz/auctionEscrow/internal/shared/logger"
	"github.com/cristianortiz/auctionEscrow/internal/shared/websocket"
	"go.uber.org/zap"
)

// store is what a ledger backend provides.
type store interface {
	domain.Store
	domain.Faucet
}

func main() {
	logger := logger.GetLogger()
	defer logger.Sync()

	logger.Info("Starting auction escrow server...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backend store
	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		logger.Info("Running database migrations...")
		if err := migrations.RunMigrations(cfg.MigrationsPath, cfg.DB.DSN()); err != nil {
			logger.Fatal("Database migration failed", zap.Error(err))
		}
		logger.Info("Database migrations completed successfully.")

		pool, err := db.GetPostgresDBPool(ctx, cfg.DB.DSN())
		if err != nil {
			logger.Fatal("Database connection failed", zap.Error(err))
		}
		defer pool.Close()
		backend = postgres.NewStore(pool)
	default:
		logger.Warn("Using in-memory ledger, state is lost on restart")
		backend = memory.NewStore(memory.SystemClock)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	wsHandler := auctionws.NewAuctionWSHandler(nil, hub)
	service := application.NewAuctionService(backend, wsHandler)
	wsHandler.SetService(service)
	go wsHandler.ListenForMessages(ctx)

	var faucet domain.Faucet
	if cfg.EnableFaucet {
		logger.Warn("Faucet enabled, anyone can mint funds")
		faucet = backend
	}

	server := httpserver.NewServer()
	wsHandler.Register(ctx, server.App())
	rest.NewAuctionHandler(service, faucet).Register(server.App())

	if err := server.Start(ctx, cfg.HTTPAddr); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
