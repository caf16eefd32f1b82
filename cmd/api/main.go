package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gotasapp/nft-sync-engine/internal/adapter"
	"github.com/gotasapp/nft-sync-engine/internal/api/middleware"
	"github.com/gotasapp/nft-sync-engine/internal/api/rest"
	"github.com/gotasapp/nft-sync-engine/internal/api/server"
	"github.com/gotasapp/nft-sync-engine/internal/cache"
	"github.com/gotasapp/nft-sync-engine/internal/config"
	"github.com/gotasapp/nft-sync-engine/internal/keys"
	"github.com/gotasapp/nft-sync-engine/internal/ledger"
	"github.com/gotasapp/nft-sync-engine/internal/logger"
	"github.com/gotasapp/nft-sync-engine/internal/metadata"
	"github.com/gotasapp/nft-sync-engine/internal/reconcile"
	"github.com/gotasapp/nft-sync-engine/internal/store"
	syncpkg "github.com/gotasapp/nft-sync-engine/internal/sync"
	"github.com/gotasapp/nft-sync-engine/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	migrate    = flag.Bool("migrate", false, "Run schema migration on startup")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting NFT sync engine API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	if *migrate {
		if err := store.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Schema migration complete")
	}

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	httpClient := adapter.NewHTTPClient(cfg.URI.HTTPTimeout)
	dialer := adapter.NewEthClientDialer()

	// Dial one ledger reader per configured chain
	ledgers := ledger.Registry{}
	defer ledgers.Close()
	for _, chainCfg := range cfg.Chains {
		client, err := dialer.Dial(ctx, chainCfg.RPCURL)
		if err != nil {
			logger.Fatal("Failed to dial chain RPC",
				zap.String("chain", string(chainCfg.ChainID)), zap.Error(err))
		}
		ledgers[chainCfg.ChainID] = ledger.NewEVMReader(
			chainCfg.ChainID, chainCfg.NFTContract, chainCfg.MarketplaceContract, client)
		logger.InfoCtx(ctx, "Connected to chain RPC",
			zap.String("chain", string(chainCfg.ChainID)))
	}

	// Wire core components
	uriResolver := uri.NewResolver(cfg.URI.IPFSGateway)
	cacheStore := cache.NewStore(dataStore, jsonAdapter, clock)
	keyResolver := keys.NewResolver(dataStore)
	metadataResolver := metadata.NewResolver(dataStore, cacheStore, keyResolver, ledgers, uriResolver, httpClient, jsonAdapter)
	orchestrator := syncpkg.NewOrchestrator(cfg.Sync, cfg.Chains, dataStore, keyResolver, ledgers, uriResolver, httpClient, jsonAdapter, jcsAdapter, clock)
	engine := reconcile.NewEngine(dataStore, ledgers, clock)

	handler := rest.NewHandler(cfg.Chains, cfg.Cache, dataStore, keyResolver, metadataResolver, ledgers, orchestrator, engine)

	// Create and start server
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Fresh timeout context; the run context is already canceled
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
