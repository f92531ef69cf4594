// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vikrant8989/Drop-Go/internal/config"
	httptransport "github.com/vikrant8989/Drop-Go/internal/http"
	"github.com/vikrant8989/Drop-Go/internal/infra"
	"github.com/vikrant8989/Drop-Go/internal/logger"
	"github.com/vikrant8989/Drop-Go/internal/maps"
	"github.com/vikrant8989/Drop-Go/internal/modules/order"
	"github.com/vikrant8989/Drop-Go/internal/modules/pricing"
	"github.com/vikrant8989/Drop-Go/internal/modules/store"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("DROPGO_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatal("firebase init", zap.Error(err))
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	if cfg.Maps.APIKey == "" {
		log.Fatal("DROPGO_MAPS_API_KEY is required")
	}
	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal("maps init", zap.Error(err))
	}
	distanceSvc, err := maps.NewDistanceService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal("maps init", zap.Error(err))
	}

	pricingSvc := pricing.NewService()

	storeSvc := store.NewService(store.NewPGStore(dbPool, redisClient), cfg.Search, log)

	orderSvc := order.NewService(order.NewStore(dbPool), pricingSvc, storeSvc, distanceSvc, log)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Order:    orderSvc,
		Store:    storeSvc,
		Places:   placesSvc,
		Verifier: verifier,
		Log:      log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server", zap.Error(err))
	}
}
