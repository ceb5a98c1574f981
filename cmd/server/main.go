// Package main initializes and starts the inventory HTTP server, setting up
// configuration, logging, the database connection, repositories, services
// and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/lionscars/inventory/internal/config"
	"github.com/lionscars/inventory/internal/db"
	"github.com/lionscars/inventory/internal/logger"
	"github.com/lionscars/inventory/internal/repository"
	"github.com/lionscars/inventory/internal/server/handler/http"
	"github.com/lionscars/inventory/internal/service"
	"github.com/lionscars/inventory/internal/upload"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for vehicles and reference data.
	vehicleRepo := repository.NewPostgresVehicleRepository(postgresDB)
	referenceRepo := repository.NewPostgresReferenceRepository(postgresDB)

	// Initialize business-logic services.
	vehicleService := service.NewVehicleService(vehicleRepo)
	referenceService := service.NewReferenceService(referenceRepo)

	// Image store for uploaded vehicle photos.
	imageStore := upload.NewStore(options.UploadDir, "/autoefec")

	// Create HTTP handlers.
	vehicleHandler := &http.VehicleHandler{VehicleService: vehicleService, Log: zapLogger}
	referenceHandler := &http.ReferenceHandler{ReferenceService: referenceService, Log: zapLogger}
	authHandler := &http.AuthHandler{AuthService: referenceService}
	uploadHandler := &http.UploadHandler{Store: imageStore, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(vehicleHandler, referenceHandler, authHandler, uploadHandler, options.UploadDir, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	// Serve until SIGINT/SIGTERM, then drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
