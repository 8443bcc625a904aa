package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	deliveryHTTP "github.com/icanh/registro-vehiculos/internal/delivery/http"
	"github.com/icanh/registro-vehiculos/internal/pkg/config"
	"github.com/icanh/registro-vehiculos/internal/pkg/database"
	"github.com/icanh/registro-vehiculos/internal/pkg/logger"
	"github.com/icanh/registro-vehiculos/internal/pkg/metrics"
	"github.com/icanh/registro-vehiculos/internal/pkg/redis"
	"github.com/icanh/registro-vehiculos/internal/repository"
	"github.com/icanh/registro-vehiculos/internal/repository/cached"
	"github.com/icanh/registro-vehiculos/internal/repository/postgres"
	"github.com/icanh/registro-vehiculos/internal/usecase/marca"
	"github.com/icanh/registro-vehiculos/internal/usecase/persona"
	"github.com/icanh/registro-vehiculos/internal/usecase/vehiculo"
)

func main() {
	// =========================================================================
	// Configuración
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting registro-vehiculos API server")

	// =========================================================================
	// PostgreSQL y migraciones
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(&cfg.Database); err != nil {
			log.Fatal("Failed to apply migrations", map[string]interface{}{
				"error": err.Error(),
			})
		}
		log.Info("Database migrations applied")
	}

	// =========================================================================
	// Redis (opcional: sin él, el servicio corre sin caché de marcas)
	// =========================================================================

	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis is not available, running without marca cache", map[string]interface{}{
				"error": err.Error(),
			})
			cache = nil
		} else {
			defer func() { _ = cache.Close() }()
			log.Info("Connected to Redis", map[string]interface{}{
				"addr": cfg.Redis.Address(),
			})
		}
	}

	// =========================================================================
	// Métricas
	// =========================================================================

	if err := metrics.Register(nil); err != nil {
		log.Fatal("Failed to register metrics", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// =========================================================================
	// Repositories
	// =========================================================================

	var marcaRepo repository.MarcaRepository = postgres.NewMarcaRepository(db)
	if cache != nil {
		marcaRepo = cached.NewMarcaRepository(marcaRepo, cache)
	}
	personaRepo := postgres.NewPersonaRepository(db)
	vehiculoRepo := postgres.NewVehiculoRepository(db)

	log.Info("Repositories initialized")

	// =========================================================================
	// Use case services
	// =========================================================================

	marcaService := marca.NewService(marcaRepo, log)
	personaService := persona.NewService(personaRepo, log)
	vehiculoService := vehiculo.NewService(vehiculoRepo, marcaRepo, personaRepo, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// HTTP handlers y router
	// =========================================================================

	marcaHandler := deliveryHTTP.NewMarcaHandler(marcaService, log)
	personaHandler := deliveryHTTP.NewPersonaHandler(personaService, log)
	vehiculoHandler := deliveryHTTP.NewVehiculoHandler(vehiculoService, log)

	router := deliveryHTTP.NewRouter(
		marcaHandler,
		personaHandler,
		vehiculoHandler,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Servidor HTTP
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
