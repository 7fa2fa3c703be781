package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"order-ranking-service/internal/adapters/cache"
	"order-ranking-service/internal/adapters/geocoding"
	"order-ranking-service/internal/adapters/repositories"
	"order-ranking-service/internal/api"
	"order-ranking-service/internal/config"
	"order-ranking-service/internal/platform/db"
	"order-ranking-service/internal/platform/obs"
	"order-ranking-service/internal/ports"
	"order-ranking-service/internal/services"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// main is the application composition root.
// It wires concrete adapters (Postgres, coordinate cache, geocoder) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	obs.SetupLogger(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := repositories.InitSchema(database); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	coordCache, closeCache, err := newCoordinateCache(ctx, g, cfg.Cache, database)
	if err != nil {
		return err
	}
	defer closeCache()

	resolver, err := services.NewCoordinateResolver(
		newGeocoder(cfg.Geocoder),
		coordCache,
		cfg.Geocoder.APIKey,
		services.WithRateLimit(cfg.Geocoder.RPS, cfg.Geocoder.Burst),
	)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Orders:         repositories.NewPostgresOrderRepository(database),
		Menu:           repositories.NewPostgresMenuRepository(database),
		Resolver:       resolver,
		RankWorkers:    cfg.RankWorkers,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Timeouts are tuned for cold-cache ranking (external geocoder latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("geocoder", cfg.Geocoder.Provider).
			Str("cache", cfg.Cache.Backend).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}

// newCoordinateCache builds the configured cache backend. Backends that can
// sweep expired entries get a background sweeper on g when an interval is set.
func newCoordinateCache(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.CacheConfig,
	database *sql.DB,
) (ports.CoordinateCache, func(), error) {
	noop := func() {}

	var (
		c       ports.CoordinateCache
		sweeper cache.Sweeper
		closeFn = noop
	)

	switch cfg.Backend {
	case config.CacheBackendRedis:
		rc, err := cache.NewRedisCoordinateCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
		if err != nil {
			return nil, noop, err
		}
		c = rc
		closeFn = func() {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("close redis coordinate cache")
			}
		}
	case config.CacheBackendPostgres:
		sc := cache.NewSQLCoordinateCache(database, cfg.TTL)
		c, sweeper = sc, sc
	default:
		mc := cache.NewMemoryCoordinateCache(cfg.TTL, nil)
		c, sweeper = mc, mc
	}

	if sweeper != nil && cfg.SweepInterval > 0 {
		g.Go(func() error {
			cache.RunSweeper(ctx, sweeper, cfg.SweepInterval)
			return nil
		})
	}

	return c, closeFn, nil
}

func newGeocoder(cfg config.GeocoderConfig) ports.Geocoder {
	clientCfg := geocoding.ClientConfig{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
	}

	if cfg.Provider == config.GeocoderORS {
		return geocoding.NewORSGeocoder(clientCfg)
	}
	return geocoding.NewYandexGeocoder(clientCfg)
}
