package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/vitrine-cloud/vitrine/internal/config"
	mongodb "github.com/vitrine-cloud/vitrine/internal/db/mongo"
	logpkg "github.com/vitrine-cloud/vitrine/internal/logger"
	"github.com/vitrine-cloud/vitrine/internal/metrics"
	attributerepo "github.com/vitrine-cloud/vitrine/internal/repository/attribute"
	"github.com/vitrine-cloud/vitrine/internal/repository/optioncache"
	profilerepo "github.com/vitrine-cloud/vitrine/internal/repository/profile"
	chiTransport "github.com/vitrine-cloud/vitrine/internal/transport/chi"
	attrgroupuc "github.com/vitrine-cloud/vitrine/internal/usecase/attrgroup"
	healthuc "github.com/vitrine-cloud/vitrine/internal/usecase/health"
	listinguc "github.com/vitrine-cloud/vitrine/internal/usecase/listing"
	optionsuc "github.com/vitrine-cloud/vitrine/internal/usecase/options"
	"github.com/vitrine-cloud/vitrine/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting vitrine filter API",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("database", cfg.Database.Database),
	)

	ctx := context.Background()

	store, err := mongodb.NewStore(ctx, mongodb.Config{
		URI:      cfg.Database.URI,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterFilterMetrics()

	// Repositories
	attrRepo := attributerepo.New(store.AttributeGroups())
	if err := attrRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	profRepo := profilerepo.New(store.Profiles())

	// Use case services
	compiler := listinguc.NewCompiler(attrRepo, metrics.FacetObserver{})
	listingSvc := listinguc.New(profRepo, compiler)
	optionsSvc := optionsuc.New(profRepo, attrRepo)
	attrSvc := attrgroupuc.New(attrRepo)

	// Optional Redis cache in front of the option aggregator.
	var optionsProvider interface {
		Get(ctx context.Context) (optionsuc.Options, error)
	} = optionsSvc
	var cachePinger healthuc.Pinger

	if cfg.Cache.Enabled() {
		redisClient, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress: cfg.Cache.Addrs,
			Password:    cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache client", zap.Error(err))
		}
		defer redisClient.Close()

		cache := optioncache.New(
			optionsSvc, redisClient,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.OptionsCacheTotal, logger,
		)
		optionsProvider = cache
		cachePinger = cache
		logger.Info("Facet option cache enabled",
			zap.Strings("addrs", cfg.Cache.Addrs),
			zap.Int("ttl_sec", cfg.Cache.TTLSec),
		)
	}

	healthSvc := healthuc.New(store, cachePinger)

	server := chiTransport.NewServer(
		listingSvc, optionsProvider, attrSvc, healthSvc,
		logger, cfg.Auth.APIKeys, env != "prod",
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer returns JSON instead of a plain text stacktrace on panic.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and
// propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
