package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/storefront/shop-api/internal/api"
	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/core/ports"
	"github.com/storefront/shop-api/internal/core/service"
	"github.com/storefront/shop-api/internal/infrastructure/db/mongo"
	"github.com/storefront/shop-api/internal/infrastructure/db/redis"
	"github.com/storefront/shop-api/internal/infrastructure/db/relational"
	"github.com/storefront/shop-api/internal/infrastructure/queue"
	"github.com/storefront/shop-api/internal/infrastructure/token"
	"github.com/storefront/shop-api/internal/pkg/config"
	"github.com/storefront/shop-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "shop-api",
	})

	if err := run(ctx, stop, cfg, log); err != nil {
		log.Error().Err(err).Msg("shop-api stopped")
		stop()
		os.Exit(1)
	}
}

// run owns every resource it opens; all of them are released before it
// returns, on success and on error alike.
func run(ctx context.Context, stop context.CancelFunc, cfg *config.Config, log zerolog.Logger) error {
	// --- Relational store ---
	db, err := relational.Connect(ctx, relational.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = relational.Close(db) }()

	if err := relational.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	users := relational.NewUserRepository(db)
	categories := relational.NewCategoryRepository(db)
	products := relational.NewProductRepository(db)

	// --- Audit trail (optional) ---
	var (
		auditDB   *gomongo.Database
		auditRepo ports.AuditRepository
		recorder  = service.NopRecorder()
	)
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongo.NewAuditRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not created")
		}

		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, repo, log)
		dispatcher.Start(ctx)
		defer dispatcher.Stop()

		auditDB, auditRepo, recorder = mdb, repo, dispatcher
	} else {
		log.Info().Msg("MONGO_URI not set, audit trail disabled")
	}

	// --- Login throttle (optional) ---
	var (
		rdb      *goredis.Client
		throttle service.LoginThrottle
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		throttle = redis.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Lockout)
	} else {
		log.Info().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	codec, err := token.NewCodec(token.Config{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	})
	if err != nil {
		return fmt.Errorf("token codec: %w", err)
	}

	e, err := api.NewRouter(api.Deps{
		Logger:     log,
		Codec:      codec,
		Auth:       service.NewAuthService(users, codec, throttle, recorder, log),
		Users:      service.NewUserService(users, recorder, log),
		Categories: service.NewCategoryService(categories, recorder, log),
		Products:   service.NewProductService(products, categories, recorder, log),
		Audit:      service.NewAuditService(auditRepo),
		Health:     handler.NewHealthDependenciesHandler(db, auditDB, rdb),
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
		close(serveErr)
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	if err, ok := <-serveErr; ok {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
