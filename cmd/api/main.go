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

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	_ "github.com/homeharbor/harbor-api/docs"
	"github.com/homeharbor/harbor-api/internal/api"
	"github.com/homeharbor/harbor-api/internal/core/ports"
	"github.com/homeharbor/harbor-api/internal/core/service"
	"github.com/homeharbor/harbor-api/internal/infrastructure/db/memory"
	"github.com/homeharbor/harbor-api/internal/infrastructure/db/mongo"
	redisstore "github.com/homeharbor/harbor-api/internal/infrastructure/db/redis"
	"github.com/homeharbor/harbor-api/internal/infrastructure/queue"
	"github.com/homeharbor/harbor-api/internal/infrastructure/security"
	"github.com/homeharbor/harbor-api/internal/pkg/config"
	"github.com/homeharbor/harbor-api/pkg/logger"
)

const (
	serviceName     = "harbor-api"
	shutdownTimeout = 10 * time.Second
)

// @title                       HomeHarbor API
// @version                     1.0
// @description                 Building management: accounts, approvals, directory, maintenance and notices.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})
	log.Info().
		Str("env", cfg.Env).
		Str("store", cfg.StoreBackend).
		Msg("starting harbor-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

// run wires the backends and serves HTTP until ctx is cancelled. Backends
// opened here are always closed before it returns.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer stores.close(log)

	notifications := service.NewNotificationService(
		memory.NewNotificationRepository(memory.SeedNotifications(time.Now())),
		logger.Component("notifications"),
	)
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notifications, logger.Component("dispatcher"))

	authSvc, err := service.NewAuthService(
		stores.accounts,
		security.NewBcryptHasher(cfg.BcryptCost),
		dispatcher,
		service.AuthConfig{
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.JWTTTL,
			Latency:   cfg.AuthLatency,
		},
		logger.Component("auth"),
	)
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}
	if _, err := authSvc.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	router := api.NewRouter(api.Dependencies{
		Auth:          authSvc,
		Directory:     service.NewDirectoryService(memory.NewApartmentRepository(nil)),
		Tasks:         service.NewTaskService(stores.tasks, dispatcher, logger.Component("tasks")),
		Notifications: notifications,
		Idempotency:   stores.idempotency,
		Mongo:         stores.mongoDB,
		Redis:         stores.redis,
		JWTSecret:     cfg.JWTSecret,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type backends struct {
	accounts    ports.AccountRepository
	tasks       ports.TaskRepository
	idempotency ports.IdempotencyStore

	mongoClient *mongodrv.Client
	mongoDB     *mongodrv.Database
	redis       *redis.Client
}

// openStores picks the account and task backends from STORE_BACKEND and the
// idempotency backend from REDIS_ADDR. Memory is the default for both.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	s := &backends{
		accounts:    memory.NewAccountRepository(),
		tasks:       memory.NewTaskRepository(memory.SeedTasks(time.Now())),
		idempotency: memory.NewIdempotencyStore(),
	}

	if cfg.StoreBackend == config.BackendMongo {
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, err
		}
		s.mongoClient, s.mongoDB = client, db

		accounts := mongo.NewAccountRepository(db)
		tasks := mongo.NewTaskRepository(db)
		if err := prepareMongo(ctx, accounts, tasks); err != nil {
			s.close(log)
			return nil, err
		}
		s.accounts, s.tasks = accounts, tasks
		log.Info().Str("db", cfg.Mongo.Database).Msg("mongodb connected")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:       cfg.Redis.Addr,
			DB:         cfg.Redis.DB,
			ClientName: serviceName,
		})
		if err != nil {
			s.close(log)
			return nil, err
		}
		s.redis = rdb
		s.idempotency = redisstore.NewIdempotencyStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	return s, nil
}

func prepareMongo(ctx context.Context, accounts *mongo.AccountRepository, tasks *mongo.TaskRepository) error {
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := tasks.EnsureIndexes(ctx); err != nil {
		return err
	}
	return tasks.SeedIfEmpty(ctx, memory.SeedTasks(time.Now()))
}

func (s *backends) close(log zerolog.Logger) {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}
	if s.mongoClient != nil {
		if err := mongo.Disconnect(context.Background(), s.mongoClient); err != nil {
			log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}
}
