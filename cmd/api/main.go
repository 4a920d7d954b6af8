// @title                       Real-estate CRM API
// @version                     1.0
// @description                 Leads, properties, visits and commissions for a real-estate agency.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/recrm/crm-api/internal/api"
	"github.com/recrm/crm-api/internal/api/handler"
	"github.com/recrm/crm-api/internal/core/service"
	"github.com/recrm/crm-api/internal/infrastructure/config"
	"github.com/recrm/crm-api/internal/infrastructure/db/mongo"
	"github.com/recrm/crm-api/internal/infrastructure/db/redis"
	"github.com/recrm/crm-api/internal/infrastructure/queue"
	"github.com/recrm/crm-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "crm-api",
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}

	users := mongo.NewUserRepository(db)
	leads := mongo.NewLeadRepository(db)
	properties := mongo.NewPropertyRepository(db)
	visits := mongo.NewVisitRepository(db)
	commissions := mongo.NewCommissionRepository(db)
	activityRepo := mongo.NewActivityRepository(db)
	revocations := redis.NewRevocationStore(redisClient)

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.Auth.TokenTTL)
	transitions := cfg.TransitionPolicy()

	activities := service.NewActivityService(activityRepo, leads)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activities, log.With().Str("component", "activity_dispatcher").Logger())
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	e, err := api.NewRouter(api.Services{
		Tokens:      tokens,
		Identities:  tokens,
		Revocations: revocations,
		Auth:        service.NewAuthService(users, revocations, tokens),
		Leads:       service.NewLeadService(leads, dispatcher, transitions, log),
		Properties:  service.NewPropertyService(properties, transitions, log),
		Visits:      service.NewVisitService(visits, leads, properties, users, dispatcher, transitions, log),
		Commissions: service.NewCommissionService(commissions, properties, users, log),
		Activities:  activities,
		Analytics:   service.NewAnalyticsService(mongo.NewAnalyticsRepository(db), users),
	}, api.Options{
		Logger: log,
		Cookie: handler.CookieSettings{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			MaxAge: cfg.Auth.TokenTTL,
		},
		Health: map[string]handler.Pinger{
			"mongodb": mongo.Pinger{DB: db},
			"redis":   redis.Pinger{Client: redisClient},
		},
	})
	if err != nil {
		stopWorkers()
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("transitions", string(transitions.Mode)).
			Bool("backdoor", handler.BackdoorEnabled).
			Msg("http server started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server failure")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	stopWorkers()
	dispatcher.Wait()

	_ = redisClient.Close()
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("shutdown complete")
	return nil
}
