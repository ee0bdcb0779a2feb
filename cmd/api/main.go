package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/goodplates/recipes-api/internal/api"
	"github.com/goodplates/recipes-api/internal/core/service"
	"github.com/goodplates/recipes-api/internal/infrastructure/db/mongo"
	"github.com/goodplates/recipes-api/internal/infrastructure/db/redis"
	"github.com/goodplates/recipes-api/internal/infrastructure/queue"
	"github.com/goodplates/recipes-api/internal/pkg/config"
	"github.com/goodplates/recipes-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Recipes API
// @version      1.0
// @description  Recipe management service with role-based access control.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	userService := service.NewUserService(mongo.NewUserRepository(db), log)
	if err := userService.EnsureDefaultAdmin(ctx, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("default admin bootstrap failed")
	}

	dispatcher := queue.NewDispatcher(0, mongo.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongodriver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewTagRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewIngredientRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewRecipeRepository(db).EnsureIndexes(ctx)
}
