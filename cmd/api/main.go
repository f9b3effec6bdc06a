package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/descobre-saude/app/config"
	"github.com/descobre-saude/app/controllers"
	"github.com/descobre-saude/app/services"
	"github.com/descobre-saude/internal/loader"
	"github.com/descobre-saude/internal/search"
	"github.com/descobre-saude/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		panic(err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting plan lookup service",
		zap.String("env", cfg.App.Env),
		zap.String("dataset_source", cfg.Dataset.Source))

	ctx := context.Background()

	// 1. Dataset
	source, closeSource, err := newSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open dataset source", zap.Error(err))
	}
	defer closeSource()

	dataset, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}

	// 2. Meilisearch mirror
	if cfg.Meili.Enabled {
		publisher, err := search.NewPublisher(search.PublisherConfig{
			Host:    cfg.Meili.URL,
			APIKey:  cfg.Meili.MasterKey,
			Timeout: 30 * time.Second,
		}, logger)
		if err != nil {
			logger.Warn("Meilisearch unavailable, skipping publish", zap.Error(err))
		} else if err := publisher.Publish(ctx, dataset.Procedures, dataset.Plans); err != nil {
			logger.Warn("Failed to publish dataset to Meilisearch", zap.Error(err))
		}
	}

	// 3. Result cache
	cacheService, err := newCache(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	if cacheService != nil {
		defer cacheService.Close()
	}

	// 4. Services and controllers
	catalogService := services.NewCatalogService(dataset, cacheService, logger)
	ctrl := routes.Controllers{
		Procedures: controllers.NewProcedureController(catalogService, cfg.Pagination, logger),
		Plans:      controllers.NewPlanController(catalogService, cfg.Pagination, logger),
		Admin:      controllers.NewAdminController(catalogService, logger),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, ctrl, logger)

	// 5. Serve until interrupted
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

// newSource returns the configured dataset source and a cleanup func.
func newSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (loader.Source, func(), error) {
	switch cfg.Dataset.Source {
	case "mongo":
		db, err := loader.ConnectMongo(ctx, cfg.Mongo.URL, cfg.Mongo.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		return loader.NewMongoSource(db, logger), disconnect(db.Client(), logger), nil
	default:
		return loader.NewFileSource(cfg.Dataset.ProceduresPath, cfg.Dataset.PlansPath, logger), func() {}, nil
	}
}

func disconnect(client *mongo.Client, logger *zap.Logger) func() {
	return func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}
}

// newCache builds memory L1, plus redis L2 when redis.url is set. A nil
// cache disables result caching.
func newCache(cfg *config.Config, logger *zap.Logger) (services.ICacheService, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	memory, err := services.NewMemoryCacheService(cfg.Cache.L1Size, cfg.Cache.TTL)
	if err != nil {
		return nil, err
	}
	if cfg.Redis.URL == "" {
		return memory, nil
	}

	redisCache, err := services.NewRedisCacheService(cfg.Redis.URL, cfg.Cache.TTL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using memory cache only", zap.Error(err))
		return memory, nil
	}
	return services.NewHybridCacheService(memory, redisCache, logger), nil
}
