package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/descobre-saude/app/config"
	"github.com/descobre-saude/internal/loader"
	"github.com/descobre-saude/internal/search"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type seedOptions struct {
	proceduresPath string
	plansPath      string
	skipMongo      bool
}

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		panic(err)
	}

	var opts seedOptions
	flag.StringVar(&opts.proceduresPath, "procedures", cfg.Dataset.ProceduresPath, "TUSS codes file (.json, .yaml)")
	flag.StringVar(&opts.plansPath, "plans", cfg.Dataset.PlansPath, "plans file (.json, .yaml)")
	flag.BoolVar(&opts.skipMongo, "skip-mongo", false, "do not write to MongoDB")
	flag.Parse()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, opts, logger); err != nil {
		logger.Fatal("Seed failed", zap.Error(err))
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(cfg *config.Config, opts seedOptions, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dataset, err := loader.NewFileSource(opts.proceduresPath, opts.plansPath, logger).Load(ctx)
	if err != nil {
		return fmt.Errorf("read dataset files: %w", err)
	}

	if !opts.skipMongo {
		db, err := loader.ConnectMongo(ctx, cfg.Mongo.URL, cfg.Mongo.Database, logger)
		if err != nil {
			return err
		}
		defer func() {
			if derr := db.Client().Disconnect(context.Background()); derr != nil {
				logger.Error("Failed to disconnect from MongoDB", zap.Error(derr))
			}
		}()

		if err := loader.NewMongoSource(db, logger).Save(ctx, dataset); err != nil {
			return fmt.Errorf("seed mongo: %w", err)
		}
	}

	if cfg.Meili.Enabled {
		publisher, err := search.NewPublisher(search.PublisherConfig{
			Host:    cfg.Meili.URL,
			APIKey:  cfg.Meili.MasterKey,
			Timeout: 5 * time.Minute,
		}, logger)
		if err != nil {
			return err
		}
		if err := publisher.Publish(ctx, dataset.Procedures, dataset.Plans); err != nil {
			return fmt.Errorf("publish to meilisearch: %w", err)
		}
	}

	logger.Info("Seed completed",
		zap.Int("procedures", len(dataset.Procedures)),
		zap.Int("plans", len(dataset.Plans)))
	return nil
}
