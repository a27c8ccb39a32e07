package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gobusters/ectologger"
	"go.uber.org/zap"

	"github.com/Ramsey-B/laurel/config"
	"github.com/Ramsey-B/laurel/pkg/events"
	"github.com/Ramsey-B/laurel/pkg/graph"
	"github.com/Ramsey-B/laurel/pkg/kafka"
	"github.com/Ramsey-B/laurel/pkg/loader"
	"github.com/Ramsey-B/laurel/pkg/tracing"
)

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer zlog.Sync()

	logger := ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		zlog.Info("log", zap.Any("entry", msg))
	})

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init(cfg.AppName)
	defer shutdownTracing(context.Background())

	inputPath := cfg.InputFile
	if len(os.Args) > 1 {
		inputPath = os.Args[1]
	}

	client, err := graph.NewClient(graph.Config{
		Host:     cfg.GraphDBHost,
		Port:     cfg.GraphDBPort,
		Username: cfg.GraphDBUsername,
		Password: cfg.GraphDBPassword,
	}, logger)
	if err != nil {
		zlog.Fatal("failed to create graph client", zap.Error(err))
	}
	defer client.Close(context.Background())

	if err := client.VerifyConnectivity(ctx); err != nil {
		zlog.Fatal("graph database is unreachable", zap.Error(err))
	}

	store := graph.NewStore(client, logger)
	if err := store.EnsureConstraints(ctx); err != nil {
		zlog.Fatal("failed to ensure graph constraints", zap.Error(err))
	}

	var emitter *events.Emitter
	if cfg.KafkaEnabled {
		producer := kafka.NewProducer(kafka.Config{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: cfg.KafkaBatchTimeout,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()
		emitter = events.NewEmitter(producer, logger)
	}

	stats, err := loader.New(store, emitter, logger).Run(ctx, inputPath)
	if err != nil {
		zlog.Fatal("load failed", zap.Error(err))
	}

	total, err := store.CountArticles(ctx)
	if err != nil {
		zlog.Error("failed to count articles", zap.Error(err))
	}

	logger.WithContext(ctx).WithFields(map[string]any{
		"documents_read":      stats.DocumentsRead,
		"articles_loaded":     stats.ArticlesLoaded,
		"documents_skipped":   stats.DocumentsSkipped,
		"internal_references": stats.InternalReferences,
		"external_references": stats.ExternalReferences,
		"failed_references":   stats.FailedReferences,
		"articles_in_graph":   total,
	}).Info("load complete")
}
