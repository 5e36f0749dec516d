package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rlpmon/internal/app"
	"rlpmon/internal/engine"
	"rlpmon/internal/feed"
	"rlpmon/internal/infra"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.Config

	classifier := engine.NewClassifier(engine.Rules{
		RLPConditionCode: cfg.Classify.RLPConditionCode,
		RLPMarker:        cfg.Classify.RLPMarker,
		FlaggedBrokers:   cfg.Classify.FlaggedBrokers,
		HistoryCap:       cfg.Classify.HistoryCap,
	})
	consumer := engine.NewConsumer(cfg.Queue.Size, classifier, bootstrap.Storage, cfg.Feed.FatalMessages)

	worker := feed.NewWorker(cfg.Feed.URL, cfg.Feed.Instrument, consumer.Enqueue)
	consumer.OnFatal(worker.DisableReconnect)

	// Single consumer thread of control: classification order is arrival
	// order, and only this goroutine touches session state or the DB.
	consumerErr := make(chan error, 1)
	go func() { consumerErr <- consumer.Run(ctx) }()

	if err := worker.Connect(ctx); err != nil {
		slog.Error("Feed worker failed to start", slog.Any("error", err))
		os.Exit(1)
	}
	defer worker.Disconnect()

	slog.InfoContext(ctx, "Capture running",
		slog.String("instrument", cfg.Feed.Instrument),
		slog.String("db", cfg.Storage.Path),
	)

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gracefully...")
		<-consumerErr
	case err := <-consumerErr:
		if err != nil {
			snap := infra.GlobalMetrics.Snapshot()
			slog.Error("Consumer halted",
				slog.Any("error", err),
				slog.Uint64("persisted", snap.TradesPersisted),
			)
			worker.Disconnect()
			os.Exit(1)
		}
	}
}
