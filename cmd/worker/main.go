package main

import (
	"context"
	"meetroom/config"
	"meetroom/di"
	"meetroom/shared/logger"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()
	if err := worker.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Notification worker stopped with error")
	}
}
