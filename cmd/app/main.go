package main

import (
	"meetroom/config"
	"meetroom/di"
	"meetroom/helper"
	"meetroom/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Meeting Room Booking API
// @version 1.0
// @description Hourly meeting room reservations with availability, pricing and cancellation policy.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Auto migration failed")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
