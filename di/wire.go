//go:build wireinject
// +build wireinject

package di

import (
	"meetroom/config"
	"meetroom/infras/jwt"
	"meetroom/infras/kafka"
	"meetroom/infras/otel"
	"meetroom/infras/postgres"
	"meetroom/infras/redis"
	"meetroom/infras/webhook"
	"meetroom/permissions"
	"meetroom/shared/cache"
	"meetroom/transport/http"
	"meetroom/transport/http/middleware"
	"meetroom/transport/http/router"

	availabilityService "meetroom/internal/domains/availability/service"
	bookingRepository "meetroom/internal/domains/booking/repository"
	bookingService "meetroom/internal/domains/booking/service"
	notificationService "meetroom/internal/domains/notification/service"
	availabilityHandler "meetroom/internal/handlers/availability"
	bookingHandler "meetroom/internal/handlers/booking"
	healthHandler "meetroom/internal/handlers/health"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	webhook.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	availabilityService.New,
	bookingService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	availabilityHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *notificationService.Worker {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		webhook.New,
		notificationDomain,
		notificationService.NewWorker,
	)

	return &notificationService.Worker{}
}
