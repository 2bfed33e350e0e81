package router

import (
	"meetroom/config"
	"meetroom/internal/handlers/availability"
	"meetroom/internal/handlers/booking"
	"meetroom/internal/handlers/health"
	"meetroom/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "meetroom/docs" // swagger spec registration
)

type DomainHandlers struct {
	Booking      booking.Handler
	Availability availability.Handler
	Health       health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	auth           middleware.AuthRole
	config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.RealIP, chiMiddleware.Recoverer)

	if r.config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.config.App.CORS.AllowedHeaders,
			AllowCredentials: r.config.App.CORS.AllowCredentials,
			MaxAge:           r.config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.app.Tracing, r.app.RateLimit())

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Group(func(secured chi.Router) {
		secured.Use(r.auth.APIKey, r.auth.Auth, r.auth.RBAC)

		secured.Route("/v1", func(routerGroup chi.Router) {
			r.DomainHandlers.Health.Router(routerGroup)
			r.DomainHandlers.Availability.Router(routerGroup)
			r.DomainHandlers.Booking.Router(routerGroup)
		})
	})
}

func New(config *config.Config, domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		auth:           auth,
		config:         config,
	}
}
