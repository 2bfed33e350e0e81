package health

import (
	"context"
	"meetroom/infras/otel"
	"meetroom/infras/postgres"
	"meetroom/shared/constant"
	"meetroom/transport/http/response"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

const (
	statusUp   = "up"
	statusDown = "down"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type Handler struct {
	pingers map[string]Pinger
	otel    otel.Otel
}

type Response struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

func New(conn *postgres.Connection, client *goRedis.Client, otel otel.Otel) Handler {
	return NewWithPingers(map[string]Pinger{
		"postgres": func(ctx context.Context) error { return conn.Write.PingContext(ctx) },
		"redis":    func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}, otel)
}

func NewWithPingers(pingers map[string]Pinger, otel otel.Otel) Handler {
	return Handler{
		pingers: pingers,
		otel:    otel,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health pings every dependency.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Response]
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := h.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	names := make([]string, 0, len(h.pingers))
	for name := range h.pingers {
		names = append(names, name)
	}

	sort.Strings(names)

	res := Response{Status: statusUp, Dependencies: make(map[string]string, len(names))}

	for _, name := range names {
		if err := h.pingers[name](ctx); err != nil {
			log.Warn().Err(err).Str("dependency", name).Msg("health check failed")
			scope.TraceError(err)

			res.Status = statusDown
			res.Dependencies[name] = statusDown

			continue
		}

		res.Dependencies[name] = statusUp
	}

	if res.Status != statusUp {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
