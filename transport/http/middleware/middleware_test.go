package middleware_test

import (
	"errors"
	"meetroom/config"
	infraJWT "meetroom/infras/jwt"
	otelMocks "meetroom/infras/otel/mocks"
	"meetroom/permissions"
	cacheMocks "meetroom/shared/cache/mocks"
	"meetroom/shared/constant"
	"meetroom/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSecret = "s3cret"
	testAPIKey = "internal-key"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret
	cfg.App.APIKey = testAPIKey

	return cfg
}

func token(t *testing.T, email, role string) string {
	t.Helper()

	claims := infraJWT.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return signed
}

// newRouter mounts a few routes behind the auth chain. Every handler echoes the caller's email.
func newRouter(cfg *config.Config) http.Handler {
	auth := middleware.NewAuthRoleMiddleware(infraJWT.New(cfg), otelMocks.NewOtel(), permissions.Get(), cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		email, _ := r.Context().Value(constant.ContextKeyUserEmail).(string)
		w.Header().Set("X-Email", email)
		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", echo)
			r.Get("/", echo)
			r.Get("/mybookings", echo)
			r.Post("/{id}/confirm", echo)
			r.Post("/{id}/cancel", echo)
		})
	})

	return router
}

func TestAuthRole(t *testing.T) {
	router := newRouter(testConfig())

	tests := []struct {
		name   string
		method string
		path   string
		header map[string]string
		code   int
		email  string
	}{
		{name: "public create", method: http.MethodPost, path: "/v1/bookings", code: http.StatusNoContent},
		{name: "public cancel", method: http.MethodPost, path: "/v1/bookings/b1/cancel", code: http.StatusNoContent},
		{name: "list needs token", method: http.MethodGet, path: "/v1/bookings", code: http.StatusUnauthorized},
		{
			name: "list as user", method: http.MethodGet, path: "/v1/bookings",
			header: map[string]string{"Authorization": "Bearer " + token(t, "u@example.com", "user")},
			code:   http.StatusForbidden,
		},
		{
			name: "list as admin", method: http.MethodGet, path: "/v1/bookings",
			header: map[string]string{"Authorization": "Bearer " + token(t, "a@example.com", "admin")},
			code:   http.StatusNoContent, email: "a@example.com",
		},
		{
			name: "my bookings without role claim", method: http.MethodGet, path: "/v1/bookings/mybookings",
			header: map[string]string{"Authorization": "Bearer " + token(t, "u@example.com", "")},
			code:   http.StatusNoContent, email: "u@example.com",
		},
		{
			name: "malformed header", method: http.MethodPost, path: "/v1/bookings/b1/confirm",
			header: map[string]string{"Authorization": "Token abc"},
			code:   http.StatusUnauthorized,
		},
		{
			name: "api key bypass", method: http.MethodPost, path: "/v1/bookings/b1/confirm",
			header: map[string]string{"X-API-Key": testAPIKey},
			code:   http.StatusNoContent,
		},
		{
			name: "wrong api key", method: http.MethodPost, path: "/v1/bookings/b1/confirm",
			header: map[string]string{"X-API-Key": "guess"},
			code:   http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)

			if tt.email != "" {
				assert.Equal(t, tt.email, rec.Header().Get("X-Email"))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, mockCache)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := app.RateLimit()(ok)

	gomock.InOrder(
		mockCache.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(2), nil),
		mockCache.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil),
		mockCache.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("redis down")),
	)

	codes := make([]int, 0, 3)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/v1/availability", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, codes)
}

func TestTracing(t *testing.T) {
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), testConfig(), nil)

	router := chi.NewRouter()
	router.Use(app.Tracing)
	router.Get("/v1/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
