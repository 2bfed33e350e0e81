package http

import (
	"meetroom/config"
	otelMocks "meetroom/infras/otel/mocks"
	"meetroom/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownGuard(t *testing.T) {
	h := New(&config.Config{}, router.Router{}, otelMocks.NewOtel())

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	guarded := h.shutdownGuard(ok)

	tests := []struct {
		state ServerState
		code  int
	}{
		{state: ServerStateReady, code: http.StatusOK},
		{state: ServerStateInGracePeriod, code: http.StatusServiceUnavailable},
		{state: ServerStateInCleanupPeriod, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		h.state.Store(int32(tt.state))

		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

		assert.Equal(t, tt.code, rec.Code)
		assert.Equal(t, tt.state, h.State())
	}
}
