package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	tests := []struct {
		path   string
		method string
		skip   bool
		roles  []string
	}{
		{path: "/v1/bookings/", method: "POST", skip: true},
		{path: "/v1/bookings/", method: "GET", roles: []string{"admin"}},
		{path: "/v1/bookings/{id}/confirm", method: "POST", roles: []string{"admin"}},
		{path: "/v1/bookings/{id}/cancel", method: "POST", skip: true},
		{path: "/v1/bookings/mybookings", method: "GET", roles: []string{"admin", "user"}},
		{path: "/v1/availability/", method: "GET", skip: true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, got.Skip)
			assert.Equal(t, tt.roles, got.Permissions)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	assert.Nil(t, parse([]byte("{")))
	assert.Equal(t, Permission{}, (&PermissionData{}).FindPermissions("/v1/x", "GET"))
}
