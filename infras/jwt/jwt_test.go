package jwt_test

import (
	"meetroom/config"
	infraJWT "meetroom/infras/jwt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims infraJWT.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func newService(issuer string) infraJWT.JWT {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret
	cfg.JWT.Issuer = issuer

	return infraJWT.New(cfg)
}

func TestValidateToken(t *testing.T) {
	valid := infraJWT.Claims{
		Email: "jane@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://idp.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	noEmail := valid
	noEmail.Email = ""

	wrongIssuer := valid
	wrongIssuer.Issuer = "https://evil.example.com"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid)},
		{name: "expired", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired), wantErr: infraJWT.ErrExpiredToken},
		{name: "wrong secret", token: sign(t, jwt.SigningMethodHS256, []byte("other"), valid), wantErr: infraJWT.ErrInvalidToken},
		{name: "wrong algorithm", token: sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid), wantErr: infraJWT.ErrInvalidToken},
		{name: "wrong issuer", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer), wantErr: infraJWT.ErrInvalidToken},
		{name: "missing email", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), noEmail), wantErr: infraJWT.ErrInvalidClaim},
		{name: "garbage", token: "not-a-token", wantErr: infraJWT.ErrInvalidToken},
	}

	svc := newService("https://idp.example.com")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "jane@example.com", claims.Email)
			assert.Equal(t, "admin", claims.Role)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := infraJWT.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = infraJWT.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = infraJWT.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = infraJWT.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
