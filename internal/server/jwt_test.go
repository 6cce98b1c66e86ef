package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	cfg, err := config.NewJWTConfig(config.AuthConfig{JWTSecret: testSecret, ExpirationHours: 24})
	require.NoError(t, err)
	return NewJWTService(cfg)
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := newTestJWTService(t)

	token, err := service.GenerateToken("recruiting-dashboard")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "recruiting-dashboard", claims.GetSubject())
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	service := newTestJWTService(t)

	a, err := service.GenerateToken("ci")
	require.NoError(t, err)
	b, err := service.GenerateToken("ci")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTService_EmptySubject(t *testing.T) {
	_, err := newTestJWTService(t).GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_InvalidSignature(t *testing.T) {
	token, err := newTestJWTService(t).GenerateToken("ci")
	require.NoError(t, err)

	other := newTestJWTService(t)
	other.config.Secret = "different-secret-key-for-jwt-signing-minimum-32-bytes"

	claims, err := other.ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_Expired(t *testing.T) {
	service := newTestJWTService(t)
	token, err := service.GenerateToken("ci")
	require.NoError(t, err)

	service.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	service := newTestJWTService(t)

	sign := func(method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := map[string]string{
		"empty":          "",
		"one part":       "invalid",
		"garbage":        "invalid.base64.signature",
		"wrong issuer":   sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Issuer: "someone-else", Subject: "x", ExpiresAt: future}),
		"no subject":     sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Issuer: TokenIssuer, ExpiresAt: future}),
		"hs512":          sign(jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{Issuer: TokenIssuer, Subject: "x", ExpiresAt: future}),
		"none algorithm": sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Issuer: TokenIssuer, Subject: "x", ExpiresAt: future}),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := service.ValidateToken(token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
