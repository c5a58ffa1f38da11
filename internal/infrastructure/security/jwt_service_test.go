package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack-io/studytrack/internal/config"
	domainErrors "github.com/studytrack-io/studytrack/internal/domain/errors"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Issuer:          "studytrack-test",
	}
}

func TestNewJWTService_RejectsBadSecrets(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessSecret = ""
	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.RefreshSecret = cfg.AccessSecret
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	userID, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

// A token signed with one secret must not verify under the other: access
// tokens can never pass as refresh tokens and vice versa.
func TestJWTService_SecretsAreIndependent(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	accessToken, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
	_, err = svc.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = -time.Minute
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}

func TestJWTService_GarbageRejected(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyAccessToken(token)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
	}
}

func TestJWTService_TamperedTokenRejected(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.VerifyAccessToken(tampered)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidToken)
}
