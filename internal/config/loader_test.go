package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadForTest(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STUDYTRACK_JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("STUDYTRACK_JWT_REFRESH_SECRET", "r-secret")

	cfg := loadForTest(t)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, "studytrack", cfg.JWT.Issuer)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.NotEmpty(t, cfg.Auth.AllowedEmailPattern)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYTRACK_JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("STUDYTRACK_JWT_REFRESH_SECRET", "r-secret")
	t.Setenv("STUDYTRACK_SERVER_PORT", "5005")
	t.Setenv("STUDYTRACK_LOGGING_LEVEL", "debug")

	cfg := loadForTest(t)

	assert.Equal(t, 5005, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_RequiresSecrets(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("STUDYTRACK_JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("STUDYTRACK_JWT_REFRESH_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
