package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Name: "histolook-api", Env: "local", Port: 8080},
		Database: DatabaseConfig{Host: "localhost", Name: "histolook", User: "user", Password: "pw"},
		JWT:      JWTConfig{Secret: "test-jwt-secret-key-must-be-at-least-32-characters-long"},
		Storage:  StorageConfig{Bucket: "histolook", PublicBaseURL: "https://cdn.histolook.app"},
	}
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	// Given: config with several missing values
	cfg := validConfig()
	cfg.App.Port = 0
	cfg.JWT.Secret = "short"
	cfg.Storage.Bucket = ""

	// When
	err := cfg.Validate()

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "유효하지 않은 포트 번호")
	assert.Contains(t, err.Error(), "JWT Secret Key는 32자 이상이어야 합니다")
	assert.Contains(t, err.Error(), "Storage Bucket이 필요합니다")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("HISTOLOOK_TEST_INT", "42")
	t.Setenv("HISTOLOOK_TEST_BAD_INT", "abc")
	t.Setenv("HISTOLOOK_TEST_DURATION", "90s")
	t.Setenv("HISTOLOOK_TEST_SLICE", "a,b,c")

	assert.Equal(t, 42, getEnvAsInt("HISTOLOOK_TEST_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("HISTOLOOK_TEST_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, getEnvAsDuration("HISTOLOOK_TEST_DURATION", "1s"))
	assert.Equal(t, 10*time.Minute, getEnvAsDuration("HISTOLOOK_TEST_MISSING", "10m"))
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("HISTOLOOK_TEST_SLICE", nil))
}

func TestIsPushEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.IsPushEnabled())

	cfg.Push.FCMProjectID = "histolook"
	cfg.Push.FCMCredentialsFile = "/etc/histolook/fcm.json"
	assert.True(t, cfg.IsPushEnabled())
}
