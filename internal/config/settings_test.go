package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/liyang960414/erp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

var allKeys = []string{
	"ERP_API_BASE_URL", "ERP_SERVER", "ERP_PRODUCTION", "ERP_STORE_URL", "ERP_STATE_DIR",
	"ERP_PROFILE", "ERP_TIMEOUT", "ERP_LOG_LEVEL", "ERP_LOCALE", "ERP_NON_INTERACTIVE", "ERP_TOKEN",
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("ERP_STATE_DIR", t.TempDir())

	s, err := config.Load(config.LoadOptions{DotEnv: []string{filepath.Join(t.TempDir(), "missing.env")}})
	require.NoError(t, err)
	assert.Equal(t, "default", s.Profile)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "http://localhost:8080/api", s.BaseURL())
}

func TestLoad_Layering(t *testing.T) {
	unsetEnv(t, allKeys...)
	dir := t.TempDir()

	cfgFile := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgFile, `
server: https://erp.example.com/
production: true
profile: from-file
timeout: 45s
log_level: INFO
locale: vi
`)
	dotEnv := filepath.Join(dir, "test.env")
	writeFile(t, dotEnv, "ERP_PROFILE=from-dotenv\nERP_LOCALE=id\n")
	t.Setenv("ERP_LOCALE", "en")

	s, err := config.Load(config.LoadOptions{ConfigFile: cfgFile, DotEnv: []string{dotEnv}})
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com", s.Server)
	assert.True(t, s.Production)
	assert.Equal(t, "https://erp.example.com/api", s.BaseURL())
	assert.Equal(t, 45*time.Second, s.Timeout)
	assert.Equal(t, slog.LevelInfo, s.SlogLevel())
	assert.Equal(t, "from-dotenv", s.Profile, ".env overrides the config file")
	assert.Equal(t, "en", s.Locale, "real environment overrides .env")
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	unsetEnv(t, allKeys...)
	_, err := config.Load(config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.ErrorContains(t, err, "read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	unsetEnv(t, allKeys...)
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, cfgFile, "timeout: [not a duration")
	_, err := config.Load(config.LoadOptions{ConfigFile: cfgFile})
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoad_InvalidEnv(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("ERP_STATE_DIR", t.TempDir())
	t.Setenv("ERP_TIMEOUT", "soon")
	_, err := config.Load(config.LoadOptions{})
	assert.ErrorContains(t, err, "parse environment")
}

func TestSanitize(t *testing.T) {
	s := config.Settings{
		APIBaseURL: " https://erp.example.com/api/ ",
		Timeout:    10 * time.Millisecond,
		Profile:    "  ",
		LogLevel:   "Debug",
	}
	s.Sanitize()

	assert.Equal(t, "https://erp.example.com/api", s.APIBaseURL)
	assert.Equal(t, config.MinTimeout, s.Timeout)
	assert.Equal(t, "default", s.Profile)
	assert.Equal(t, slog.LevelDebug, s.SlogLevel())
	assert.Equal(t, "https://erp.example.com/api", s.BaseURL())
}
