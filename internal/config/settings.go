package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/pkg/sdk"
)

const (
	// ConfigFileName is read from the state directory.
	ConfigFileName = "config.yaml"
	// MinTimeout is the smallest accepted request timeout.
	MinTimeout = time.Second
)

// Settings are the user-tunable values. Later sources override earlier ones:
// defaults, config.yaml, .env, environment, then command-line flags.
type Settings struct {
	// APIBaseURL overrides base URL resolution entirely.
	APIBaseURL string `yaml:"api_base_url" env:"ERP_API_BASE_URL"`
	// Server is the origin the API is served from in production mode.
	Server     string `yaml:"server" env:"ERP_SERVER"`
	Production bool   `yaml:"production" env:"ERP_PRODUCTION"`

	// StoreURL selects session storage: file://, memory:// or redis://.
	StoreURL string `yaml:"store_url" env:"ERP_STORE_URL"`
	StateDir string `yaml:"state_dir" env:"ERP_STATE_DIR"`
	Profile  string `yaml:"profile" env:"ERP_PROFILE"`

	Timeout        time.Duration `yaml:"timeout" env:"ERP_TIMEOUT"`
	LogLevel       string        `yaml:"log_level" env:"ERP_LOG_LEVEL"`
	Locale         string        `yaml:"locale" env:"ERP_LOCALE"`
	NonInteractive bool          `yaml:"non_interactive" env:"ERP_NON_INTERACTIVE"`

	// Token bypasses stored credentials for one invocation (CI, scripts).
	Token string `yaml:"-" env:"ERP_TOKEN"`
}

// LoadOptions locates the file sources.
type LoadOptions struct {
	// ConfigFile defaults to <state dir>/config.yaml.
	ConfigFile string
	// DotEnv lists .env files to load; defaults to ".env" in the working directory.
	DotEnv []string
}

// Load reads settings from the config file, .env files and the environment.
func Load(opts LoadOptions) (Settings, error) {
	var s Settings

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit {
		dir := os.Getenv("ERP_STATE_DIR")
		if dir == "" {
			var err error
			if dir, err = storage.DefaultDir(); err != nil {
				return s, err
			}
		}
		path = filepath.Join(dir, ConfigFileName)
	}
	if err := loadYAML(path, &s); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return s, err
		}
	}

	// Load .env file if it exists (development)
	if err := godotenv.Load(opts.DotEnv...); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return s, fmt.Errorf("load .env file: %w", err)
		}
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse environment: %w", err)
	}

	s.Sanitize()
	return s, nil
}

func loadYAML(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Sanitize applies defaults and guardrails.
func (s *Settings) Sanitize() {
	s.APIBaseURL = strings.TrimRight(strings.TrimSpace(s.APIBaseURL), "/")
	s.Server = strings.TrimRight(strings.TrimSpace(s.Server), "/")
	s.StoreURL = strings.TrimSpace(s.StoreURL)
	s.Profile = strings.TrimSpace(s.Profile)
	if s.Profile == "" {
		s.Profile = storage.DefaultProfile
	}
	if s.Timeout <= 0 {
		s.Timeout = sdk.DefaultTimeout
	} else if s.Timeout < MinTimeout {
		s.Timeout = MinTimeout
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.LogLevel == "" {
		s.LogLevel = "warn"
	}
}

// BaseURL resolves the API base URL.
func (s *Settings) BaseURL() string {
	return sdk.ResolveBaseURL(s.APIBaseURL, s.Production, s.Server)
}

// SlogLevel maps LogLevel to a slog level; unknown values mean warn.
func (s *Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
