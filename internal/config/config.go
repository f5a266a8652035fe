package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sallatna/sallatna-backend/internal/logger"
	"github.com/sallatna/sallatna-backend/internal/utils"
)

// Config holds the settings that are not secrets. Secrets (DB password, JWT
// key) stay in the environment.
type Config struct {
	Server struct {
		Port         string   `yaml:"port"`
		CORSOrigins  []string `yaml:"cors_origins"`
		CookieDomain string   `yaml:"cookie_domain"`
		CookieSecure bool     `yaml:"cookie_secure"`
	} `yaml:"server"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Server.CORSOrigins = []string{
		"http://localhost:80",
		"http://localhost:3000",
		"http://localhost:5174",
	}
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RPS = 25
	cfg.RateLimit.Burst = 50
	return cfg
}

// Load reads the YAML config file named by CONFIG_PATH (default config.yaml).
// A missing file is not an error; defaults plus env overrides apply.
func Load(log *logger.Logger) (*Config, error) {
	cfg := defaults()

	path := utils.GetEnv("CONFIG_PATH", "config.yaml", log)
	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Debug("No config file found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("Failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("Failed to parse config file: %w", err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Server.Port = utils.GetEnv("PORT", cfg.Server.Port, log)
	return cfg, nil
}
