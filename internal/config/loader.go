package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "SWINGSHEET_"
	envConfigPath = "SWINGSHEET_CONFIG"
	dotEnvFile    = ".env"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New())
//  2. .env in the working directory, if present (never overrides real env vars)
//  3. YAML file at path, or at $SWINGSHEET_CONFIG when path is empty
//  4. env vars with the SWINGSHEET_ prefix
func Load(_ context.Context, path string) (*Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, dotEnvFile, err)
	}

	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// SWINGSHEET_ENRICH_WORKERS -> enrich_workers
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.APIBaseURL) == "":
		return fmt.Errorf("%w: api_base_url must not be empty", ErrInvalidConfig)
	case c.EnrichWorkers < 1:
		return fmt.Errorf("%w: enrich_workers must be >= 1", ErrInvalidConfig)
	case c.CandidateLimit < 1:
		return fmt.Errorf("%w: candidate_limit must be >= 1", ErrInvalidConfig)
	case c.EnrichTimeoutMS <= 0 || c.FetchTimeoutMS <= 0:
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	case c.EnrichRetries < 0:
		return fmt.Errorf("%w: enrich_retries must not be negative", ErrInvalidConfig)
	case c.BestMaxImpactHeight <= 0 || c.BestMaxImpactOffset <= 0 || c.BestMaxClubPath <= 0 || c.BestMaxFaceAngle <= 0:
		return fmt.Errorf("%w: best swing bounds must be positive", ErrInvalidConfig)
	case strings.TrimSpace(c.RawReportPath) == "":
		return fmt.Errorf("%w: raw_report_path must not be empty", ErrInvalidConfig)
	}
	return nil
}
