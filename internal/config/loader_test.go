package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/swingsheet/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.EnrichWorkers, convey.ShouldEqual, 5)
				convey.So(cfg.CandidateLimit, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("SWINGSHEET_ENRICH_WORKERS", "12")
			t.Setenv("SWINGSHEET_OUTPUT_DIR", "/tmp/trackman")
			t.Setenv("SWINGSHEET_TEMPERATURE", "18.5")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.EnrichWorkers, convey.ShouldEqual, 12)
				convey.So(cfg.OutputDir, convey.ShouldEqual, "/tmp/trackman")
				convey.So(cfg.Temperature, convey.ShouldEqual, 18.5)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
enrich_workers: 8
candidate_limit: 20
raw_report_path: /tmp/report.json
ball_type: Range
`)
			cfg, err := config.Load(ctx, path)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.EnrichWorkers, convey.ShouldEqual, 8)
				convey.So(cfg.CandidateLimit, convey.ShouldEqual, 20)
				convey.So(cfg.RawReportPath, convey.ShouldEqual, "/tmp/report.json")
				convey.So(cfg.BallType, convey.ShouldEqual, "Range")
			})
		})

		convey.Convey("When both the file and env vars are set", func() {
			path := writeConfigFile(t, "enrich_workers: 8\ncandidate_limit: 20\n")
			t.Setenv("SWINGSHEET_CONFIG", path)
			t.Setenv("SWINGSHEET_ENRICH_WORKERS", "3")

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then env vars win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.EnrichWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.CandidateLimit, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			path := writeConfigFile(t, `invalid: yaml: content: [`)
			cfg, err := config.Load(ctx, path)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file does not exist", func() {
			cfg, err := config.Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			t.Setenv("SWINGSHEET_ENRICH_WORKERS", "0")
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return an invalid config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swingsheet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"SWINGSHEET_CONFIG",
		"SWINGSHEET_ENRICH_WORKERS",
		"SWINGSHEET_OUTPUT_DIR",
		"SWINGSHEET_TEMPERATURE",
	} {
		_ = os.Unsetenv(key)
	}
}
