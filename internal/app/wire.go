package service

import (
	"github.com/okian/swingsheet/internal/adapters/credentials"
	"github.com/okian/swingsheet/internal/adapters/history"
	"github.com/okian/swingsheet/internal/adapters/repository"
	"github.com/okian/swingsheet/internal/adapters/trackman"
	"github.com/okian/swingsheet/internal/adapters/workbook"
	"github.com/okian/swingsheet/internal/adapters/worker"
	"github.com/okian/swingsheet/internal/config"
	"github.com/okian/swingsheet/internal/domain/convert"
	"github.com/okian/swingsheet/internal/domain/scoring"
	"github.com/okian/swingsheet/pkg/logger"
)

// FromConfig builds a Service with every adapter configured from cfg.
func FromConfig(cfg *config.Config, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	base := []Option{
		WithLogger(log),
		WithHistoryPath(cfg.HistoryPath),
		WithOutputDir(cfg.OutputDir),
		WithDiscoverer(history.NewDiscoverer(
			history.WithLogger(log.Named("history")),
			history.WithDomain(cfg.ReportDomain),
			history.WithLimit(cfg.CandidateLimit),
			history.WithBrowserProcesses(cfg.BrowserProcess),
		)),
		WithTokenSource(credentials.NewStore(
			credentials.WithLogger(log.Named("credentials")),
			credentials.WithTokenFile(cfg.TokenFile),
			credentials.WithCookieStore(cfg.CookiesPath),
			credentials.WithDomain(cfg.ReportDomain),
		)),
		WithReportAPI(trackman.NewClient(
			trackman.WithLogger(log.Named("trackman")),
			trackman.WithBaseURL(cfg.APIBaseURL),
			trackman.WithMetadataTimeout(cfg.EnrichTimeout()),
			trackman.WithMetadataRetries(cfg.EnrichRetries),
			trackman.WithFetchTimeout(cfg.FetchTimeout()),
			trackman.WithEnvironment(trackman.Environment{
				BallType:        cfg.BallType,
				Altitude:        cfg.Altitude,
				Temperature:     cfg.Temperature,
				TemperatureUnit: cfg.TemperatureUnit,
				Pressure:        cfg.Pressure,
				Wind:            cfg.Wind,
				Humidity:        cfg.Humidity,
			}),
		)),
		WithRawStore(repository.NewFileStore(
			repository.WithLogger(log.Named("repository")),
			repository.WithPath(cfg.RawReportPath),
		)),
		WithSynthesizer(workbook.NewSynthesizer(
			workbook.WithLogger(log.Named("workbook")),
			workbook.WithSchema(convert.DefaultSchema()),
			workbook.WithThresholds(Thresholds(cfg)),
		)),
		WithPool(worker.NewPool(
			worker.WithName("enrich"),
			worker.WithLogger(log.Named("worker")),
			worker.WithSize(cfg.EnrichWorkers),
			worker.WithTaskTimeout(cfg.EnrichTimeout()),
		)),
	}
	return New(append(base, opts...)...)
}

// Thresholds returns the Best Swings bounds configured in cfg.
func Thresholds(cfg *config.Config) scoring.Thresholds {
	return scoring.Thresholds{
		MinSmashFactor:  cfg.BestMinSmashFactor,
		MaxImpactHeight: cfg.BestMaxImpactHeight,
		MaxImpactOffset: cfg.BestMaxImpactOffset,
		MaxClubPath:     cfg.BestMaxClubPath,
		MaxFaceAngle:    cfg.BestMaxFaceAngle,
	}
}
