// Package config defines swingsheet configuration and its layered loading.
//
// Conventions:
//   - New() returns a Config filled with defaults.
//   - Load(ctx, path) layers .env, an optional YAML file, and SWINGSHEET_* env vars on top.
//   - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, mirrors logs into a file.
	LogFile string `koanf:"log_file"`

	// APIBaseURL is the vendor report service root.
	APIBaseURL string `koanf:"api_base_url"`

	// ReportDomain filters browser history rows; ReportPageURL is the page
	// opened by `swingsheet open` with the identifier appended.
	ReportDomain  string `koanf:"report_domain"`
	ReportPageURL string `koanf:"report_page_url"`

	// HistoryPath and CookiesPath locate the browser's SQLite stores.
	HistoryPath string `koanf:"history_path"`
	CookiesPath string `koanf:"cookies_path"`

	// BrowserProcess names the browser whose running process triggers a
	// stale-history warning.
	BrowserProcess string `koanf:"browser_process"`

	// TokenFile holds the saved bearer token.
	TokenFile string `koanf:"token_file"`

	// CandidateLimit caps the number of history rows scanned.
	CandidateLimit int `koanf:"candidate_limit"`

	// EnrichWorkers bounds concurrent metadata requests.
	EnrichWorkers int `koanf:"enrich_workers"`

	// EnrichTimeoutMS is the per-request metadata timeout.
	EnrichTimeoutMS int `koanf:"enrich_timeout_ms"`

	// EnrichRetries is the number of retries for a failed metadata request.
	EnrichRetries int `koanf:"enrich_retries"`

	// FetchTimeoutMS bounds the full report download.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// RawReportPath is where the downloaded JSON payload is written.
	RawReportPath string `koanf:"raw_report_path"`

	// OutputDir receives exported workbooks.
	OutputDir string `koanf:"output_dir"`

	// MetricsFile, when set, receives a Prometheus text dump at exit.
	MetricsFile string `koanf:"metrics_file"`

	// OTLPEndpoint, when set (e.g. http://localhost:4318), enables trace
	// export over OTLP/HTTP.
	OTLPEndpoint string `koanf:"otlp_endpoint"`

	// Best Swings qualification bounds, in display units (mm, degrees).
	BestMinSmashFactor  float64 `koanf:"best_min_smash_factor"`
	BestMaxImpactHeight float64 `koanf:"best_max_impact_height"`
	BestMaxImpactOffset float64 `koanf:"best_max_impact_offset"`
	BestMaxClubPath     float64 `koanf:"best_max_club_path"`
	BestMaxFaceAngle    float64 `koanf:"best_max_face_angle"`

	// Fixed environment block sent with every full report request.
	BallType        string  `koanf:"ball_type"`
	Altitude        float64 `koanf:"altitude"`
	Temperature     float64 `koanf:"temperature"`
	TemperatureUnit string  `koanf:"temperature_unit"`
	Pressure        float64 `koanf:"pressure"`
	Wind            float64 `koanf:"wind"`
	Humidity        float64 `koanf:"humidity"`
}

// New creates a Config with defaults.
func New() *Config {
	profile := defaultBrowserProfile()
	return &Config{
		LogLevel:        "info",
		APIBaseURL:      "https://golf-player-activities.trackmangolf.com",
		ReportDomain:    "trackmangolf.com",
		ReportPageURL:   "https://web-dynamic-reports.trackmangolf.com/?r=",
		HistoryPath:     filepath.Join(profile, "History"),
		CookiesPath:     filepath.Join(profile, "Network", "Cookies"),
		BrowserProcess:  "chrome",
		TokenFile:       "trackman_token.txt",
		CandidateLimit:  50,
		EnrichWorkers:   5,
		EnrichTimeoutMS: 10_000,
		EnrichRetries:   2,
		FetchTimeoutMS:  60_000,
		RawReportPath:   "trackman_full_report.json",
		OutputDir:       defaultOutputDir(),

		BestMinSmashFactor:  1.45,
		BestMaxImpactHeight: 10,
		BestMaxImpactOffset: 10,
		BestMaxClubPath:     4,
		BestMaxFaceAngle:    2,

		BallType:        "Premium",
		Altitude:        0,
		Temperature:     25,
		TemperatureUnit: "Celsius",
		Pressure:        1013,
		Wind:            0,
		Humidity:        50,
	}
}

// EnrichTimeout returns the per-request metadata timeout.
func (c *Config) EnrichTimeout() time.Duration {
	return time.Duration(c.EnrichTimeoutMS) * time.Millisecond
}

// FetchTimeout returns the full report download timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// defaultBrowserProfile returns Chrome's default profile directory for the
// running OS.
func defaultBrowserProfile() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, "Google", "Chrome", "User Data", "Default")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default")
	default:
		return filepath.Join(home, ".config", "google-chrome", "Default")
	}
}

func defaultOutputDir() string {
	if runtime.GOOS == "windows" {
		return `C:\Trackman\Data`
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Trackman", "Data")
}
