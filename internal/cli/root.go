// Package cli wires the swingsheet commands onto the report service.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cli/browser"
	"github.com/spf13/cobra"

	service "github.com/okian/swingsheet/internal/app"
	"github.com/okian/swingsheet/internal/config"
	"github.com/okian/swingsheet/pkg/logger"
	"github.com/okian/swingsheet/pkg/metrics"
	"github.com/okian/swingsheet/pkg/telemetry"
)

const serviceName = "swingsheet"

// App holds the state shared by every command of one invocation.
type App struct {
	out  io.Writer
	cfg  *config.Config
	svc  *service.Service
	log  logger.Logger
	open func(url string) error
	tel  telemetry.Telemetry

	configPath string
	logLevel   string
}

// Option configures an App.
type Option func(*App)

// WithOutput sets where command output is printed.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.out = w
		}
	}
}

// WithConfig skips config loading and uses cfg as is.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithService skips adapter wiring and runs commands against svc.
func WithService(svc *service.Service) Option {
	return func(a *App) { a.svc = svc }
}

// WithLogger skips global logger initialization.
func WithLogger(l logger.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithOpener replaces the default browser launcher.
func WithOpener(open func(url string) error) Option {
	return func(a *App) {
		if open != nil {
			a.open = open
		}
	}
}

// New creates an App.
func New(opts ...Option) *App {
	a := &App{
		out:  os.Stdout,
		open: browser.OpenURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Command builds the root command with every subcommand attached.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "swingsheet",
		Short:         "swingsheet turns launch monitor reports into spreadsheets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		a.listCommand(),
		a.fetchCommand(),
		a.convertCommand(),
		a.exportCommand(),
		a.openCommand(),
		a.tokenCommand(),
	)
	return root
}

func (a *App) setup(ctx context.Context) error {
	if a.cfg == nil {
		cfg, err := config.Load(ctx, a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}

	if a.log == nil {
		if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFile(a.cfg.LogFile)); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		a.log = logger.Get()
		if err := logger.SetLevelString(a.cfg.LogLevel); err != nil {
			a.log.Warn(ctx, "invalid log_level; falling back to info",
				logger.String("log_level", a.cfg.LogLevel), logger.Error(err))
			_ = logger.SetLevelString("info")
		}
	}

	tel, err := telemetry.Setup(ctx, serviceName, a.cfg.OTLPEndpoint)
	if err != nil {
		a.log.Warn(ctx, "tracing disabled", logger.Error(err))
	}
	a.tel = tel

	if a.svc == nil {
		a.svc = service.FromConfig(a.cfg, a.log.Named("service"))
	}
	return nil
}

// Close flushes traces, writes the metrics file and syncs the log file.
func (a *App) Close(ctx context.Context) {
	if err := a.tel.Shutdown(ctx); err != nil && a.log != nil {
		a.log.Warn(ctx, "flush traces", logger.Error(err))
	}
	if a.cfg != nil && a.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsFile); err != nil && a.log != nil {
			a.log.Warn(ctx, "write metrics file", logger.String("path", a.cfg.MetricsFile), logger.Error(err))
		}
	}
	_ = logger.Sync()
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, opts ...Option) int {
	a := New(opts...)
	defer a.Close(context.WithoutCancel(ctx))

	root := a.Command()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "swingsheet: "+Message(err))
		return 1
	}
	return 0
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
