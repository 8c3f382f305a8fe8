package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/smartwatch/internal/adapters/console"
	"github.com/okian/smartwatch/internal/adapters/render"
	app "github.com/okian/smartwatch/internal/app"
	"github.com/okian/smartwatch/internal/config"
	"github.com/okian/smartwatch/pkg/logger"
	"github.com/okian/smartwatch/pkg/metrics"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// The logger is not available yet.
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(exitFailure)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, metrics.Default())
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

// run executes both survey procedures and returns the process exit code.
func run(ctx context.Context, stdout io.Writer, mm *metrics.Manager) int {
	log := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		return exitFailure
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithConfig(cfg),
		app.WithLogger(log),
		app.WithMetrics(mm),
		app.WithRenderer(render.New(render.WithDPI(cfg.ImageDPI))),
		app.WithPrinter(console.New(console.WithWriter(stdout))),
	)
	log.Info(ctx, "starting survey charts",
		logger.String("run_id", svc.RunID()),
		logger.String("data_file", cfg.DataFile),
		logger.String("output_dir", cfg.OutputDir),
	)

	runErr := svc.Run(ctx)

	if cfg.MetricsFile != "" {
		if err := mm.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "failed to export metrics", logger.String("file", cfg.MetricsFile), logger.Error(err))
		}
	}

	if runErr != nil {
		fields := []logger.Field{logger.String("run_id", svc.RunID()), logger.Error(runErr)}
		var se *app.StageError
		if errors.As(runErr, &se) {
			fields = append(fields, logger.String("procedure", se.Procedure), logger.String("stage", se.Stage))
		}
		log.Error(ctx, "survey charts failed", fields...)
		return exitFailure
	}
	log.Info(ctx, "survey charts finished", logger.String("run_id", svc.RunID()))
	return exitOK
}
