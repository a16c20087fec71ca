package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sganes21/Dataset-Final-Project/internal/config"
	"github.com/sganes21/Dataset-Final-Project/internal/infrastructure"
	"github.com/sganes21/Dataset-Final-Project/internal/operations"
	"github.com/sganes21/Dataset-Final-Project/internal/pipeline"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts"
)

type options struct {
	configPath string
	outDir     string
	html       bool
	htmlSet    bool
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (defaults to shelterstats.yaml if present)")
	fs.StringVar(&opts.outDir, "out", "", "output directory for charts and exports (overrides output.dir)")
	fs.BoolVar(&opts.html, "html", false, "also write an interactive HTML dashboard")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "html" {
			opts.htmlSet = true
		}
	})
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// loadConfig applies the command line on top of the loaded configuration
func loadConfig(opts options) (*config.Config, *config.Paths, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.htmlSet {
		cfg.Output.HTML = opts.html
	}

	paths, err := config.GetPaths(cfg.Output.Dir)
	if err != nil {
		return nil, nil, err
	}
	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}
	return cfg, paths, nil
}

func run(ctx context.Context, opts options) error {
	start := time.Now()
	cfg, paths, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer closeLog()
	ctx = infrastructure.EnsureTraceID(ctx)
	logger = infrastructure.WithComponent(logger, "cli")

	logger.InfoContext(ctx, "Starting shelter statistics run",
		slog.String("version", contracts.Version),
		slog.String("state_export", cfg.Sources.StateExport),
		slog.String("annotations", cfg.Sources.Annotations),
		slog.String("survey", cfg.Sources.Survey),
		slog.String("output_dir", paths.OutputDir),
		slog.Bool("html", cfg.Output.HTML))

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create required directories: %w", err)
	}

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceVersion = contracts.Version
	otelCfg.Environment = cfg.Telemetry.Environment
	otelCfg.EnableTracing = cfg.Telemetry.Tracing
	otelCfg.EnableMetrics = cfg.Telemetry.Metrics
	if cfg.Telemetry.Tracing {
		traceFile, err := os.Create(paths.GetLogPath(config.TraceFile))
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		defer traceFile.Close()
		otelCfg.TraceWriter = traceFile
	}

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("OpenTelemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	runtimeMetrics, err := infrastructure.NewRuntimeMetrics(providers.Meter, start)
	if err != nil {
		return fmt.Errorf("failed to create runtime metrics: %w", err)
	}

	p, err := pipeline.New(cfg, paths, logger, pipeline.WithMetrics(metrics))
	if err != nil {
		return err
	}

	state, runErr := p.Run(ctx, operations.NewStepTracer(providers.Tracer, metrics))

	logger.LogAttrs(ctx, slog.LevelInfo, "Runtime snapshot", runtimeMetrics.Collect(ctx).LogAttrs()...)
	if err := providers.WriteMetricsTextfile(paths.GetLogPath(config.MetricsFile)); err != nil {
		logger.Warn("Failed to write metrics", slog.String("error", err.Error()))
	}

	if runErr != nil {
		infrastructure.WithError(logger, runErr).ErrorContext(ctx, "Run failed",
			slog.String("step", operations.FailedStep(runErr)))
		return runErr
	}

	for _, out := range state.Outputs() {
		size := "unknown size"
		if info, err := os.Stat(out); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Printf("wrote %s (%s)\n", out, size)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if opts.version {
		fmt.Println(contracts.GetFullVersionString(config.AppName))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		stop()
		os.Exit(1)
	}
}
