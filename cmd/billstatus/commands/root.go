package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"govinfo-billstatus/internal/components/serviceutil"
	"govinfo-billstatus/internal/components/telemetry"
	"govinfo-billstatus/internal/scrapers/govinfo"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	dumpHttp    string
	policy      string
	concurrency int
)

var client govinfo.Client
var otelShutdown func(context.Context) error

var rootCmd = &cobra.Command{
	Use:   "billstatus",
	Short: "billstatus is a CLI for crawling the govinfo BILLSTATUS bulk-data sitemaps.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initSlog(verbose)
		initTelemetry(cmd.Context())

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if policy != "" {
			cfg.Policy = policy
		}
		if concurrency > 0 {
			cfg.MaxConcurrency = concurrency
		}

		opts, err := cfg.clientOptions()
		if err != nil {
			return err
		}
		if dumpHttp != "" {
			output, err := telemetry.NewFilesystemOutput(dumpHttp)
			if err != nil {
				return fmt.Errorf("create dump directory: %w", err)
			}
			opts.DumpOutput = output
		}

		client, err = govinfo.NewClient(opts, telemetry.SlogAPI{})
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a json5 config file (default: search upwards for billstatus.json5).")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	flags.StringVar(&dumpHttp, "dump-http", "", "Write every HTTP request/response pair into this directory.")
	flags.StringVar(&policy, "policy", "", "What to do when part of a fan-out fails: fail_fast or best_effort.")
	flags.IntVar(&concurrency, "concurrency", 0, "Maximum number of concurrent requests per fan-out.")
}

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func initTelemetry(ctx context.Context) {
	t, err := telemetry.SetupFromEnv(ctx, "billstatus")
	if os.IsNotExist(err) {
		slog.Debug("no telemetry.json5 found, telemetry disabled")
		return
	}
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
		return
	}
	otelShutdown = t.Shutdown
	telemetry.InstrumentPerfStats(ctx, time.Second*30)
}

// shutdownTelemetry flushes pending spans and metrics, it is a no-op when
// telemetry was never set up.
func shutdownTelemetry() {
	if otelShutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := otelShutdown(ctx)
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
	otelShutdown = nil
}

// execute runs the command tree and flushes telemetry whether or not the
// command failed.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	shutdownTelemetry()
	return err
}

func ExecuteContext(ctx context.Context) {
	err := execute(ctx)
	if err != nil {
		serviceutil.Fatal("billstatus failed", err)
	}
}
