package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/c360/graphdeco/decorate"
	"github.com/c360/graphdeco/graph"
	"github.com/c360/graphdeco/metric"
	"github.com/c360/graphdeco/prefs"
	"github.com/c360/graphdeco/updater"
	"github.com/c360/graphdeco/updaterregistry"
)

var (
	serveConfigPath   string
	serveEmbeddedPath string
	serveNATSURL      string
	serveKVBucket     string
	serveMetricsAddr  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a decoration pass and keep the updaters running",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "configuration file (json, yaml, toml, properties)")
	serveCmd.Flags().StringVar(&serveEmbeddedPath, "embedded-config", "", "embedded configuration properties file (lower precedence)")
	serveCmd.Flags().StringVar(&serveNATSURL, "nats-url", "", "NATS server URL for KV-backed configuration")
	serveCmd.Flags().StringVar(&serveKVBucket, "kv-bucket", "graphdeco_config", "NATS KV bucket holding configuration sections")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", ":9090", "metrics listen address, empty to disable")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(logLevel, logFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, cleanup, err := buildSource(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	g := graph.New()
	if serveEmbeddedPath != "" {
		if err := attachEmbeddedConfig(g, serveEmbeddedPath); err != nil {
			return err
		}
	}

	registry := updater.NewRegistry()
	updaterregistry.Register(registry)

	metrics := metric.NewRegistry()
	decorator := decorate.New(registry, logger, metrics)

	report := decorator.Setup(ctx, g, source)
	if report.Aborted != nil && report.Count(decorate.StatusConfigured) == 0 {
		decorator.Shutdown(g)
		return fmt.Errorf("decoration pass aborted with nothing configured: %w", report.Aborted)
	}

	var metricsServer *http.Server
	if serveMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: serveMetricsAddr, Handler: mux}
		go func() {
			logger.Info("Serving metrics", "addr", serveMetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	decorator.Shutdown(g)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	return nil
}

// buildSource picks the primary configuration source: a local file or a
// NATS KV bucket. The returned cleanup releases the NATS connection when one
// was opened.
func buildSource(ctx context.Context) (prefs.Source, func(), error) {
	nop := func() {}

	switch {
	case serveConfigPath != "":
		source, err := prefs.LoadFile(serveConfigPath)
		return source, nop, err
	case serveNATSURL != "":
		nc, err := nats.Connect(serveNATSURL, nats.Name(appName))
		if err != nil {
			return nil, nop, fmt.Errorf("connect to NATS: %w", err)
		}
		cleanup := func() { _ = nc.Drain() }

		js, err := jetstream.New(nc)
		if err != nil {
			cleanup()
			return nil, nop, fmt.Errorf("open JetStream: %w", err)
		}
		kv, err := js.KeyValue(ctx, serveKVBucket)
		if err != nil {
			cleanup()
			return nil, nop, fmt.Errorf("open KV bucket %q: %w", serveKVBucket, err)
		}
		return prefs.NewKVSource(ctx, kv), cleanup, nil
	default:
		return nil, nop, fmt.Errorf("either --config or --nats-url is required")
	}
}

func attachEmbeddedConfig(g *graph.Graph, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open embedded config: %w", err)
	}
	defer func() { _ = f.Close() }()

	props, err := prefs.ParseProperties(f)
	if err != nil {
		return err
	}
	g.SetEmbeddedConfig(&graph.EmbeddedConfig{Properties: props})
	return nil
}
