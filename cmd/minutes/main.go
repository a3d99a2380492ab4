// Command minutes analyzes meeting recordings into structured notes,
// composes minutes documents, and publishes them to storage and
// project-management destinations.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meeting-minutes/internal/common/config"
	"meeting-minutes/internal/common/logger"
)

var (
	configFile  string
	metricsAddr string
)

func main() {
	root := &cobra.Command{
		Use:           "minutes",
		Short:         "Meeting recording analysis and minutes publishing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: config.yaml next to the binary)")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(newPublishCommand())
	root.AddCommand(newChatCommand())
	root.AddCommand(newExportChatCommand())
	root.AddCommand(newHistoryCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newApp loads configuration and builds the shared dependency container.
// Called from each subcommand's RunE so flag parsing errors surface first.
func newApp() (*app, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	return buildApp(cfg, log, zapLog)
}
