package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/utkarshgupta137/httpmock/pkg/config"
	"github.com/utkarshgupta137/httpmock/pkg/httpmock"
	"github.com/utkarshgupta137/httpmock/pkg/logging"
	"github.com/utkarshgupta137/httpmock/pkg/mockfile"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock server",
	Long: `Start the mock server.

By default the server listens on port 8080 and serves the management API
under /__mocks. Mocks can additionally be preloaded from a directory of
YAML or JSON files with --load.`,
	Example: `  # Start with defaults
  httpmockd serve

  # Start on a custom port
  httpmockd serve --port 3000

  # Preload mocks from a directory
  httpmockd serve --load ./mocks/`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().String("load", "", "directory of YAML/JSON mock files to preload")
	serveCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	serveCmd.Flags().String("log-format", "text", "log format: text, json")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Binding the cobra flags (rather than copying their values in) keeps
	// viper's precedence intact: an explicitly passed flag wins, otherwise an
	// HTTPMOCK_* environment variable, otherwise the flag default.
	v := viper.New()
	for _, name := range []string{"port", "load", "log-level", "log-format"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, nil)

	engine := httpmock.NewEngine(log)
	if cfg.LoadDir != "" {
		defs, err := mockfile.LoadDir(cfg.LoadDir)
		if err != nil {
			return fmt.Errorf("loading mocks from %s: %w", cfg.LoadDir, err)
		}
		for _, def := range defs {
			id := engine.Add(def)
			log.Debug("preloaded mock", "id", id)
		}
		log.Info("preloaded mocks", "count", len(defs), "dir", cfg.LoadDir)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{Addr: addr, Handler: engine.Handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("httpmockd listening", "addr", addr, "mocks", engine.Count())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
