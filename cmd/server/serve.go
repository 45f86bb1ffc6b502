package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"webtools/bodyparsing"
	"webtools/config"
	"webtools/datetime"
	"webtools/encoding"
	"webtools/grpc"
	"webtools/httpapi"
	"webtools/logging"
	"webtools/regexengine"
	"webtools/scanner"
	"webtools/tools"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var configPath, logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP tools server and the gRPC health server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd.ErrOrStderr(), configPath, logLevel)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file. Defaults are used for anything it does not set.")
	cmd.Flags().StringVar(&logLevel, "loglevel", "", "overrides the log level of the config file. Can be one of: trace, debug, info, warn, error, fatal, panic.")

	return cmd
}

// runServe is the dependency injection composition root. It wires up the service from the configuration and runs it until ctx is done.
func runServe(ctx context.Context, logOut io.Writer, configPath string, logLevel string) (err error) {
	c, err := config.Load(configPath)
	if err != nil {
		return
	}

	if logLevel != "" {
		c.LogLevel = logLevel
	}

	logger, err := logging.NewLogger(logOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return
	}

	ef, err := regexengine.NewEngineFactory(c.Engine, c.MatchTimeout)
	if err != nil {
		return
	}

	var rl tools.ResultsLogger
	if c.ResultsLog.Path != "" {
		var frl *logging.FileResultsLogger
		frl, err = logging.NewFileResultsLogger(logging.NewLogFileSystem(), logger, c.ResultsLog.Path)
		if err != nil {
			err = fmt.Errorf("error while creating file results logger: %w", err)
			return
		}
		defer frl.Close()
		rl = frl
	} else {
		rl = logging.NewZerologResultsLogger(logger)
	}

	metrics, err := httpapi.NewMetrics(otel.Meter("webtools/httpapi"))
	if err != nil {
		err = fmt.Errorf("error while creating metrics instruments: %w", err)
		return
	}

	toolsServer := tools.NewServer(logger, scanner.NewScanner(ef), encoding.NewURLCodec(), datetime.NewCalculator(), rl)
	rbp := bodyparsing.NewRequestBodyParser(c.LengthLimits())
	httpServer := httpapi.NewHTTPServer(c.Listen, httpapi.NewHandler(logger, toolsServer, rbp, rl, metrics))
	healthServer := grpc.NewHealthServer(logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("listen", c.Listen).Str("engine", c.Engine).Msg("Starting HTTP tools server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error while running HTTP tools server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		healthServer.SetServing(true)
		if err := healthServer.Serve(c.HealthNetwork, c.HealthAddress); err != nil {
			return fmt.Errorf("error while running gRPC health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down")
		healthServer.SetServing(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		healthServer.Stop()
		return err
	})

	err = g.Wait()
	if err != nil {
		logger.Error().Err(err).Msg("Server stopped with error")
		return
	}

	logger.Info().Msg("Server stopped")
	return
}
