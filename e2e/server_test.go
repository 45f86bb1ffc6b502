package e2e

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric/noop"

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

type testServer struct {
	baseURL        string
	healthSockAddr string
	resultsLogPath string
	resultsLogger  *logging.FileResultsLogger
}

// startServer runs the whole service in-process, with the HTTP tools server on a loopback port and the health server on a unix socket.
func startServer(t *testing.T, c config.Main) *testServer {
	dir := t.TempDir()
	ts := &testServer{
		healthSockAddr: filepath.Join(dir, "health.sock"),
		resultsLogPath: filepath.Join(dir, "log", "results_json.log"),
	}
	logger := zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.ErrorLevel).With().Timestamp().Caller().Logger()

	ef, err := regexengine.NewEngineFactory(c.Engine, c.MatchTimeout)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	ts.resultsLogger, err = logging.NewFileResultsLogger(logging.NewLogFileSystem(), logger, ts.resultsLogPath)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	metrics, err := httpapi.NewMetrics(noop.NewMeterProvider().Meter("e2e"))
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	toolsServer := tools.NewServer(logger, scanner.NewScanner(ef), encoding.NewURLCodec(), datetime.NewCalculator(), ts.resultsLogger)
	rbp := bodyparsing.NewRequestBodyParser(c.LengthLimits())
	httpServer := httpapi.NewHTTPServer("", httpapi.NewHandler(logger, toolsServer, rbp, ts.resultsLogger, metrics))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}
	ts.baseURL = "http://" + lis.Addr().String()
	go func() {
		if err := httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("HTTP server stopped: %s", err)
		}
	}()

	healthServer := grpc.NewHealthServer(logger)
	healthServer.SetServing(true)
	go func() {
		_ = healthServer.Serve("unix", ts.healthSockAddr)
	}()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
		healthServer.Stop()
		_ = ts.resultsLogger.Close()
	})

	return ts
}
