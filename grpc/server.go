// Package grpc runs the gRPC side listener of the service, which offers the standard health checking protocol and server reflection.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ToolsServiceName is the service name the tools are reported healthy under. The empty service name reports the health of the whole process.
const ToolsServiceName = "webtools.Tools"

// HealthServer is the gRPC server answering health checks.
type HealthServer struct {
	logger zerolog.Logger
	srv    *grpc.Server
	health *health.Server
}

// NewHealthServer creates a HealthServer. It reports NOT_SERVING until SetServing is called.
func NewHealthServer(logger zerolog.Logger) *HealthServer {
	s := &HealthServer{
		logger: logger,
		health: health.NewServer(),
	}

	s.srv = grpc.NewServer(grpc.UnaryInterceptor(s.logUnary))
	healthpb.RegisterHealthServer(s.srv, s.health)
	reflection.Register(s.srv)
	s.SetServing(false)

	return s
}

// SetServing sets the status reported for the process and for the tools.
func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ToolsServiceName, status)
}

// Serve listens on the given network and address and serves until Stop is called.
func (s *HealthServer) Serve(network string, address string) (err error) {
	lis, err := net.Listen(network, address)
	if err != nil {
		return
	}

	err = s.ServeListener(lis)
	return
}

// ServeListener serves on an existing listener until Stop is called. Stopping before serving started is not an error.
func (s *HealthServer) ServeListener(lis net.Listener) (err error) {
	s.logger.Info().Str("address", lis.Addr().String()).Msg("Starting gRPC health server")
	err = s.srv.Serve(lis)
	if errors.Is(err, grpc.ErrServerStopped) {
		err = nil
	}
	return
}

// Stop reports NOT_SERVING to watchers and stops the server gracefully.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}

func (s *HealthServer) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	startTime := time.Now()
	resp, err = handler(ctx, req)
	s.logger.Debug().Str("method", info.FullMethod).Err(err).Dur("timeTaken", time.Since(startTime)).Msg("Handled gRPC call")
	return
}
