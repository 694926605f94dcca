package health

import (
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Service name reported to health checks.
const Service = "leaguerats.API"

// Server answers grpc health checks. It reports NOT_SERVING until the initial data is loaded.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger zerolog.Logger
}

func NewServer(logger zerolog.Logger) *Server {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	healthServer.SetServingStatus(Service, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Server{
		grpc:   grpcServer,
		health: healthServer,
		logger: logger,
	}
}

// Serve blocks until the listener fails or Stop is called.
func (s *Server) Serve(list net.Listener) error {
	s.logger.Info().Str("addr", list.Addr().String()).Msg("health server listening")
	return s.grpc.Serve(list)
}

func (s *Server) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus(Service, status)
	s.health.SetServingStatus("", status)
}

// Stop marks the service as not serving and stops gracefully.
func (s *Server) Stop() {
	s.SetServing(false)
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
