// Package health serves the standard gRPC health protocol, reporting
// whether the code-table backend is reachable.
package health

import (
	"net"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CodeTableService is the service name clients pass to Check.
const CodeTableService = "farecard.CodeTable"

// Server wraps a gRPC server with only the health service registered.
// It implements service.StatusSink.
type Server struct {
	grpc   *grpc.Server
	health *grpchealth.Server
}

func NewServer() *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: grpchealth.NewServer(),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)

	// Unknown until the first probe.
	s.health.SetServingStatus(CodeTableService, healthpb.HealthCheckResponse_UNKNOWN)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s
}

func (s *Server) SetCodeTableUp(up bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if up {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(CodeTableService, status)
}

// Serve blocks accepting connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop marks every service NOT_SERVING and stops gracefully.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
