package utilities

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer serves the standard gRPC health checking protocol for
// orchestrators that probe over gRPC instead of HTTP.
type HealthServer struct {
	grpcServer *grpc.Server
	health     *health.Server
}

// NewHealthServer creates a gRPC server with only the health service registered.
// The overall status ("") starts as SERVING.
func NewHealthServer(serviceName string) *HealthServer {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	if serviceName != "" {
		healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	return &HealthServer{grpcServer: grpcServer, health: healthServer}
}

// Serve blocks until the listener fails or Stop is called.
func (s *HealthServer) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// Stop reports NOT_SERVING for every service and then stops the server.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
