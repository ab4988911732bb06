package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/obscuralabs/blind-payroll/internal/logger"
	"github.com/obscuralabs/blind-payroll/internal/service"
)

// ServiceName is the service identifier health probes may pass to target the
// payroll core specifically. The empty service name checks the process as a
// whole, per the gRPC health checking protocol.
const ServiceName = "blindpayroll.PayrollCore"

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger so that
// gRPC method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC server.
//
// The handler currently serves the standard gRPC health checking protocol
// (grpc.health.v1.Health); deployment orchestrators probe it to decide
// readiness. It reports process liveness, not dependency health.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
//
// Parameters:
//   - services: application service layer used by gRPC method handlers.
//   - logger: structured logger used for transport diagnostics.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Check implements the unary health probe. It answers SERVING for the empty
// service name and for [ServiceName], and NotFound for anything else, as the
// health protocol requires.
func (h *Handler) Check(_ context.Context, request *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	switch request.GetService() {
	case "", ServiceName:
		return &grpc_health_v1.HealthCheckResponse{
			Status: grpc_health_v1.HealthCheckResponse_SERVING,
		}, nil
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", request.GetService())
	}
}

// Watch implements the streaming health probe. The serving status never
// changes while the process is alive, so a single message is sent and the
// stream is held open until the client goes away.
func (h *Handler) Watch(request *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	current := grpc_health_v1.HealthCheckResponse_SERVING
	if s := request.GetService(); s != "" && s != ServiceName {
		current = grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN
	}

	if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: current}); err != nil {
		return err
	}

	<-stream.Context().Done()
	return nil
}
