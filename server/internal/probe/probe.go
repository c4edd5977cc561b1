package probe

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health entry reported for the dashboard itself. The
// empty name reports the overall server status.
const ServiceName = "launchboard.Dashboard"

// Probe is a gRPC server carrying the standard health service.
type Probe struct {
	srv    *grpc.Server
	health *health.Server
}

// New creates a Probe. All statuses start NOT_SERVING.
func New(opts ...grpc.ServerOption) *Probe {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryInterceptor())}, opts...)
	p := &Probe{
		srv:    grpc.NewServer(opts...),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(p.srv, p.health)
	p.SetServing(false)
	return p
}

// SetServing updates the overall and dashboard statuses.
func (p *Probe) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	p.health.SetServingStatus("", st)
	p.health.SetServingStatus(ServiceName, st)
}

// Serve accepts connections on lis until Stop is called.
func (p *Probe) Serve(lis net.Listener) error {
	return p.srv.Serve(lis)
}

// Drain marks every service NOT_SERVING. Later SetServing calls are ignored.
func (p *Probe) Drain() {
	p.health.Shutdown()
}

// Stop drains the health statuses and stops the server, waiting for pending
// calls to finish.
func (p *Probe) Stop() {
	p.Drain()
	p.srv.GracefulStop()
}
