package probe_test

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/launchboard/launchboard/server/internal/probe"
)

// startProbe serves p on a random TCP port and returns a connected health
// client.
func startProbe(t *testing.T, p *probe.Probe) healthpb.HealthClient {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	go p.Serve(lis) //nolint:errcheck

	t.Cleanup(func() {
		p.Stop()
		lis.Close()
	})

	conn, err := grpc.Dial(lis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	) //nolint:staticcheck
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func check(t *testing.T, c healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("Check(%q): %v", service, err)
	}
	return resp.GetStatus()
}

func TestProbe_StartsNotServing(t *testing.T) {
	c := startProbe(t, probe.New())

	for _, svc := range []string{"", probe.ServiceName} {
		if got := check(t, c, svc); got != healthpb.HealthCheckResponse_NOT_SERVING {
			t.Errorf("%q: got %v, want NOT_SERVING", svc, got)
		}
	}
}

func TestProbe_ServingAfterLoad(t *testing.T) {
	p := probe.New()
	c := startProbe(t, p)

	p.SetServing(true)
	for _, svc := range []string{"", probe.ServiceName} {
		if got := check(t, c, svc); got != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("%q: got %v, want SERVING", svc, got)
		}
	}
}

func TestProbe_DrainStopsServing(t *testing.T) {
	p := probe.New()
	c := startProbe(t, p)

	p.SetServing(true)
	p.Drain()
	if got := check(t, c, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("after Drain: got %v, want NOT_SERVING", got)
	}

	// SetServing after Drain is ignored.
	p.SetServing(true)
	if got := check(t, c, probe.ServiceName); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("SetServing after Drain: got %v, want NOT_SERVING", got)
	}
}

func TestProbe_UnknownService(t *testing.T) {
	c := startProbe(t, probe.New())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: "nope"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("code: got %v, want NotFound", status.Code(err))
	}
}
