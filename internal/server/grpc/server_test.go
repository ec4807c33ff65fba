package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakePinger struct {
	down atomic.Bool
}

func (p *fakePinger) PingContext(context.Context) error {
	if p.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

// startBufconn runs s on an in-memory listener and returns a health client.
func startBufconn(t *testing.T, s *HealthServer) (healthpb.HealthClient, context.CancelFunc, <-chan error) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		cancel()
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn), cancel, done
}

func waitStatus(t *testing.T, c healthpb.HealthClient, service string, want healthpb.HealthCheckResponse_ServingStatus) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	var last healthpb.HealthCheckResponse_ServingStatus
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		cancel()
		if err == nil {
			last = resp.GetStatus()
			if last == want {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("status of %q: want %v, last %v", service, want, last)
}

func TestHealth_FollowsDatabase(t *testing.T) {
	db := &fakePinger{}
	s := NewHealthServer("", nopLogger{}, db, 10*time.Millisecond)

	client, cancel, done := startBufconn(t, s)
	defer cancel()

	waitStatus(t, client, "", healthpb.HealthCheckResponse_SERVING)
	waitStatus(t, client, ServiceName, healthpb.HealthCheckResponse_SERVING)

	db.down.Store(true)
	waitStatus(t, client, "", healthpb.HealthCheckResponse_NOT_SERVING)
	waitStatus(t, client, ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	db.down.Store(false)
	waitStatus(t, client, ServiceName, healthpb.HealthCheckResponse_SERVING)

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestHealth_DownAtStart(t *testing.T) {
	db := &fakePinger{}
	db.down.Store(true)
	s := NewHealthServer("", nopLogger{}, db, time.Hour)

	client, cancel, _ := startBufconn(t, s)
	defer cancel()

	waitStatus(t, client, "", healthpb.HealthCheckResponse_NOT_SERVING)
}

func TestHealth_ShutdownMarksNotServing(t *testing.T) {
	s := NewHealthServer("", nopLogger{}, &fakePinger{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	lis := bufconn.Listen(1 << 20)
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	cancel()
	<-done

	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("want NOT_SERVING after shutdown, got %v", resp.GetStatus())
	}
}

func TestNewHealthServer_DefaultInterval(t *testing.T) {
	s := NewHealthServer("", nopLogger{}, &fakePinger{}, 0)
	if s.interval != DefaultCheckInterval {
		t.Fatalf("interval = %v, want %v", s.interval, DefaultCheckInterval)
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	s := NewHealthServer("127.0.0.1:99999", nopLogger{}, &fakePinger{}, time.Hour)
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
