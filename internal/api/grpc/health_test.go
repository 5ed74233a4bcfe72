package grpc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (f *fakePinger) PingContext(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakePinger) set(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func servingStatus(t *testing.T, h *HealthChecker, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestHealthChecker_FollowsDatabase(t *testing.T) {
	db := &fakePinger{}
	h := NewHealthChecker(db, time.Second)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(t, h, ""))

	assert.True(t, h.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, servingStatus(t, h, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, servingStatus(t, h, ServiceName))

	db.set(errors.New("connection refused"))
	assert.False(t, h.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(t, h, ServiceName))
}

func TestHealthChecker_RunStopsOnCancel(t *testing.T) {
	h := NewHealthChecker(&fakePinger{}, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return servingStatus(t, h, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(t, h, ""))
}

func TestNewServer_RegistersHealth(t *testing.T) {
	s := NewServer(NewHealthChecker(&fakePinger{}, time.Second))
	defer s.Stop()

	info := s.GetServiceInfo()
	assert.Contains(t, info, "grpc.health.v1.Health")
	assert.Contains(t, info, "grpc.reflection.v1.ServerReflection")
}
