package grpc

import (
	"context"
	"sync"
	"time"

	"toolrental-backend/internal/api/grpc/interceptor"
	"toolrental-backend/internal/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check service name reported alongside the overall ("") status.
const ServiceName = "toolrental.v1.Rental"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker mirrors database reachability into the gRPC health service.
type HealthChecker struct {
	server   *health.Server
	db       Pinger
	interval time.Duration

	mu      sync.Mutex
	serving bool
}

func NewHealthChecker(db Pinger, interval time.Duration) *HealthChecker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	h := &HealthChecker{
		server:   health.NewServer(),
		db:       db,
		interval: interval,
	}
	h.setServing(false)
	return h
}

func (h *HealthChecker) Server() healthpb.HealthServer {
	return h.server
}

// Check pings the database once and updates the served status.
func (h *HealthChecker) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, h.interval/2+time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	serving := err == nil

	h.mu.Lock()
	changed := serving != h.serving
	h.mu.Unlock()
	if changed {
		if err != nil {
			logger.Warn("Database unreachable, reporting NOT_SERVING", "error", err)
		} else {
			logger.Info("Database reachable, reporting SERVING")
		}
	}
	h.setServing(serving)
	return serving
}

func (h *HealthChecker) setServing(serving bool) {
	h.mu.Lock()
	h.serving = serving
	h.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
}

// Run checks on every tick until ctx is done, then marks everything NOT_SERVING.
func (h *HealthChecker) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// NewServer builds the gRPC server carrying health and reflection.
func NewServer(h *HealthChecker, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(interceptor.Recovery(), interceptor.Logging()),
	}, opts...)
	s := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(s, h.Server())

	// Register reflection service for grpcurl
	reflection.Register(s)
	return s
}
