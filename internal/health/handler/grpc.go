package handler

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reported for the API.
const ServiceName = "healthtrack.v1.API"

// NewGRPCHealth returns a standard gRPC health server with the API service registered as NOT_SERVING
// until the first successful readiness check.
func NewGRPCHealth() *health.Server {
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

// statusSetter is the part of *health.Server the watcher updates.
type statusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// Watch runs Ready every interval and mirrors the result into hs, for both the API service and
// the empty (server-wide) service name. It returns when ctx is done.
func (c *Checker) Watch(ctx context.Context, hs statusSetter, interval time.Duration) {
	last := healthpb.HealthCheckResponse_UNKNOWN
	update := func() {
		st := healthpb.HealthCheckResponse_SERVING
		if err := c.Ready(ctx); err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			if last != st {
				log.Printf("health: not serving: %v", err)
			}
		}
		if st != last {
			hs.SetServingStatus(ServiceName, st)
			hs.SetServingStatus("", st)
			last = st
		}
	}
	update()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			update()
		}
	}
}
