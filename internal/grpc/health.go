package grpc

import (
	"context"

	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/store"
)

// StatusFor maps a store snapshot to the health of the catalog service:
// SERVING once a load has succeeded, NOT_SERVING before that and while the
// last load failed.
func StatusFor(st store.State) grpc_health_v1.HealthCheckResponse_ServingStatus {
	if st.Err != nil || st.LoadedAt.IsZero() {
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}

// WatchStore keeps the catalog service status in hs in step with s until ctx
// is done. It blocks; run it in its own goroutine.
func WatchStore(ctx context.Context, s *store.Store, hs *health.Server) {
	logger := config.GetLogger().With().Str("component", "grpc-health").Logger()

	updates, cancel := s.Subscribe()
	defer cancel()

	current := StatusFor(s.Snapshot())
	hs.SetServingStatus(ServiceName, current)

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			next := StatusFor(st)
			if next == current {
				continue
			}
			current = next
			hs.SetServingStatus(ServiceName, next)
			logger.Info().Str("service", ServiceName).Str("status", next.String()).Msg("Health status changed")
		}
	}
}
