package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/podlanding/podcast-discovery/internal/api"
	"github.com/podlanding/podcast-discovery/internal/config"
	grpcserver "github.com/podlanding/podcast-discovery/internal/grpc"
	"github.com/podlanding/podcast-discovery/internal/metrics"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, gRPC health service and metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(runCtx, ctx)
		},
	}
}

func runServe(ctx context.Context, cc *commandContext) error {
	cfg := cc.configValue()
	logger := config.GetLogger()
	s := cc.ensureStore()

	logger.Info().
		Str("catalog_url", cfg.CatalogURL).
		Str("server_address", cfg.Server.Address).
		Int("server_port", cfg.Server.Port).
		Int("grpc_port", cfg.GRPC.Port).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Application started with configuration")

	grpcServer, healthServer := grpcserver.NewGRPCServer()
	grpcAddress := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.GRPC.Port)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", grpcAddress, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		grpcserver.WatchStore(gctx, s, healthServer)
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("address", grpcAddress).Msg("Starting gRPC server")
		return grpcServer.Serve(listener)
	})
	g.Go(func() error {
		<-gctx.Done()
		grpcServer.GracefulStop()
		return nil
	})

	g.Go(func() error {
		return api.New(s).Start(gctx, cfg.Server.Address, cfg.Server.Port)
	})

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port, func() bool {
			return !s.Snapshot().LoadedAt.IsZero()
		})
		g.Go(func() error {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return metricsServer.Shutdown(context.Background())
		})
	}

	// Initial load; failures are held in the store and retried through POST /api/refresh.
	g.Go(func() error {
		_ = s.Load(gctx)
		return nil
	})

	err = g.Wait()
	logger.Info().Msg("Server stopped gracefully")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
