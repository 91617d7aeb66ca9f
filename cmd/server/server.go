package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/strain-screen/internal/clients/strainapi"
	"github.com/KirkDiggler/strain-screen/internal/config"
	"github.com/KirkDiggler/strain-screen/internal/handlers/web"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/strain"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/viewer"
	"github.com/KirkDiggler/strain-screen/internal/pkg/clock"
	"github.com/KirkDiggler/strain-screen/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/strain-screen/internal/redis"
	"github.com/KirkDiggler/strain-screen/internal/repositories/screens"
	strainview "github.com/KirkDiggler/strain-screen/internal/repositories/strain_view"
)

const (
	// healthServiceName is reported by the gRPC health server next to ""
	healthServiceName = "strainscreen.v1.StrainScreen"

	shutdownTimeout  = 30 * time.Second
	redisPingTimeout = 2 * time.Second
)

var envFile string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the strain-screen HTTP server and, when a health port is set, the gRPC health server.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&envFile, "env-file", ".env", "file with STRAIN_* variables, skipped when missing")
	config.RegisterFlags(serverCmd.Flags())
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags(), nil, envFile)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.SetDefault(newLogger(os.Stderr, cfg))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiClient, err := strainapi.New(&strainapi.Config{
		BaseURL:     cfg.StrainAPIURL,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create strain api client: %w", err)
	}

	healthChecks := map[string]web.HealthCheck{}
	loaderCfg := &strain.Config{Client: apiClient}

	if cfg.CacheEnabled() {
		rc, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{UseTLS: cfg.RedisTLS})
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer func() {
			_ = rc.Close() // nolint:errcheck // safe to ignore in cleanup
		}()

		if err := redisclient.Ping(ctx, rc, redisPingTimeout); err != nil {
			slog.Warn("redis not reachable, strain view cache will miss until it is",
				"addr", cfg.RedisAddr,
				"error", err,
			)
		}

		cache, err := strainview.NewRedisRepository(&strainview.Config{
			Client: rc,
			Clock:  clock.New(),
		})
		if err != nil {
			return fmt.Errorf("failed to create strain view cache: %w", err)
		}

		loaderCfg.Cache = cache
		loaderCfg.CacheTTL = cfg.CacheTTL
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisclient.Ping(ctx, rc, redisPingTimeout)
		}
	}

	loader, err := strain.NewOrchestrator(loaderCfg)
	if err != nil {
		return fmt.Errorf("failed to create strain loader: %w", err)
	}

	screenRepo, err := screens.NewInMemory(&screens.InMemoryConfig{
		Clock:      clock.New(),
		IdleTTL:    cfg.ScreenIdleTTL,
		MaxScreens: cfg.MaxScreens,
	})
	if err != nil {
		return fmt.Errorf("failed to create screen registry: %w", err)
	}
	go screenRepo.RunEviction(ctx, max(cfg.ScreenIdleTTL/2, time.Second))

	viewerSvc, err := viewer.NewOrchestrator(&viewer.Config{
		Screens:     screenRepo,
		Loader:      loader,
		LoadTimeout: cfg.LoadTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}

	handler, err := web.NewHandler(&web.HandlerConfig{
		Viewer:          viewerSvc,
		Loader:          loader,
		IDGenerator:     idgen.NewUUID("sess"),
		RefreshInterval: cfg.RefreshInterval,
		SettleTime:      cfg.SettleTime,
		HealthChecks:    healthChecks,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("http server starting",
			"port", cfg.Port,
			"strain_api", cfg.StrainAPIURL,
			"cache", cfg.CacheEnabled(),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	var grpcServer *grpc.Server
	var healthServer *health.Server
	if cfg.HealthPort != 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HealthPort))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		grpcServer, healthServer = newHealthServer()
		go func() {
			slog.Info("grpc health server starting", "port", cfg.HealthPort)
			if err := grpcServer.Serve(lis); err != nil {
				errChan <- fmt.Errorf("failed to serve grpc: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("received shutdown signal, gracefully stopping")
	case err := <-errChan:
		return err
	}

	if healthServer != nil {
		healthServer.Shutdown()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful http shutdown failed", "error", err)
	}

	if grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
	}

	slog.Info("server stopped")
	return nil
}

// newHealthServer builds the gRPC server that answers grpc.health.v1 checks
func newHealthServer() (*grpc.Server, *health.Server) {
	logger := grpc_logging.LoggerFunc(logFunc)

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, healthServer
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == config.LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// logFunc bridges go-grpc-middleware logging to slog
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
