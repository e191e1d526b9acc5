package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
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

	"github.com/KirkDiggler/pickupworld/internal/config"
	"github.com/KirkDiggler/pickupworld/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
	"github.com/KirkDiggler/pickupworld/internal/orchestrators/session"
	"github.com/KirkDiggler/pickupworld/internal/pkg/clock"
	"github.com/KirkDiggler/pickupworld/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/pickupworld/internal/redis"
	"github.com/KirkDiggler/pickupworld/internal/repositories/episodes"
	"github.com/KirkDiggler/pickupworld/internal/repositories/layouts"
)

var (
	grpcPort      int
	redisEndpoint string
	sqlitePath    string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the PickupWorld gRPC server with the configured layout and episode stores.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides server.port)")
	serverCmd.Flags().StringVar(&redisEndpoint, "redis", "", "redis endpoint(s) for layouts (overrides redis.endpoint)")
	serverCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "sqlite file for the episode log (overrides episodes.sqlite_path)")
}

func applyServerFlags(cmd *cobra.Command, c *config.Config) {
	if cmd.Flags().Changed("port") {
		c.Server.Port = grpcPort
	}
	if cmd.Flags().Changed("redis") {
		c.Redis.Endpoint = redisEndpoint
	}
	if cmd.Flags().Changed("sqlite") {
		c.Episodes.SQLitePath = sqlitePath
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	applyServerFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping")
		cancel()
	}()

	clk := clock.New()

	layoutRepo, closeLayouts, err := openLayoutRepository(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer closeLayouts()

	episodeRepo, closeEpisodes, err := openEpisodeRepository(cfg)
	if err != nil {
		return err
	}
	defer closeEpisodes()

	sessionService, err := session.NewOrchestrator(&session.Config{
		IDGenerator: idgen.NewUUID("sess"),
		Clock:       clk,
		LayoutRepo:  layoutRepo,
		EpisodeRepo: episodeRepo,
		Overview:    rpgtoolkit.NewProjector(),
	})
	if err != nil {
		return fmt.Errorf("failed to create session orchestrator: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		SessionService: sessionService,
	})
	if err != nil {
		return fmt.Errorf("failed to create environment handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(slog.Default())),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(slog.Default())),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterEnvironmentServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.EnvironmentService_ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting",
			"port", cfg.Server.Port,
			"layouts", layoutBackend(cfg),
			"episodes", episodeBackend(cfg),
		)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func openLayoutRepository(ctx context.Context, c *config.Config, clk clock.Clock) (layouts.Repository, func(), error) {
	endpoints := c.Redis.Endpoints()
	if len(endpoints) == 0 {
		return layouts.NewInMemory(clk), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := redisclient.Connect(connectCtx, endpoints, &redisclient.Options{
		PoolSize:        10,
		MinIdleConns:    2,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries:      3,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	repo, err := layouts.NewRedisRepository(&layouts.Config{
		Client: client,
		Clock:  clk,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create layout repository: %w", err)
	}

	return repo, func() { closeQuietly("redis", client) }, nil
}

func openEpisodeRepository(c *config.Config) (episodes.Repository, func(), error) {
	if c.Episodes.SQLitePath == "" {
		return episodes.NewInMemory(), func() {}, nil
	}

	repo, err := episodes.OpenSQLite(c.Episodes.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open episode log: %w", err)
	}

	return repo, func() { closeQuietly("episode log", repo) }, nil
}

func closeQuietly(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("Failed to close", "resource", name, "error", err)
	}
}

func layoutBackend(c *config.Config) string {
	if c.Redis.Endpoint == "" {
		return "memory"
	}
	return "redis"
}

func episodeBackend(c *config.Config) string {
	if c.Episodes.SQLitePath == "" {
		return "memory"
	}
	return "sqlite"
}

// interceptorLogger adapts slog to the grpc middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
