package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	docker "github.com/docker/docker/client"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	natsgo "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/X5-main/hr-platform-sub000/internal/api"
	"github.com/X5-main/hr-platform-sub000/internal/archive"
	"github.com/X5-main/hr-platform-sub000/internal/config"
	"github.com/X5-main/hr-platform-sub000/internal/events"
	"github.com/X5-main/hr-platform-sub000/internal/record"
	"github.com/X5-main/hr-platform-sub000/internal/runtimectl"
	"github.com/X5-main/hr-platform-sub000/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := config.Load()
	logger.Info("starting sandboxd", "port", cfg.Port, "image", cfg.SandboxImage)

	runtime := buildRuntimeClient(cfg, logger)
	archiveStore := archive.NewMinioStore(getMinioClient(cfg, logger))
	records := record.NewRedisStore(getRedisClient(cfg))
	publisher := events.NewPublisher(getNatsConn(cfg, logger))

	sessionCfg := session.DefaultConfig()
	sessionCfg.Defaults.Image = cfg.SandboxImage
	sessionCfg.VNCPort = cfg.VNCPort
	sessionCfg.CodeServerPort = cfg.CodeServerPort
	sessionCfg.ArchiveBucket = cfg.ArchiveBucket
	sessionCfg.StopTimeoutSeconds = cfg.StopTimeoutSeconds

	orchestrator := session.NewOrchestrator(runtime, archiveStore, publisher, logger, sessionCfg)
	reconciler := session.NewReconciler(runtime, sessionCfg)
	server := api.NewServer(orchestrator, reconciler, records, runtime, logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.Router()}
	go func() {
		logger.Info("sandboxd listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("sandboxd stopped")
}

func buildRuntimeClient(cfg config.Config, logger *slog.Logger) runtimectl.Client {
	dockerClient, err := docker.NewClientWithOpts(docker.FromEnv, docker.WithAPIVersionNegotiation())
	if err != nil {
		logger.Error("container engine client", "error", err)
		os.Exit(1)
	}

	var client runtimectl.Client = runtimectl.NewDockerClient(dockerClient)
	if cfg.EngineRetries > 0 {
		client = runtimectl.NewRetryDecorator(client, cfg.EngineRetries,
			time.Duration(cfg.EngineRetryDelayMS)*time.Millisecond)
	}
	if cfg.MaxConcurrentEngineCalls > 0 {
		client = runtimectl.NewConcurrencyLimitDecorator(client, cfg.MaxConcurrentEngineCalls)
	}
	return client
}

func getRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func getMinioClient(cfg config.Config, logger *slog.Logger) *minio.Client {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		logger.Error("object storage client", "error", err)
		os.Exit(1)
	}
	return client
}

func getNatsConn(cfg config.Config, logger *slog.Logger) *natsgo.Conn {
	if cfg.NatsURL == "" {
		return nil
	}
	nc, err := natsgo.Connect(cfg.NatsURL, natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second), natsgo.Name("sandboxd"))
	if err != nil {
		logger.Warn("nats unavailable, events disabled", "error", err)
		return nil
	}
	return nc
}
