package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iac-studio/converge/internal/cloudprovider"
	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/helm"
	"github.com/iac-studio/converge/internal/kubernetes"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/internal/provisioner/terraform"
	"github.com/iac-studio/converge/internal/queue/tasks"
	"github.com/iac-studio/converge/internal/repository"
	"github.com/iac-studio/converge/internal/service"
	"github.com/iac-studio/converge/internal/telemetry"
	"github.com/iac-studio/converge/internal/template"
	"github.com/iac-studio/converge/pkg/config"
	"github.com/iac-studio/converge/pkg/database"
	"github.com/iac-studio/converge/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat, logger.WithService("converge-worker"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	_ = rdb.Close()

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, cfg.Verbose())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.WorkspaceRootDir, 0o755); err != nil {
		log.Fatal("failed to create workspace root dir", zap.Error(err))
	}

	var advanced models.ClusterAdvancedSettings
	if cfg.Cluster.AdvancedSettings != "" {
		if err := json.Unmarshal([]byte(cfg.Cluster.AdvancedSettings), &advanced); err != nil {
			log.Fatal("invalid cluster advanced settings", zap.Error(err))
		}
	}

	provider, err := cloudprovider.New(models.CloudProviderKind(cfg.Cluster.CloudProvider), cfg.Cluster.Region, cfg.Cluster.Zone,
		cloudprovider.Credentials{
			AWSAccessKeyID:     cfg.Cluster.AWSAccessKeyID,
			AWSSecretAccessKey: cfg.Cluster.AWSSecretAccessKey,
			SCWAccessKey:       cfg.Cluster.SCWAccessKey,
			SCWSecretKey:       cfg.Cluster.SCWSecretKey,
			SCWProjectID:       cfg.Cluster.SCWProjectID,
			GCPCredentialsJSON: cfg.Cluster.GCPCredentialsJSON,
			GCPProjectID:       cfg.Cluster.GCPProjectID,
		})
	if err != nil {
		log.Fatal("invalid cloud provider", zap.Error(err))
	}

	clientset, _, err := kubernetes.NewClientset(port.KubeAccess{
		KubeconfigPath: cfg.Cluster.KubeconfigPath,
		Env:            provider.CredentialsEnvironmentVariables(),
	})
	if err != nil {
		log.Fatal("failed to build kubernetes client", zap.Error(err))
	}

	infra, err := terraform.NewExecutor(cfg.TerraformBinary)
	if err != nil {
		log.Fatal("terraform is not available", zap.Error(err))
	}

	metrics := telemetry.NewMetrics(cfg.MetricsNamespace)
	rt := tasks.Runtime{
		Cluster: &service.Cluster{
			ID:               cfg.Cluster.ClusterID,
			Name:             cfg.Cluster.ClusterName,
			Region:           cfg.Cluster.Region,
			Zone:             cfg.Cluster.Zone,
			KubeconfigPath:   cfg.Cluster.KubeconfigPath,
			AdvancedSettings: advanced,
			Client:           kubernetes.NewClusterClient(clientset),
		},
		CloudProvider:    provider,
		Renderer:         template.NewRenderer(),
		Charts:           helm.NewChartManager(cfg.HelmDriver),
		Infra:            infra,
		Sink:             events.NewZapSink(log),
		Metrics:          metrics,
		ReadinessTimeout: cfg.ReadinessTimeout,
		WorkspaceRootDir: cfg.WorkspaceRootDir,
		LibRootDir:       cfg.LibRootDir,
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		},
		asynq.Config{
			Concurrency:     cfg.AsynqConcurrency,
			Queues:          map[string]int{tasks.QueueEnvironments: 1},
			ShutdownTimeout: cfg.ShutdownTimeout,
		},
	)

	mux := asynq.NewServeMux()
	handler := tasks.NewEnvironmentTaskHandler(rt, repository.NewExecutionRepository(db), cfg.MaxParallelServices)
	handler.Register(mux)

	// metrics are scraped from the worker, the pipelines run here
	metricsSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.L().Info("asynq worker starting",
			zap.Int("concurrency", cfg.AsynqConcurrency),
			zap.String("cluster_id", cfg.Cluster.ClusterID),
			zap.String("cloud_provider", cfg.Cluster.CloudProvider),
		)
		if err := srv.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.L().Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.L().Error("worker stopped with error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = metricsSrv.Shutdown(shutdownCtx)
	srv.Shutdown()
}
