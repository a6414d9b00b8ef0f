package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required,url|uri"`

	RedisAddr     string `mapstructure:"REDIS_ADDR" validate:"required,hostname_port"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	AsynqConcurrency int `mapstructure:"ASYNQ_CONCURRENCY" validate:"gte=1,lte=1000"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`

	WorkspaceRootDir    string        `mapstructure:"WORKSPACE_ROOT_DIR" validate:"required"`
	LibRootDir          string        `mapstructure:"LIB_ROOT_DIR" validate:"required"`
	TerraformBinary     string        `mapstructure:"TERRAFORM_BINARY"`
	HelmDriver          string        `mapstructure:"HELM_DRIVER" validate:"omitempty,oneof=secret secrets configmap configmaps memory"`
	ReadinessTimeout    time.Duration `mapstructure:"READINESS_TIMEOUT" validate:"required"`
	MaxParallelServices int           `mapstructure:"MAX_PARALLEL_SERVICES" validate:"gte=1,lte=64"`

	JWTSecret        string  `mapstructure:"JWT_SECRET"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=0"`
	MetricsNamespace string  `mapstructure:"METRICS_NAMESPACE" validate:"required"`

	Cluster ClusterConfig `mapstructure:",squash"`
}

// ClusterConfig identifies the cluster a worker deploys to and the cloud account that owns it.
type ClusterConfig struct {
	ClusterID      string `mapstructure:"CLUSTER_ID"`
	ClusterName    string `mapstructure:"CLUSTER_NAME"`
	CloudProvider  string `mapstructure:"CLOUD_PROVIDER" validate:"omitempty,oneof=aws scw gcp"`
	Region         string `mapstructure:"CLUSTER_REGION"`
	Zone           string `mapstructure:"CLUSTER_ZONE"`
	KubeconfigPath string `mapstructure:"KUBECONFIG_PATH"`

	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	SCWAccessKey       string `mapstructure:"SCW_ACCESS_KEY"`
	SCWSecretKey       string `mapstructure:"SCW_SECRET_KEY"`
	SCWProjectID       string `mapstructure:"SCW_DEFAULT_PROJECT_ID"`
	GCPCredentialsJSON string `mapstructure:"GOOGLE_CREDENTIALS"`
	GCPProjectID       string `mapstructure:"GOOGLE_PROJECT"`

	// AdvancedSettings is the JSON document of the cluster advanced settings.
	AdvancedSettings string `mapstructure:"CLUSTER_ADVANCED_SETTINGS" validate:"omitempty,json"`
}

var (
	cfg      *Config
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	// Defaults
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ASYNQ_CONCURRENCY", 10)
	v.SetDefault("GOMAXPROCS", 0)
	v.SetDefault("WORKSPACE_ROOT_DIR", "/tmp/converge/workspace")
	v.SetDefault("LIB_ROOT_DIR", "./lib")
	v.SetDefault("HELM_DRIVER", "secret")
	v.SetDefault("READINESS_TIMEOUT", "600s")
	v.SetDefault("MAX_PARALLEL_SERVICES", 4)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("METRICS_NAMESPACE", "converge")
	v.SetDefault("CLOUD_PROVIDER", "aws")

	// Optional config file
	_ = v.ReadInConfig()

	// Bind env without prefix for convenience
	keys := []string{
		"APP_ENV",
		"HTTP_ADDR",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"DATABASE_URL",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"ASYNQ_CONCURRENCY",
		"GOMAXPROCS",
		"WORKSPACE_ROOT_DIR",
		"LIB_ROOT_DIR",
		"TERRAFORM_BINARY",
		"HELM_DRIVER",
		"READINESS_TIMEOUT",
		"MAX_PARALLEL_SERVICES",
		"JWT_SECRET",
		"RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST",
		"METRICS_NAMESPACE",
		"CLUSTER_ID",
		"CLUSTER_NAME",
		"CLOUD_PROVIDER",
		"CLUSTER_REGION",
		"CLUSTER_ZONE",
		"KUBECONFIG_PATH",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"SCW_ACCESS_KEY",
		"SCW_SECRET_KEY",
		"SCW_DEFAULT_PROJECT_ID",
		"GOOGLE_CREDENTIALS",
		"GOOGLE_PROJECT",
		"CLUSTER_ADVANCED_SETTINGS",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Parse duration types that may come as string
	for key, dst := range map[string]*time.Duration{
		"SHUTDOWN_TIMEOUT":  &c.ShutdownTimeout,
		"READINESS_TIMEOUT": &c.ReadinessTimeout,
	} {
		if s := v.GetString(key); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}

	cfg = &c
	return cfg, nil
}

// Verbose reports whether SQL statements should be logged.
func (c *Config) Verbose() bool {
	return c.AppEnv == "development" || c.AppEnv == "test"
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// Get returns the loaded configuration. Panics if not loaded.
func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call config.Load or config.MustLoad first")
	}
	return cfg
}
