package config

import (
	"os"
	"strconv"
)

// Config is the env-provided service configuration.
type Config struct {
	Port string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	ArchiveBucket  string

	// Empty NatsURL disables event publication.
	NatsURL string

	SandboxImage       string
	VNCPort            int
	CodeServerPort     int
	StopTimeoutSeconds int

	// Optional runtime client decorators. Zero disables.
	EngineRetries            int
	EngineRetryDelayMS       int
	MaxConcurrentEngineCalls int
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8090"),

		RedisAddr:     getEnv("REDIS_HOST", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		ArchiveBucket:  getEnv("ARCHIVE_BUCKET", "session-workspaces"),

		NatsURL: getEnv("NATS_URL", ""),

		SandboxImage:       getEnv("SANDBOX_IMAGE", "assessment-sandbox:latest"),
		VNCPort:            getEnvInt("SANDBOX_VNC_PORT", 6080),
		CodeServerPort:     getEnvInt("SANDBOX_CODE_PORT", 8443),
		StopTimeoutSeconds: getEnvInt("STOP_TIMEOUT_SECONDS", 30),

		EngineRetries:            getEnvInt("ENGINE_RETRIES", 0),
		EngineRetryDelayMS:       getEnvInt("ENGINE_RETRY_DELAY_MS", 500),
		MaxConcurrentEngineCalls: getEnvInt("MAX_CONCURRENT_ENGINE_CALLS", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
