package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amar93190/Team-up/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	DBURL                   string
	DBDisablePreparedBinary bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	PprofEnabled            bool
	PprofAddr               string

	GatekeeperBaseURL              string
	GatekeeperIntrospectPath       string
	GatekeeperTimeout              time.Duration
	GatekeeperCircuitEnabled       bool
	GatekeeperCircuitFailureCount  int
	GatekeeperCircuitOpenTimeout   time.Duration
	GatekeeperCircuitHalfOpenMax   int
	UptraceEnabled                 bool
	UptraceDSN                     string
	UptraceLogsEnabled             bool
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	InternalJobToken               string
	PushProviderURL                string
	PushProviderToken              string
	NotifyQueueEnabled             bool
	NotifyQueueBaseURL             string
	NotifyQueueToken               string
	NotifyQueueTargetBaseURL       string
	NotifyQueueRetries             int
	NotifyQueueCircuitEnabled      bool
	NotifyQueueCircuitFailureCount int
	NotifyQueueCircuitOpenTimeout  time.Duration
	NotifyQueueCircuitHalfOpenMax  int
	NotifyWorkerPoolSize           int
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofAddr == "" {
		pprofAddr = ":6060"
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	notifyQueueEnabled, err := strconv.ParseBool(getEnv("NOTIFY_QUEUE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_QUEUE_ENABLED: %w", err)
	}
	notifyQueueRetries, err := getEnvAsInt("NOTIFY_QUEUE_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_QUEUE_RETRIES: %w", err)
	}
	if notifyQueueRetries < 0 {
		return Config{}, fmt.Errorf("NOTIFY_QUEUE_RETRIES must be >= 0")
	}
	notifyQueueCircuitEnabled, err := strconv.ParseBool(getEnv("NOTIFY_QUEUE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_QUEUE_CIRCUIT_ENABLED: %w", err)
	}
	notifyQueueCircuitFailureCount, err := getEnvAsInt("NOTIFY_QUEUE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_QUEUE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if notifyQueueCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NOTIFY_QUEUE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	notifyQueueCircuitOpenTimeout, err := time.ParseDuration(getEnv("NOTIFY_QUEUE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_QUEUE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if notifyQueueCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NOTIFY_QUEUE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	notifyQueueCircuitHalfOpenMax, err := getEnvAsInt("NOTIFY_QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if notifyQueueCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("NOTIFY_QUEUE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	notifyQueueBaseURL := strings.TrimSpace(getEnv("NOTIFY_QUEUE_BASE_URL", "https://qstash.upstash.io"))
	notifyQueueToken := strings.TrimSpace(getEnv("NOTIFY_QUEUE_TOKEN", ""))
	notifyQueueTargetBaseURL := strings.TrimSpace(getEnv("NOTIFY_QUEUE_TARGET_BASE_URL", ""))
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if notifyQueueEnabled {
		if notifyQueueToken == "" {
			return Config{}, fmt.Errorf("NOTIFY_QUEUE_TOKEN is required when NOTIFY_QUEUE_ENABLED=true")
		}
		if notifyQueueTargetBaseURL == "" {
			return Config{}, fmt.Errorf("NOTIFY_QUEUE_TARGET_BASE_URL is required when NOTIFY_QUEUE_ENABLED=true")
		}
		if internalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when NOTIFY_QUEUE_ENABLED=true")
		}
	}

	notifyWorkerPoolSize, err := getEnvAsInt("NOTIFY_WORKER_POOL_SIZE", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFY_WORKER_POOL_SIZE: %w", err)
	}
	if notifyWorkerPoolSize < 1 {
		return Config{}, fmt.Errorf("NOTIFY_WORKER_POOL_SIZE must be >= 1")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "team-up-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                          getEnv("DB_URL", ""),
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		GatekeeperBaseURL:              getEnv("GATEKEEPER_BASE_URL", "http://localhost:8081"),
		GatekeeperIntrospectPath:       getEnv("GATEKEEPER_INTROSPECT_PATH", "/v1/auth/introspect"),
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		UptraceLogsEnabled:             uptraceLogsEnabled,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		InternalJobToken:               internalJobToken,
		PushProviderURL:                strings.TrimSpace(getEnv("PUSH_PROVIDER_URL", "")),
		PushProviderToken:              strings.TrimSpace(getEnv("PUSH_PROVIDER_TOKEN", "")),
		NotifyQueueEnabled:             notifyQueueEnabled,
		NotifyQueueBaseURL:             notifyQueueBaseURL,
		NotifyQueueToken:               notifyQueueToken,
		NotifyQueueTargetBaseURL:       notifyQueueTargetBaseURL,
		NotifyQueueRetries:             notifyQueueRetries,
		NotifyQueueCircuitEnabled:      notifyQueueCircuitEnabled,
		NotifyQueueCircuitFailureCount: notifyQueueCircuitFailureCount,
		NotifyQueueCircuitOpenTimeout:  notifyQueueCircuitOpenTimeout,
		NotifyQueueCircuitHalfOpenMax:  notifyQueueCircuitHalfOpenMax,
		NotifyWorkerPoolSize:           notifyWorkerPoolSize,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	gatekeeperTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_TIMEOUT: %w", err)
	}

	gatekeeperCircuitEnabled, err := strconv.ParseBool(getEnv("GATEKEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_ENABLED: %w", err)
	}

	gatekeeperCircuitFailureCount, err := getEnvAsInt("GATEKEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if gatekeeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	gatekeeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if gatekeeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	gatekeeperCircuitHalfOpenMax, err := getEnvAsInt("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if gatekeeperCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.GatekeeperTimeout = gatekeeperTimeout
	cfg.GatekeeperCircuitEnabled = gatekeeperCircuitEnabled
	cfg.GatekeeperCircuitFailureCount = gatekeeperCircuitFailureCount
	cfg.GatekeeperCircuitOpenTimeout = gatekeeperCircuitOpenTimeout
	cfg.GatekeeperCircuitHalfOpenMax = gatekeeperCircuitHalfOpenMax
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
