// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// DatabaseConfig holds PostgreSQL connection details for itinerary history.
type DatabaseConfig struct {
	Host           string `mapstructure:"HOST" yaml:"host"`
	Port           int    `mapstructure:"PORT" yaml:"port"`
	User           string `mapstructure:"USER" yaml:"user"`
	Password       string `mapstructure:"PASSWORD" yaml:"password"`
	Name           string `mapstructure:"NAME" yaml:"name"`
	MaxConnections int    `mapstructure:"MAX_CONNECTIONS" yaml:"max_connections"`
	SSLMode        string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and pgxpool.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS" yaml:"address"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	DB           int    `mapstructure:"DB" yaml:"db"`
	UseTLS       bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	PoolSize     int    `mapstructure:"POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
}

// PhotosConfig holds credentials and tuning for the photo providers.
type PhotosConfig struct {
	UnsplashAccessKey string `mapstructure:"UNSPLASH_ACCESS_KEY" yaml:"unsplash_access_key"`
	PexelsAPIKey      string `mapstructure:"PEXELS_API_KEY" yaml:"pexels_api_key"`
	TimeoutSeconds    int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
	// CacheTTLSeconds of 0 disables the Redis search cache.
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS" yaml:"cache_ttl_seconds"`
	DictionaryFile  string `mapstructure:"DICTIONARY_FILE" yaml:"dictionary_file"`
}

// RateLimitConfig holds configuration for the generation rate limiter.
type RateLimitConfig struct {
	GenerateRequests int `mapstructure:"GENERATE_REQUESTS" yaml:"generate_requests"`
	WindowSeconds    int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// WorkerPoolConfig holds configuration for the background generation pool.
type WorkerPoolConfig struct {
	MaxWorkers             int `mapstructure:"MAX_WORKERS" yaml:"max_workers"`
	QueueSize              int `mapstructure:"QUEUE_SIZE" yaml:"queue_size"`
	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" yaml:"shutdown_timeout_seconds"`
	// JobTimeoutSeconds bounds one generation job. It must exceed the LLM timeout
	// because enrichment runs after the model call.
	JobTimeoutSeconds int `mapstructure:"JOB_TIMEOUT_SECONDS" yaml:"job_timeout_seconds"`
}

// TasksConfig controls how long asynchronous results stay readable.
type TasksConfig struct {
	ResultTTLSeconds int `mapstructure:"RESULT_TTL_SECONDS" yaml:"result_ttl_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server     ServerConfig     `mapstructure:"SERVER" yaml:"server"`
	Database   DatabaseConfig   `mapstructure:"DATABASE" yaml:"database"`
	Redis      RedisConfig      `mapstructure:"REDIS" yaml:"redis"`
	LLM        LLMConfig        `mapstructure:"LLM" yaml:"llm"`
	Photos     PhotosConfig     `mapstructure:"PHOTOS" yaml:"photos"`
	RateLimit  RateLimitConfig  `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	WorkerPool WorkerPoolConfig `mapstructure:"WORKER_POOL" yaml:"worker_pool"`
	Tasks      TasksConfig      `mapstructure:"TASKS" yaml:"tasks"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")

	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "itinerary_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_CONNECTIONS", 10)

	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 5)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)

	v.SetDefault("LLM.PROVIDER", "")
	v.SetDefault("LLM.API_KEY", "")
	v.SetDefault("LLM.BASE_URL", "")
	v.SetDefault("LLM.MODEL_NAME", "")
	v.SetDefault("LLM.TEMPERATURE", 0.7)
	v.SetDefault("LLM.TIMEOUT_SECONDS", 120)
	v.SetDefault("LLM.NVIDIA_API_KEY", "")
	v.SetDefault("LLM.NVIDIA_MODEL", defaultNvidiaModel)
	v.SetDefault("LLM.OLLAMA_BASE_URL", defaultOllamaBaseURL)
	v.SetDefault("LLM.OLLAMA_MODEL", defaultOllamaModel)
	v.SetDefault("LLM.DASHSCOPE_API_KEY", "")
	v.SetDefault("LLM.DASHSCOPE_MODEL", defaultDashscopeModel)
	v.SetDefault("LLM.GEMINI_API_KEY", "")
	v.SetDefault("LLM.GEMINI_MODEL", defaultGeminiModel)
	v.SetDefault("LLM.OPENAI_API_KEY", "")
	v.SetDefault("LLM.OPENAI_MODEL", defaultOpenAIModel)

	v.SetDefault("PHOTOS.UNSPLASH_ACCESS_KEY", "")
	v.SetDefault("PHOTOS.PEXELS_API_KEY", "")
	v.SetDefault("PHOTOS.TIMEOUT_SECONDS", 10)
	v.SetDefault("PHOTOS.CACHE_TTL_SECONDS", 3600)
	v.SetDefault("PHOTOS.DICTIONARY_FILE", "")

	v.SetDefault("RATE_LIMIT.GENERATE_REQUESTS", 10)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)

	v.SetDefault("WORKER_POOL.MAX_WORKERS", 4)
	v.SetDefault("WORKER_POOL.QUEUE_SIZE", 100)
	v.SetDefault("WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", 30)
	v.SetDefault("WORKER_POOL.JOB_TIMEOUT_SECONDS", 180)

	v.SetDefault("TASKS.RESULT_TTL_SECONDS", 86400)
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		// Database config
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_CONNECTIONS", "DB_MAX_CONNECTIONS"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"REDIS.POOL_SIZE", "REDIS_POOL_SIZE"},
		// LLM config, named after the deployment's existing variables
		{"LLM.PROVIDER", "LLM_PROVIDER"},
		{"LLM.API_KEY", "LLM_API_KEY"},
		{"LLM.BASE_URL", "LLM_OPENAI_BASE"},
		{"LLM.MODEL_NAME", "LLM_MODEL_NAME"},
		{"LLM.TEMPERATURE", "LLM_TEMPERATURE"},
		{"LLM.TIMEOUT_SECONDS", "LLM_TIMEOUT_SECONDS"},
		{"LLM.NVIDIA_API_KEY", "NVIDIA_API_KEY"},
		{"LLM.NVIDIA_MODEL", "NVIDIA_MODEL"},
		{"LLM.OLLAMA_BASE_URL", "OLLAMA_BASE_URL"},
		{"LLM.OLLAMA_MODEL", "OLLAMA_MODEL"},
		{"LLM.DASHSCOPE_API_KEY", "DASHSCOPE_API_KEY"},
		{"LLM.DASHSCOPE_MODEL", "DASHSCOPE_MODEL"},
		{"LLM.GEMINI_API_KEY", "GEMINI_API_KEY"},
		{"LLM.GEMINI_MODEL", "GEMINI_MODEL"},
		{"LLM.OPENAI_API_KEY", "OPENAI_API_KEY"},
		{"LLM.OPENAI_MODEL", "OPENAI_MODEL"},
		// Photo providers
		{"PHOTOS.UNSPLASH_ACCESS_KEY", "UNSPLASH_ACCESS_KEY"},
		{"PHOTOS.PEXELS_API_KEY", "PEXELS_API_KEY"},
		{"PHOTOS.TIMEOUT_SECONDS", "PHOTOS_TIMEOUT_SECONDS"},
		{"PHOTOS.CACHE_TTL_SECONDS", "PHOTOS_CACHE_TTL_SECONDS"},
		{"PHOTOS.DICTIONARY_FILE", "PHOTOS_DICTIONARY_FILE"},
		// Rate limit config
		{"RATE_LIMIT.GENERATE_REQUESTS", "RATE_LIMIT_GENERATE_REQUESTS"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		// WorkerPool config
		{"WORKER_POOL.MAX_WORKERS", "WORKER_POOL_MAX_WORKERS"},
		{"WORKER_POOL.QUEUE_SIZE", "WORKER_POOL_QUEUE_SIZE"},
		{"WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", "WORKER_POOL_SHUTDOWN_TIMEOUT_SECONDS"},
		{"WORKER_POOL.JOB_TIMEOUT_SECONDS", "WORKER_POOL_JOB_TIMEOUT_SECONDS"},
		// Tasks
		{"TASKS.RESULT_TTL_SECONDS", "TASKS_RESULT_TTL_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"database", logger.MaskConnectionString(cfg.Database.URL()),
		"redis_address", cfg.Redis.Address,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"llm_provider", cfg.LLM.Provider,
		"llm_api_key", logger.MaskAPIKey(cfg.LLM.APIKey),
		"unsplash_key", logger.MaskAPIKey(cfg.Photos.UnsplashAccessKey),
		"pexels_key", logger.MaskAPIKey(cfg.Photos.PexelsAPIKey),
		"worker_pool_max_workers", cfg.WorkerPool.MaxWorkers,
		"worker_pool_queue_size", cfg.WorkerPool.QueueSize,
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.Database.Password == "" {
		log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
	}

	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}
	if cfg.Redis.Password == "" && cfg.Redis.UseTLS {
		log.Warn("Redis password is not set, but TLS is enabled. Ensure this is correct for your Redis provider.")
	}

	if _, err := cfg.LLM.Resolve(); err != nil {
		return err
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be within 0..2")
	}
	if cfg.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("llm timeout must be positive")
	}

	// Missing photo keys degrade to itineraries without images.
	if cfg.Photos.UnsplashAccessKey == "" {
		log.Warn("UNSPLASH_ACCESS_KEY is not set, Unsplash lookups will return no images")
	}
	if cfg.Photos.PexelsAPIKey == "" {
		log.Warn("PEXELS_API_KEY is not set, Pexels lookups will return no images")
	}
	if cfg.Photos.TimeoutSeconds <= 0 {
		return fmt.Errorf("photo provider timeout must be positive")
	}
	if cfg.Photos.CacheTTLSeconds < 0 {
		return fmt.Errorf("photo cache ttl must not be negative")
	}

	if cfg.RateLimit.GenerateRequests <= 0 {
		return fmt.Errorf("rate limit generate requests must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	if cfg.WorkerPool.MaxWorkers <= 0 {
		return fmt.Errorf("worker pool max workers must be positive")
	}
	if cfg.WorkerPool.QueueSize <= 0 {
		return fmt.Errorf("worker pool queue size must be positive")
	}
	if cfg.WorkerPool.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("worker pool shutdown timeout must be positive")
	}
	if cfg.WorkerPool.JobTimeoutSeconds <= cfg.LLM.TimeoutSeconds {
		return fmt.Errorf("worker pool job timeout (%ds) must exceed llm timeout (%ds)",
			cfg.WorkerPool.JobTimeoutSeconds, cfg.LLM.TimeoutSeconds)
	}

	if cfg.Tasks.ResultTTLSeconds <= 0 {
		return fmt.Errorf("task result ttl must be positive")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
