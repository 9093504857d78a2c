package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultMongoTimeout      = 5 * time.Second
	defaultReconnectInterval = 30 * time.Second
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Model   ModelConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Cache   CacheConfig
	MinIO   MinIOConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ModelConfig describes the pretrained model and the inference endpoints serving it.
// AcceleratedURL is optional; when it serves the model the runtime prefers it.
// NumBeams above 1 requests beam search through the vLLM extension fields
// (use_beam_search, beam_width); other servers may ignore or reject them.
type ModelConfig struct {
	Name           string
	URL            string
	AcceleratedURL string
	APIKey         string
	TaskPrefix     string
	MaxTokens      int64
	NumBeams       int64
	Timeout        time.Duration
}

type MongoDBConfig struct {
	URI               string
	Database          string
	Collection        string
	Timeout           time.Duration
	ReconnectInterval time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	TTL time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("MODEL_NAME", "t5-base")
	v.SetDefault("MODEL_URL", "http://localhost:8000/v1")
	v.SetDefault("MODEL_API_KEY", "EMPTY")
	v.SetDefault("MODEL_TASK_PREFIX", "summarize: ")
	v.SetDefault("MODEL_MAX_TOKENS", 512)
	v.SetDefault("MODEL_NUM_BEAMS", 1)
	v.SetDefault("MODEL_TIMEOUT", 120)
	v.SetDefault("MONGODB_DATABASE", "simplifier")
	v.SetDefault("MONGODB_COLLECTION", "simplifications")
	v.SetDefault("MONGODB_TIMEOUT", int(defaultMongoTimeout/time.Second))
	v.SetDefault("MONGODB_RECONNECT_INTERVAL", int(defaultReconnectInterval/time.Second))
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("CACHE_TTL", 3600)
	v.SetDefault("MINIO_BUCKET", "simplifier")

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Environment:  v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 180 * time.Second,
		},
		Model: ModelConfig{
			Name:           strings.TrimSpace(v.GetString("MODEL_NAME")),
			URL:            v.GetString("MODEL_URL"),
			AcceleratedURL: v.GetString("MODEL_ACCELERATED_URL"),
			APIKey:         v.GetString("MODEL_API_KEY"),
			TaskPrefix:     v.GetString("MODEL_TASK_PREFIX"),
			MaxTokens:      v.GetInt64("MODEL_MAX_TOKENS"),
			NumBeams:       v.GetInt64("MODEL_NUM_BEAMS"),
			Timeout:        time.Duration(v.GetInt("MODEL_TIMEOUT")) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:               v.GetString("MONGODB_URI"),
			Database:          v.GetString("MONGODB_DATABASE"),
			Collection:        v.GetString("MONGODB_COLLECTION"),
			Timeout:           time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			ReconnectInterval: time.Duration(v.GetInt("MONGODB_RECONNECT_INTERVAL")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
	}

	if cfg.Model.Name == "" {
		return nil, fmt.Errorf("MODEL_NAME must not be empty")
	}
	if cfg.Model.URL == "" {
		return nil, fmt.Errorf("MODEL_URL must not be empty")
	}
	if cfg.Model.MaxTokens <= 0 {
		return nil, fmt.Errorf("MODEL_MAX_TOKENS must be positive, got %d", cfg.Model.MaxTokens)
	}
	if cfg.Model.NumBeams < 1 {
		cfg.Model.NumBeams = 1
	}
	// zero would make every connect fail at once or stop reconnects for good
	if cfg.MongoDB.Timeout <= 0 {
		cfg.MongoDB.Timeout = defaultMongoTimeout
	}
	if cfg.MongoDB.ReconnectInterval <= 0 {
		cfg.MongoDB.ReconnectInterval = defaultReconnectInterval
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}
