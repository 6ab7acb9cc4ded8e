package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT        JWTConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	ImageStore ImageStoreConfig
}

// JWTConfig carries the two independent signing secrets and expiry
// durations. Access and refresh tokens never share a secret.
type JWTConfig struct {
	AccessSecret  string        `env:"JWT_SECRET"`
	RefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `env:"JWT_EXPIRE,         default=1h"`
	RefreshTTL    time.Duration `env:"JWT_REFRESH_EXPIRE, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ImageStoreConfig points at the external image microservice; uploaded
// picture paths are resolved against BaseURL.
type ImageStoreConfig struct {
	BaseURL string `env:"UPLOAD_PATH, default=http://localhost:9000"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
