package config

import (
	"strings"
	"time"
)

// DefaultAPIBase is used when SAM_API_BASE is not set.
const DefaultAPIBase = "http://samproject.seekerhut.com:8081"

// Config holds runtime settings for the SAM terminal client.
type Config struct {
	// APIBase is the backend origin; relative asset paths are resolved against it.
	APIBase        string        `env:"SAM_API_BASE"`
	RequestTimeout time.Duration `env:"SAM_REQUEST_TIMEOUT"`

	SessionDBPath string `env:"SAM_SESSION_DB"`
	// SessionPassphrase seals the stored token when non-empty.
	SessionPassphrase string `env:"SAM_SESSION_PASSPHRASE"`

	PreloadParallelism int    `env:"SAM_PRELOAD_PARALLELISM"`
	LogLevel           string `env:"SAM_LOG_LEVEL"`

	S3Region    string `env:"SAM_S3_REGION"`
	S3Endpoint  string `env:"SAM_S3_ENDPOINT"`
	S3AccessKey string `env:"SAM_S3_ACCESS_KEY"`
	S3SecretKey string `env:"SAM_S3_SECRET_KEY"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBase = DefaultAPIBase
	c.RequestTimeout = 15 * time.Second
	c.SessionDBPath = "sam_session.db"
	c.PreloadParallelism = 4
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// S3Enabled reports whether object-storage art fetching is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" || c.S3AccessKey != ""
}

func (c *Config) normalize() {
	c.APIBase = strings.TrimRight(strings.TrimSpace(c.APIBase), "/")
	if c.PreloadParallelism < 1 {
		c.PreloadParallelism = 1
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 15 * time.Second
	}
}

// LoadConfig builds a Config from defaults, then the environment, then an
// optional JSON file, then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.normalize()
	return cfg
}
