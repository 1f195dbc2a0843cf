package config

import (
	"encoding/json"
	"os"

	"github.com/samterminal/samclient/internal/flagx"
	"github.com/samterminal/samclient/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations may be
// strings ("15s") or integer nanoseconds.
type JsonConfig struct {
	APIBase            string         `json:"api_base"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	SessionDBPath      string         `json:"session_db_path"`
	PreloadParallelism int            `json:"preload_parallelism"`
	LogLevel           string         `json:"log_level"`
	S3Region           string         `json:"s3_region"`
	S3Endpoint         string         `json:"s3_endpoint"`
}

// parseJson overlays cfg with the file named by -c/-config. Only fields
// present with non-zero values are applied. Panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBase != "" {
		cfg.APIBase = jc.APIBase
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.PreloadParallelism > 0 {
		cfg.PreloadParallelism = jc.PreloadParallelism
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
}
