// Package config loads runtime configuration for the SAM terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. SAM_* environment variables (SAM_API_BASE, SAM_REQUEST_TIMEOUT, ...).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// The backend base URL falls back to DefaultAPIBase when nothing sets it.
// Trailing slashes are trimmed so relative asset paths join cleanly.
//
// # JSON schema
//
//	{
//	  "api_base": "http://localhost:8081",
//	  "request_timeout": "15s",
//	  "session_db_path": "/home/me/.sam/session.db",
//	  "preload_parallelism": 4,
//	  "log_level": "debug"
//	}
package config
