// Package config loads runtime configuration for the fortune client core.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the remote fortune service
//	-l string   URL of the member login exchange endpoint
//	-s string   DSN of the local SQLite storage
//	-r float    outbound request rate (requests per second)
//	-t int      request timeout (seconds)
//	-v string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "fortune_base_url": "https://fortune.example/php",
//	  "login_url": "https://fortune.example/api/login_line.php",
//	  "app_id": "ai_fortune",
//	  "storage_dsn": "fortune.db",
//	  "request_timeout": "10s",
//	  "request_rate": 5,
//	  "request_burst": 10,
//	  "log_level": "info"
//	}
//
// Environment variables are not read; use the JSON file or flags.
package config
