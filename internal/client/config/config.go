package config

import "time"

// Config holds runtime settings for the fortune client.
//
// Fields:
//   - FortuneBaseURL: prefix of the per-period fortune endpoints.
//   - LoginURL: member login exchange endpoint (identity subject -> member).
//   - AppID: application identifier sent with the login exchange.
//   - StorageDSN: SQLite DSN of the durable member storage.
//   - RequestTimeout: per-request HTTP timeout.
//   - RequestRate / RequestBurst: outbound request limiter settings.
//   - LogLevel: minimum slog level.
type Config struct {
	FortuneBaseURL string
	LoginURL       string
	AppID          string
	StorageDSN     string
	RequestTimeout time.Duration
	RequestRate    float64
	RequestBurst   int
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.FortuneBaseURL = "https://www.highlight.url.tw/ai_fortune/php"
	c.LoginURL = "https://www.highlight.url.tw/api/login_line.php"
	c.AppID = "ai_fortune"
	c.StorageDSN = "fortune.db"
	c.RequestTimeout = 10 * time.Second
	c.RequestRate = 5
	c.RequestBurst = 10
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
