package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/fortunekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// mean "not set" and leave the current Config value untouched.
type JsonConfig struct {
	FortuneBaseURL string         `json:"fortune_base_url"`
	LoginURL       string         `json:"login_url"`
	AppID          string         `json:"app_id"`
	StorageDSN     string         `json:"storage_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	RequestRate    float64        `json:"request_rate"`
	RequestBurst   int            `json:"request_burst"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// It panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	path := jsonConfigPath()
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

	overlayString(&cfg.FortuneBaseURL, jc.FortuneBaseURL)
	overlayString(&cfg.LoginURL, jc.LoginURL)
	overlayString(&cfg.AppID, jc.AppID)
	overlayString(&cfg.StorageDSN, jc.StorageDSN)
	overlayString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RequestRate > 0 {
		cfg.RequestRate = jc.RequestRate
	}
	if jc.RequestBurst > 0 {
		cfg.RequestBurst = jc.RequestBurst
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
