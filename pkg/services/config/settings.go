package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Settings are the tunables shared by the CLI and the web server.
type Settings struct {
	Addr             string        `mapstructure:"addr"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	APIVersions      []string      `mapstructure:"api_versions"`
	OrdersMaxPages   int           `mapstructure:"orders_max_pages"`
	ProductsMaxPages int           `mapstructure:"products_max_pages"`
	PageDelay        time.Duration `mapstructure:"page_delay"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	TopN             int           `mapstructure:"top_n"`
}

func DefaultSettings() Settings {
	return Settings{
		Addr:             ":8080",
		ShutdownTimeout:  10 * time.Second,
		RequestTimeout:   30 * time.Second,
		APIVersions:      nil, // client falls back to its built-in ladder
		OrdersMaxPages:   50,
		ProductsMaxPages: 20,
		PageDelay:        500 * time.Millisecond,
		CacheTTL:         5 * time.Minute,
		TopN:             10,
	}
}

// LoadSettings reads settings from the given file, keeping defaults for
// anything unset. An empty path returns the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}
