package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/chrishannam/Telemetry-F1-2021/internal/f1"
)

// Config holds all application configuration.
type Config struct {
	Listen ListenConfig
	Cache  CacheConfig
	Log    LogConfig
}

// ListenConfig holds the UDP listener settings.
type ListenConfig struct {
	Host   string
	Port   int
	RcvBuf int
}

// CacheConfig holds latest-packet cache settings.
type CacheConfig struct {
	StaleThreshold time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

// New returns a viper instance with defaults set and environment binding
// active. Every key is overridable via an F1_ prefixed variable with dots
// replaced by underscores, e.g. F1_LISTEN_PORT.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("F1")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen.host", "")
	v.SetDefault("listen.port", f1.DefaultPort)
	v.SetDefault("listen.rcvbuf", 2*1024*1024)
	v.SetDefault("cache.stale_threshold", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	return v
}

// FromViper materialises a Config from a viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		Listen: ListenConfig{
			Host:   v.GetString("listen.host"),
			Port:   v.GetInt("listen.port"),
			RcvBuf: v.GetInt("listen.rcvbuf"),
		},
		Cache: CacheConfig{
			StaleThreshold: v.GetDuration("cache.stale_threshold"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}
}

// Load reads configuration from environment variables, falling back to
// defaults.
func Load() Config {
	return FromViper(New())
}
