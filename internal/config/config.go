package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the jts tool
type Config struct {
	Log     LogConfig
	Convert ConvertConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type ConvertConfig struct {
	Format     string // Default output format: json, json-pretty, csv, fixed, msgpack
	TimeFormat string // Timestamp format override for delimited output
	Workers    int    // Concurrent file conversions (default: CPU count, min 2, max 16)
	GzipLevel  int    // Compression level for .gz outputs (1-9)
	ZstdLevel  int    // Compression level for .zst outputs (1-22)
}

// Load loads configuration from environment and config file
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("JTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file (optional)
	v.SetConfigName("jts")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/jts/")
	v.AddConfigPath("$HOME/.jts/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Build config from Viper (which includes defaults + env vars)
	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Convert: ConvertConfig{
			Format:     v.GetString("convert.format"),
			TimeFormat: v.GetString("convert.time_format"),
			Workers:    v.GetInt("convert.workers"),
			GzipLevel:  v.GetInt("convert.gzip_level"),
			ZstdLevel:  v.GetInt("convert.zstd_level"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Convert defaults
	v.SetDefault("convert.format", "")
	v.SetDefault("convert.time_format", "")
	v.SetDefault("convert.workers", getDefaultWorkers())
	v.SetDefault("convert.gzip_level", 6)
	v.SetDefault("convert.zstd_level", 3)
}

func getDefaultWorkers() int {
	// One conversion per core, bounded so large machines don't hold
	// dozens of decoded documents in memory at once
	workers := runtime.NumCPU()
	if workers < 2 {
		return 2
	}
	if workers > 16 {
		return 16
	}
	return workers
}
