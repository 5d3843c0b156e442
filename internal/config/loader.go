package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the console server needs at startup.
type Config struct {
	ListenAddr      string
	APIBaseURL      string
	RequestTimeout  time.Duration
	DefaultPageSize int
	AllowedOrigins  []string
}

// DefaultConfig returns the local-development defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8080",
		APIBaseURL:      "http://localhost:9000/api",
		RequestTimeout:  30 * time.Second,
		DefaultPageSize: 10,
		AllowedOrigins:  []string{"http://localhost:3000"},
	}
}

// Load reads config.yaml from the given path with environment overrides
// (CONSOLE_API_BASE_URL and friends). A missing file is fine; defaults plus
// env vars apply.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("CONSOLE")

	v.BindEnv("server.listen_addr")
	v.BindEnv("api.base_url")
	v.BindEnv("api.timeout")
	v.BindEnv("view.page_size")

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config.yaml found, using defaults and env vars")
	} else {
		log.Println("Loaded config.yaml")
	}

	if v.IsSet("server.listen_addr") {
		cfg.ListenAddr = v.GetString("server.listen_addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("api.base_url") {
		cfg.APIBaseURL = v.GetString("api.base_url")
	}
	if v.IsSet("api.timeout") {
		cfg.RequestTimeout = v.GetDuration("api.timeout")
	}
	if v.IsSet("view.page_size") {
		cfg.DefaultPageSize = v.GetInt("view.page_size")
	}

	return cfg, nil
}
