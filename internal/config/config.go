// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Individual values can be overridden by environment variables, see the
// env:"..." tags below.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultBaseURL is the collection endpoint of the students API.
const DefaultBaseURL = "http://localhost:8082/api/students/"

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	HTTPServer  `yaml:"http_server"`
	StudentsAPI StudentsAPI `yaml:"students_api"`
	Tracing     Tracing     `yaml:"tracing"`
}

// HTTPServer holds settings for the UI's own HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the UI listens on, e.g. "localhost:3000".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// StudentsAPI describes the remote REST API every view talks to.
type StudentsAPI struct {
	// BaseURL is the collection endpoint. Single-resource endpoints are
	// formed by appending the key to it.
	BaseURL string `yaml:"base_url" env:"STUDENTS_API_BASE_URL" env-default:"http://localhost:8082/api/students/"`

	// Timeout bounds one outbound call. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" env:"STUDENTS_API_TIMEOUT" env-default:"0s"`
}

// Tracing configures the OTLP trace exporter. An empty Endpoint disables it.
type Tracing struct {
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"students-ui"`
}

// Load reads the YAML file at path, applies env overrides and defaults,
// and returns the result.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is not set")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure: if this
// returns, the config is valid.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/students-ui --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
