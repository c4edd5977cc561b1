package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/launchboard/launchboard/server/internal/logging"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort    = 8080
	DefaultGRPCPort    = 50051
	DefaultLogLevel    = "info"
	DefaultDatasetPath = "spacex_launch_dash.csv"
	DefaultSliderMin   = 0
	DefaultSliderMax   = 10000
	DefaultSliderStep  = 1000
	DefaultPingPeriod  = 54 * time.Second

	// MaxSliderMarks bounds (max-min)/step; every step becomes a slider mark.
	MaxSliderMarks = 1000
)

// Config holds the server-side configuration parsed from the `server:` section
// of config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API and WebSocket sessions listen on.
	HTTPPort int `yaml:"http_port"`

	// GRPCPort is the port of the gRPC health probe.
	GRPCPort int `yaml:"grpc_port"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	Dataset DatasetConfig `yaml:"dataset"`
	Slider  SliderConfig  `yaml:"slider"`
	CORS    CORSConfig    `yaml:"cors"`
	Session SessionConfig `yaml:"session"`
}

// DatasetConfig locates the launch records file.
type DatasetConfig struct {
	// Path is the CSV file read once at startup. Changes to this value are
	// not applied by hot reload.
	Path string `yaml:"path"`
}

// SliderConfig holds the display bounds of the payload range control.
// They are independent of the payload values present in the dataset.
type SliderConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// CORSConfig controls cross-origin access to the HTTP API.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the API. "*" or an empty
	// list allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SessionConfig tunes interactive WebSocket sessions.
type SessionConfig struct {
	// PingPeriod is how often the server pings idle clients.
	PingPeriod time.Duration `yaml:"ping_period"`
}

// Load reads and parses the config file at path, returning the server configuration.
// Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			GRPCPort: DefaultGRPCPort,
			LogLevel: DefaultLogLevel,
			Dataset:  DatasetConfig{Path: DefaultDatasetPath},
			Slider: SliderConfig{
				Min:  DefaultSliderMin,
				Max:  DefaultSliderMax,
				Step: DefaultSliderStep,
			},
			CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
			Session: SessionConfig{PingPeriod: DefaultPingPeriod},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	s := cfg.Server
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", s.HTTPPort)
	}
	if s.GRPCPort <= 0 || s.GRPCPort > 65535 {
		return fmt.Errorf("server.grpc_port %d is out of range [1, 65535]", s.GRPCPort)
	}
	if s.HTTPPort == s.GRPCPort {
		return fmt.Errorf("server.http_port and server.grpc_port must differ (both %d)", s.HTTPPort)
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("server.log_level: %w", err)
	}
	if s.Dataset.Path == "" {
		return fmt.Errorf("server.dataset.path is required")
	}
	if s.Slider.Min < 0 || s.Slider.Max <= s.Slider.Min {
		return fmt.Errorf("server.slider: want 0 <= min < max, got min=%v max=%v", s.Slider.Min, s.Slider.Max)
	}
	if s.Slider.Step <= 0 {
		return fmt.Errorf("server.slider.step must be positive")
	}
	if n := (s.Slider.Max - s.Slider.Min) / s.Slider.Step; n > MaxSliderMarks {
		return fmt.Errorf("server.slider.step %v yields %.0f marks, limit is %d", s.Slider.Step, n, MaxSliderMarks)
	}
	if s.Session.PingPeriod <= 0 {
		return fmt.Errorf("server.session.ping_period must be positive")
	}
	return nil
}
