package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	// server section absent entirely.
	p := writeConfig(t, "other: {}\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", s.HTTPPort, DefaultHTTPPort)
	}
	if s.GRPCPort != DefaultGRPCPort {
		t.Errorf("grpc_port: got %d, want %d", s.GRPCPort, DefaultGRPCPort)
	}
	if s.LogLevel != DefaultLogLevel {
		t.Errorf("log_level: got %q, want %q", s.LogLevel, DefaultLogLevel)
	}
	if s.Dataset.Path != DefaultDatasetPath {
		t.Errorf("dataset.path: got %q, want %q", s.Dataset.Path, DefaultDatasetPath)
	}
	if s.Slider.Min != 0 || s.Slider.Max != 10000 || s.Slider.Step != 1000 {
		t.Errorf("slider: got %+v, want 0/10000/1000", s.Slider)
	}
	if s.Session.PingPeriod != DefaultPingPeriod {
		t.Errorf("session.ping_period: got %v, want %v", s.Session.PingPeriod, DefaultPingPeriod)
	}
	if len(s.CORS.AllowedOrigins) != 1 || s.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("cors.allowed_origins: got %v, want [*]", s.CORS.AllowedOrigins)
	}
}

func TestLoad_FullServer(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9091
  grpc_port: 9090
  log_level: debug
  dataset:
    path: /data/launches.csv
  slider:
    min: 0
    max: 12000
    step: 500
  cors:
    allowed_origins: ["https://dash.example.com"]
  session:
    ping_period: 30s
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Server
	if s.HTTPPort != 9091 || s.GRPCPort != 9090 {
		t.Errorf("ports: got http=%d grpc=%d", s.HTTPPort, s.GRPCPort)
	}
	if s.LogLevel != "debug" {
		t.Errorf("log_level: got %q, want debug", s.LogLevel)
	}
	if s.Dataset.Path != "/data/launches.csv" {
		t.Errorf("dataset.path: got %q", s.Dataset.Path)
	}
	if s.Slider.Max != 12000 || s.Slider.Step != 500 {
		t.Errorf("slider: got %+v", s.Slider)
	}
	if len(s.CORS.AllowedOrigins) != 1 || s.CORS.AllowedOrigins[0] != "https://dash.example.com" {
		t.Errorf("cors.allowed_origins: got %v", s.CORS.AllowedOrigins)
	}
	if s.Session.PingPeriod != 30*time.Second {
		t.Errorf("session.ping_period: got %v, want 30s", s.Session.PingPeriod)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	p := writeConfig(t, `server:
  slider:
    max: 20000
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Slider.Min != DefaultSliderMin || cfg.Server.Slider.Step != DefaultSliderStep {
		t.Errorf("slider defaults lost: %+v", cfg.Server.Slider)
	}
	if cfg.Server.Slider.Max != 20000 {
		t.Errorf("slider.max: got %v, want 20000", cfg.Server.Slider.Max)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad http port", "server:\n  http_port: 70000\n", "http_port"},
		{"bad grpc port", "server:\n  grpc_port: -1\n", "grpc_port"},
		{"same ports", "server:\n  http_port: 9000\n  grpc_port: 9000\n", "must differ"},
		{"bad log level", "server:\n  log_level: loud\n", "log_level"},
		{"empty dataset", "server:\n  dataset:\n    path: \"\"\n", "dataset.path"},
		{"inverted slider", "server:\n  slider:\n    min: 5000\n    max: 1000\n", "slider"},
		{"zero step", "server:\n  slider:\n    step: 0\n", "slider.step"},
		{"too many marks", "server:\n  slider:\n    step: 0.001\n", "limit is 1000"},
		{"zero ping", "server:\n  session:\n    ping_period: 0s\n", "ping_period"},
		{"bad yaml", "server: [\n", "parse yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
			if !strings.HasPrefix(err.Error(), "server config: ") {
				t.Errorf("error %q lacks package prefix", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault_Valid(t *testing.T) {
	if err := validate(Default()); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, func(c *Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// Keep rewriting until the watcher has registered and picked up a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-got:
			if c.Server.LogLevel != "debug" {
				t.Errorf("reloaded log_level: got %q, want debug", c.Server.LogLevel)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(p, []byte("server:\n  log_level: debug\n"), 0o600); err != nil {
				t.Fatalf("rewrite: %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

// saveAtomic writes content beside p and renames it into place, the way
// most editors save.
func saveAtomic(t *testing.T, p, content string) {
	t.Helper()
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		t.Fatalf("rename: %v", err)
	}
}

func TestWatch_ReloadsOnAtomicSave(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, func(c *Config) {
			select {
			case got <- c:
			default:
			}
		})
	}()

	// Each save replaces the inode, so the second level only arrives if the
	// watch outlived the first replacement.
	for _, level := range []string{"debug", "warn"} {
		content := "server:\n  log_level: " + level + "\n"
		deadline := time.After(5 * time.Second)
		tick := time.NewTicker(50 * time.Millisecond)
	wait:
		for {
			select {
			case c := <-got:
				if c.Server.LogLevel == level {
					break wait
				}
			case <-tick.C:
				saveAtomic(t, p, content)
			case <-deadline:
				tick.Stop()
				t.Fatalf("timed out waiting for reload to %s", level)
			}
		}
		tick.Stop()
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	called := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, func(*Config) {
			select {
			case called <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	other := filepath.Join(filepath.Dir(p), "other.yaml")
	if err := os.WriteFile(other, []byte("server:\n  log_level: debug\n"), 0o600); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
	select {
	case <-called:
		t.Error("onChange called for a file other than the config")
	default:
	}
}

func TestWatch_InvalidReloadKeepsPrevious(t *testing.T) {
	p := writeConfig(t, "server:\n  log_level: info\n")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	called := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, p, func(*Config) {
			select {
			case called <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(p, []byte("server:\n  log_level: loud\n"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
	select {
	case <-called:
		t.Error("onChange called for an invalid config")
	default:
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "gone.yaml"), func(*Config) {})
	if err == nil {
		t.Error("expected error watching a missing file")
	}
}
