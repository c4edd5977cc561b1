package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/launchboard/launchboard/server/internal/config"
	"github.com/launchboard/launchboard/server/internal/dashboard"
	"github.com/launchboard/launchboard/server/internal/logging"
	"github.com/launchboard/launchboard/server/internal/metrics"
	"github.com/launchboard/launchboard/server/internal/probe"
	"github.com/launchboard/launchboard/server/internal/store"
	"github.com/launchboard/launchboard/server/internal/ws"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file; empty runs on built-in defaults")
	uiDir := flag.String("ui-dir", "", "serve the dashboard UI static files from this directory; leave empty to disable")
	flag.Parse()

	logging.Setup(os.Stdout, "launchboard-server")
	slog.Info("launchboard-server starting", "config", *configPath)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := logging.SetLevel(cfg.Server.LogLevel); err != nil {
		slog.Error("invalid log level", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"grpc_port", cfg.Server.GRPCPort,
		"dataset", cfg.Server.Dataset.Path,
		"log_level", cfg.Server.LogLevel,
	)

	// The dataset is loaded once; a failure here is fatal.
	st, err := store.Load(cfg.Server.Dataset.Path)
	if err != nil {
		slog.Error("failed to load dataset", "path", cfg.Server.Dataset.Path, "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := metrics.New()
	reg.SetDataset(st.Len(), len(st.Sites()))

	ctl := dashboard.New(st,
		dashboard.WithSliderBounds(dashboard.SliderBounds{
			Min:  cfg.Server.Slider.Min,
			Max:  cfg.Server.Slider.Max,
			Step: cfg.Server.Slider.Step,
		}),
		dashboard.WithRecorder(reg),
	)

	// Interactive sessions, one per WebSocket connection.
	hub := ws.New(ctl,
		ws.WithPingPeriod(cfg.Server.Session.PingPeriod),
		ws.WithAllowedOrigins(cfg.Server.CORS.AllowedOrigins),
		ws.WithObserver(reg),
	)
	reg.SetActiveSessions(hub.Count)

	// gRPC health probe; SERVING as soon as the dataset is in memory.
	prb := probe.New()
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		slog.Error("failed to listen on gRPC port",
			"port", cfg.Server.GRPCPort, "err", err)
		os.Exit(1)
	}
	prb.SetServing(true)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           newHTTPHandler(st, ctl, hub, reg, cfg.Server.CORS.AllowedOrigins, *uiDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("gRPC probe listening", "port", cfg.Server.GRPCPort)
		if err := prb.Serve(lis); err != nil {
			return fmt.Errorf("grpc probe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if *configPath == "" {
			return nil
		}
		err := config.Watch(gctx, *configPath, func(next *config.Config) {
			applyReload(cfg, next)
		})
		if err != nil {
			// Hot reload is optional; the server keeps its startup config.
			slog.Warn("config watch disabled", "err", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("launchboard-server shutting down")
		prb.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("launchboard-server stopped with error", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads path, or returns the built-in defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// applyReload applies the hot-reloadable subset of next. Only the log level
// changes at runtime; every other key needs a restart.
func applyReload(cur, next *config.Config) {
	if err := logging.SetLevel(next.Server.LogLevel); err != nil {
		slog.Error("config: invalid log level on reload", "err", err)
		return
	}
	slog.Info("log level applied", "level", next.Server.LogLevel)

	if next.Server.Dataset.Path != cur.Server.Dataset.Path {
		slog.Warn("config: dataset path changed; restart to load it",
			"current", cur.Server.Dataset.Path, "configured", next.Server.Dataset.Path)
	}
	if next.Server.HTTPPort != cur.Server.HTTPPort || next.Server.GRPCPort != cur.Server.GRPCPort {
		slog.Warn("config: port change requires a restart")
	}
}
