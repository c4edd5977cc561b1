package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// reloadOps are the events that can leave new content at the config path.
// An atomic save (write temp, rename over) shows up as Create or Rename on
// the target name.
const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watch reloads the dashboard config at path whenever it changes on disk and
// hands the result to onChange. It watches the parent directory so the
// watch survives editors that replace the file. It runs until ctx is
// cancelled.
//
// A reload that fails to load or validate is logged and skipped; the
// caller keeps whatever config it already has.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	target := filepath.Clean(path)
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	slog.Info("config watch started", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&reloadOps == 0 {
				continue
			}
			reload(target, onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config watch error", "err", err)
		}
	}
}

func reload(path string, onChange func(*Config)) {
	cfg, err := Load(path)
	if err != nil {
		// Rename events can fire for the old name before the new file lands.
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("config vanished during save", "path", path)
			return
		}
		slog.Error("config reload rejected", "path", path, "err", err)
		return
	}
	slog.Info("config reloaded", "path", path, "log_level", cfg.Server.LogLevel)
	onChange(cfg)
}
