package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives a freshly-Loaded Config each time the workspace
// config file changes on disk.
type ReloadFunc func(*Config, error)

// Watch reloads and calls onReload whenever the workspace layer's config
// file is created, written, removed, or renamed, until ctx is cancelled.
// Only the workspace file is watched: each event re-runs Load, which
// re-reads every layer, but a change to the system, user, or env layers
// alone triggers no reload, matching the original's scope of "watch the
// project's own config, not the whole machine."
func Watch(ctx context.Context, opts Options, onReload ReloadFunc) error {
	path := workspaceConfigPath(opts.WorkspaceConfigFile)
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				cfg, err := Load(opts)
				onReload(cfg, err)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onReload(nil, err)
			}
		}
	}()

	return nil
}
