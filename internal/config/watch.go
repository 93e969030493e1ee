package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it is written or replaced and passes the
// result to onChange. Reload errors go to onError, which may be nil. The
// parent directory is watched so editors that save by rename are seen.
// Watching stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return err
	}

	report := func(err error) {
		if onError != nil {
			onError(err)
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(abs)
				if err != nil {
					report(err)
					continue
				}
				cfg.Normalize()
				if err := cfg.Validate(); err != nil {
					report(err)
					continue
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				report(err)
			}
		}
	}()

	return nil
}
