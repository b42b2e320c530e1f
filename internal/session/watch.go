package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads m whenever another process rewrites or removes the session
// file at path, then calls onChange with the result. It watches the parent
// directory because saves replace the file by rename. Watch returns once the
// watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, m *Manager, path string, onChange func(Session, bool)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create session watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

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
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				before, _ := m.Current()
				s, ok := m.LoadSession()
				if s == before {
					continue
				}
				m.log.WithField("path", target).Debug("session file changed")
				if onChange != nil {
					onChange(s, ok)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				m.log.WithError(err).Warn("session watcher error")
			}
		}
	}()
	return nil
}
