package scene

import (
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// WatchSettings watches path for writes and calls ApplySettings again on
// each one, so a designer can tweak object/light placement in the JSON
// file and see it reflected without restarting.
//
// The returned stop function closes the underlying watcher; callers
// should defer it. Errors from individual reload attempts are logged, not
// returned, since a transient bad write to the settings file (an editor's
// atomic-save temp file, a partial write) shouldn't tear down the engine.
func (s *Scene) WatchSettings(path string) (stop func() error, err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if err := s.ApplySettings(path); err != nil {
						log.Error("scene settings reload failed", "path", path, "err", err)
					} else {
						log.Info("scene settings reloaded", "path", path)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error("scene settings watcher error", "err", err)
			}
		}
	}()

	return w.Close, nil
}
