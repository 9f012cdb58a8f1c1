package aspen

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// SpriteSheetWatcher observes an image directory and posts a
// RequestNewSpriteSheetEvent whenever a sheet image is written, so the
// platform layer re-uploads the texture and entities pick up the new pixels
// on the next frame. Purely additive: a game runs fine without one.
type SpriteSheetWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchSpriteSheets starts watching dir for created or modified .png files.
func WatchSpriteSheets(dir string, queue EventQueue) (*SpriteSheetWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	w := &SpriteSheetWatcher{watcher: watcher, done: make(chan struct{})}
	go w.run(queue)
	return w, nil
}

func (w *SpriteSheetWatcher) run(queue EventQueue) {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".png") {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), filepath.Ext(event.Name))
			logger.Info("sprite sheet changed on disk, reloading", "sheet", name)
			queue.Post(RequestNewSpriteSheetEvent{
				Name: SpriteSheetName(name),
				Path: event.Name,
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("sprite sheet watcher error", "err", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *SpriteSheetWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
