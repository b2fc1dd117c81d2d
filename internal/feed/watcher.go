package feed

import (
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// GrowthEvent signals that the watched feed file may have new content.
type GrowthEvent struct {
	At time.Time
}

// watchDebounce collapses bursts of write events into one notification.
const watchDebounce = 100 * time.Millisecond

// Watch observes the feed file for appended content. Events are
// debounced and delivered on the returned channel with a non-blocking
// send: a slow consumer drops notifications rather than stalling the
// watcher, and the next write re-triggers anyway.
//
// The parent directory is watched rather than the file itself so that
// creation of a not-yet-existing feed file is also observed.
func Watch(path string) (<-chan GrowthEvent, io.Closer, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	events := make(chan GrowthEvent, 8)
	base := filepath.Base(path)

	go func() {
		defer close(events)

		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(watchDebounce, func() {
					select {
					case events <- GrowthEvent{At: time.Now()}:
					default:
					}
				})

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, watcher, nil
}
