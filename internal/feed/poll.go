package feed

import (
	"io"
	"os"
	"time"
)

// Poll is the fallback growth detector for filesystems where inotify
// is unavailable: it stats the feed file on an interval and reports
// when the size grows. Same channel contract as Watch.
func Poll(path string, interval time.Duration) (<-chan GrowthEvent, io.Closer) {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	events := make(chan GrowthEvent, 8)
	stop := make(chan struct{})

	go func() {
		defer close(events)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var lastSize int64 = -1
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				info, err := os.Stat(path)
				if err != nil {
					continue
				}
				if lastSize >= 0 && info.Size() != lastSize {
					select {
					case events <- GrowthEvent{At: time.Now()}:
					default:
					}
				}
				lastSize = info.Size()
			}
		}
	}()

	return events, closerFunc(func() error {
		close(stop)
		return nil
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
