package feed

import (
	"path/filepath"
	"testing"
	"time"
)

func TestPoll_DetectsGrowth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	writeFeed(t, path, `{"id":"a1"}`+"\n")

	events, closer := Poll(path, 20*time.Millisecond)
	defer closer.Close()

	// Let the poller take its baseline stat before growing the file.
	time.Sleep(60 * time.Millisecond)
	appendFeed(t, path, `{"id":"a2"}`+"\n")

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("no growth event from poller")
	}
}

func TestPoll_CloseStops(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	events, closer := Poll(path, 10*time.Millisecond)

	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Error("event after close")
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after Close")
	}
}
