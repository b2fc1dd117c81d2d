package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_DeliversGrowthEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.jsonl")
	writeFeed(t, path, "")

	events, closer, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer closer.Close()

	appendFeed(t, path, `{"id":"a1"}`+"\n")

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("no growth event after append")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.jsonl")
	writeFeed(t, path, "")

	events, closer, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer closer.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-events:
		t.Error("got event for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_SeesFileCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.jsonl")

	events, closer, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer closer.Close()

	writeFeed(t, path, `{"id":"a1"}`+"\n")

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("no event for feed file creation")
	}
}
