package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFeed(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func appendFeed(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
}

func TestJSONLProvider_MissingFile(t *testing.T) {
	p := NewJSONLProvider(filepath.Join(t.TempDir(), "feed.jsonl"))
	batch, err := p.NextBatch(context.Background())
	if err != nil {
		t.Fatalf("NextBatch: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("expected empty batch for missing file, got %d articles", len(batch))
	}
}

func TestJSONLProvider_ReadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	writeFeed(t, path, `{"id":"a1","title":"First"}`+"\n"+`{"id":"a2","title":"Second"}`+"\n")

	p := NewJSONLProvider(path)
	batch, err := p.NextBatch(context.Background())
	if err != nil {
		t.Fatalf("NextBatch: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(batch))
	}
	if batch[0].ID != "a1" || batch[1].ID != "a2" {
		t.Errorf("unexpected IDs: %s, %s", batch[0].ID, batch[1].ID)
	}
	if batch[0].Source != StreamPrimary {
		t.Errorf("expected default source %q, got %q", StreamPrimary, batch[0].Source)
	}
}

func TestJSONLProvider_IncrementalAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	writeFeed(t, path, `{"id":"a1"}`+"\n")

	p := NewJSONLProvider(path)
	if batch, _ := p.NextBatch(context.Background()); len(batch) != 1 {
		t.Fatalf("first batch: expected 1 article, got %d", len(batch))
	}

	appendFeed(t, path, `{"id":"a2"}`+"\n")
	batch, err := p.NextBatch(context.Background())
	if err != nil {
		t.Fatalf("NextBatch after append: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "a2" {
		t.Errorf("expected only the appended article, got %v", batch)
	}

	// No further content.
	if batch, _ := p.NextBatch(context.Background()); len(batch) != 0 {
		t.Errorf("expected empty batch, got %d articles", len(batch))
	}
}

func TestJSONLProvider_IncompleteTrailingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	writeFeed(t, path, `{"id":"a1"}`+"\n"+`{"id":"a2"`)

	p := NewJSONLProvider(path)
	batch, err := p.NextBatch(context.Background())
	if err != nil {
		t.Fatalf("NextBatch: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "a1" {
		t.Fatalf("expected only the complete line, got %v", batch)
	}

	// Writer finishes the line; the provider picks it up.
	appendFeed(t, path, `}`+"\n")
	batch, err = p.NextBatch(context.Background())
	if err != nil {
		t.Fatalf("NextBatch: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "a2" {
		t.Errorf("expected the completed article, got %v", batch)
	}
}

func TestJSONLProvider_TruncatedFileRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	writeFeed(t, path, `{"id":"a1"}`+"\n"+`{"id":"a2"}`+"\n")

	p := NewJSONLProvider(path)
	if batch, _ := p.NextBatch(context.Background()); len(batch) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(batch))
	}

	writeFeed(t, path, `{"id":"b1"}`+"\n")
	batch, err := p.NextBatch(context.Background())
	if err != nil {
		t.Fatalf("NextBatch after truncate: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "b1" {
		t.Errorf("expected restart from top after truncation, got %v", batch)
	}
}

func TestJSONLProvider_BadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	writeFeed(t, path, "not json\n")

	p := NewJSONLProvider(path)
	if _, err := p.NextBatch(context.Background()); err == nil {
		t.Error("expected parse error for malformed line")
	}
}

func TestMemoryProvider_Batches(t *testing.T) {
	p := NewMemoryProvider(articles("r1", "r2", "r3"), 2)

	batch, err := p.NextBatch(context.Background())
	if err != nil {
		t.Fatalf("NextBatch: %v", err)
	}
	if !equalIDs(ids(batch), []string{"r1", "r2"}) {
		t.Errorf("first batch = %v", ids(batch))
	}

	batch, _ = p.NextBatch(context.Background())
	if !equalIDs(ids(batch), []string{"r3"}) {
		t.Errorf("second batch = %v", ids(batch))
	}

	batch, _ = p.NextBatch(context.Background())
	if len(batch) != 0 {
		t.Errorf("expected exhausted stream, got %v", ids(batch))
	}
}

func TestMemoryProvider_CancelledContext(t *testing.T) {
	p := NewMemoryProvider(articles("r1"), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.NextBatch(ctx); err == nil {
		t.Error("expected context error")
	}
}
