package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// defaultMaxBatch caps how many articles one NextBatch call returns so
// a large backlog doesn't stall the event loop.
const defaultMaxBatch = 64

// JSONLProvider streams articles from an append-only JSONL file, one
// article object per line. Reads are incremental: the provider resumes
// from the byte offset reached by the previous batch, so a file that
// grows between calls yields only the new lines.
type JSONLProvider struct {
	path     string
	offset   int64
	maxBatch int
}

// NewJSONLProvider creates a provider reading from path. The file does
// not need to exist yet; a missing file reads as an empty stream.
func NewJSONLProvider(path string) *JSONLProvider {
	return &JSONLProvider{path: path, maxBatch: defaultMaxBatch}
}

// Offset returns the byte offset the next batch will read from.
func (p *JSONLProvider) Offset() int64 { return p.offset }

// NextBatch reads newly appended complete lines and parses them as
// articles. A trailing line without a newline is left for the next
// call; a writer may still be appending it.
func (p *JSONLProvider) NextBatch(ctx context.Context) ([]Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < p.offset {
		// File was truncated or replaced; restart from the top.
		p.offset = 0
	}
	if info.Size() == p.offset {
		return nil, nil
	}

	if _, err := f.Seek(p.offset, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var articles []Article
	consumed := int64(0)
	for len(data) > 0 && len(articles) < p.maxBatch {
		nl := bytes.IndexByte(data, '\n')
		if nl < 0 {
			break // incomplete trailing line
		}
		line := data[:nl]
		data = data[nl+1:]
		consumed += int64(nl + 1)

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var a Article
		if err := json.Unmarshal(line, &a); err != nil {
			return nil, fmt.Errorf("parse article at offset %d: %w", p.offset+consumed-int64(nl+1), err)
		}
		if a.Source == "" {
			a.Source = StreamPrimary
		}
		articles = append(articles, a)
	}

	p.offset += consumed
	return articles, nil
}
