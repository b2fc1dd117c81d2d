package feed

import "context"

// Provider is a pull-based content stream. Each NextBatch call returns
// the next window of articles in stream order; an empty batch means the
// stream has no further content right now. Providers are restartable
// per session only; mid-session rewind is not supported.
type Provider interface {
	NextBatch(ctx context.Context) ([]Article, error)
}

// MemoryProvider serves a fixed article list in batches. Used for the
// secondary recommendations stream and in tests.
type MemoryProvider struct {
	articles  []Article
	batchSize int
	next      int
}

// NewMemoryProvider creates a provider over the given articles.
// batchSize caps each NextBatch result; values < 1 default to 10.
func NewMemoryProvider(articles []Article, batchSize int) *MemoryProvider {
	if batchSize < 1 {
		batchSize = 10
	}
	return &MemoryProvider{articles: articles, batchSize: batchSize}
}

// NextBatch returns the next batch of articles, or an empty batch when
// the stream is exhausted.
func (p *MemoryProvider) NextBatch(ctx context.Context) ([]Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.next >= len(p.articles) {
		return nil, nil
	}
	end := min(p.next+p.batchSize, len(p.articles))
	batch := make([]Article, end-p.next)
	copy(batch, p.articles[p.next:end])
	p.next = end
	return batch, nil
}
