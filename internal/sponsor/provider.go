// Package sponsor provides the house creative provider: sponsored
// cards picked deterministically per slot and acquired with simulated
// network latency. It backs the slot machinery during development and
// when no remote ad server is configured.
package sponsor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/wilbur182/skim/internal/slots"
)

// Card is one sponsored creative.
type Card struct {
	ID         string `json:"id"`
	Advertiser string `json:"advertiser"`
	Headline   string `json:"headline"`
	Body       string `json:"body"`
	Link       string `json:"link"`
}

// Provider acquires house creatives. The pick is a stable hash of the
// slot ID, so the same slot instance always resolves to the same card
// while distinct instances (new generations included) may differ.
type Provider struct {
	creatives []Card
	latency   time.Duration

	mu          sync.Mutex
	outstanding int
}

// Option configures a Provider.
type Option func(*Provider)

// WithLatency sets the simulated acquisition latency. Zero means the
// request resolves immediately.
func WithLatency(d time.Duration) Option {
	return func(p *Provider) { p.latency = d }
}

// WithCreatives replaces the built-in creative set.
func WithCreatives(cards []Card) Option {
	return func(p *Provider) {
		if len(cards) > 0 {
			p.creatives = cards
		}
	}
}

// New returns a provider over the built-in creative set.
func New(opts ...Option) *Provider {
	p := &Provider{creatives: defaultCreatives}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadCreatives reads a creative set from a JSON file: an array of
// Card objects.
func LoadCreatives(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read creatives: %w", err)
	}
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse creatives %s: %w", path, err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("creatives %s: empty set", path)
	}
	return cards, nil
}

// Request acquires the creative for slotID after the simulated
// latency. Cancellation during the wait returns the context error and
// no resource.
func (p *Provider) Request(ctx context.Context, slotID string) (slots.Resource, error) {
	if p.latency > 0 {
		t := time.NewTimer(p.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	card := p.pick(slotID)
	p.mu.Lock()
	p.outstanding++
	p.mu.Unlock()
	return &card, nil
}

// Release returns an acquired creative. Each acquired resource must be
// released exactly once; the outstanding count surfaces leaks.
func (p *Provider) Release(res slots.Resource) {
	if res == nil {
		return
	}
	p.mu.Lock()
	p.outstanding--
	p.mu.Unlock()
}

// Outstanding returns acquired-minus-released.
func (p *Provider) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outstanding
}

func (p *Provider) pick(slotID string) Card {
	idx := xxhash.Sum64String(slotID) % uint64(len(p.creatives))
	return p.creatives[idx]
}

var defaultCreatives = []Card{
	{
		ID:         "house-terminal",
		Advertiser: "skim",
		Headline:   "Read faster in the terminal",
		Body:       "Keyboard-first feeds. No tabs, no tracking, no mercy for clutter.",
		Link:       "https://example.com/skim",
	},
	{
		ID:         "house-coffee",
		Advertiser: "Roast & Recurse",
		Headline:   "Coffee for long compiles",
		Body:       "Single-origin beans shipped monthly. First bag on us.",
		Link:       "https://example.com/roast",
	},
	{
		ID:         "house-keys",
		Advertiser: "Quiet Keys Co.",
		Headline:   "Switches your open office will tolerate",
		Body:       "Dampened tactiles, hot-swap board, ships in three days.",
		Link:       "https://example.com/keys",
	},
	{
		ID:         "house-backup",
		Advertiser: "Coldstore",
		Headline:   "Backups you never think about",
		Body:       "Encrypted, incremental, restorable from one command.",
		Link:       "https://example.com/coldstore",
	},
}
