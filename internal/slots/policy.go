// Package slots decides where sponsored cards appear in the feed and
// manages the lifecycle of their asynchronously acquired resources:
// deduplicated loads, a bounded resident budget, distance-based
// eviction, and generation counters that invalidate completions
// arriving after their slot was abandoned.
package slots

import (
	"errors"
	"fmt"
	"time"
)

// Config fixes the slot placement and caching policy for a session.
// It is immutable once the controller is built; changing policy
// requires a new session.
type Config struct {
	// FirstPosition is the feed index of the first slot. Zero is valid.
	FirstPosition int
	// Interval is the distance between consecutive slots. Must be > 0.
	Interval int
	// PreloadDistance is the maximum cursor-to-slot distance at which a
	// slot begins loading proactively.
	PreloadDistance int
	// UnloadDistance is the distance beyond which a resident resource
	// is released. Should be >= PreloadDistance to avoid thrash.
	UnloadDistance int
	// MaxCached bounds how many slots may be Loaded or Loading at once.
	MaxCached int
	// MaxPerSession caps how many slot positions are ever produced
	// across the session. Zero means unlimited.
	MaxPerSession int
	// SkipIfNotReady defers over-budget preloads instead of evicting a
	// resident slot to make room, and tells the render layer to
	// collapse failed slots rather than show an error card.
	SkipIfNotReady bool
	// BackwardBias flips the forward-first tie-break for two candidate
	// slots at equal distance from the cursor.
	BackwardBias bool
	// LoadTimeout bounds a single acquisition; a load that does not
	// settle in time is treated as failed.
	LoadTimeout time.Duration
}

// Policy configuration errors. Any of these puts the session in
// no-slots mode: the feed renders without sponsored cards.
var (
	ErrInvalidInterval = errors.New("slot interval must be positive")
	ErrInvalidBudget   = errors.New("max cached slots must be positive")
)

// Validate reports configuration errors that are fatal for slot
// placement. Distances are clamped rather than rejected.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, c.Interval)
	}
	if c.FirstPosition < 0 {
		return fmt.Errorf("first slot position must be >= 0, got %d", c.FirstPosition)
	}
	if c.MaxCached <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBudget, c.MaxCached)
	}
	return nil
}

// Policy produces the ordered set of eligible slot positions for a
// growing feed. Positions are derived incrementally from the last one
// produced, so the sequence for a shorter feed is always a strict
// prefix of the sequence for a longer one.
type Policy struct {
	first    int
	interval int
	cap      int // 0 = unlimited

	produced int
	next     int
}

// NewPolicy validates cfg and creates a policy. A validation error
// means the caller should run without slots for the session.
func NewPolicy(cfg Config) (*Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Policy{
		first:    cfg.FirstPosition,
		interval: cfg.Interval,
		cap:      cfg.MaxPerSession,
		next:     cfg.FirstPosition,
	}, nil
}

// Peek returns the next eligible position if it fits within feedLen.
// It does not consume the position; call Advance once the position has
// been materialized in the feed.
func (p *Policy) Peek(feedLen int) (int, bool) {
	if p.cap > 0 && p.produced >= p.cap {
		return 0, false
	}
	if p.next > feedLen {
		return 0, false
	}
	return p.next, true
}

// Advance consumes the position returned by Peek.
func (p *Policy) Advance() {
	p.produced++
	p.next += p.interval
}

// Produced returns how many positions the policy has emitted so far.
func (p *Policy) Produced() int { return p.produced }

// ExtendTo returns all newly eligible positions for a feed of the
// given length, consuming them. Useful when slot placeholders are
// appended in one step rather than interleaved with content.
func (p *Policy) ExtendTo(feedLen int) []int {
	var out []int
	for {
		pos, ok := p.Peek(feedLen)
		if !ok {
			return out
		}
		out = append(out, pos)
		p.Advance()
	}
}
