package slots

import (
	"sort"

	"github.com/wilbur182/skim/internal/feed"
	"github.com/wilbur182/skim/internal/telemetry"
)

// Controller drives slot lifecycle from cursor movement and feed
// growth. It owns the composed feed (articles with slot placeholders
// interleaved at policy positions) and translates each event into an
// evict set and an ordered preload set, mutating state only through
// the manager. The render layer reads descriptors; it never triggers
// transitions.
//
// Callers must invoke the controller from a single logical execution
// context, and should push only the settled cursor value per update
// cycle: intermediate indices of a fast scroll are skipped so a flick
// through fifty rows doesn't issue fifty loads.
type Controller struct {
	cfg     Config
	policy  *Policy // nil in no-slots mode
	mgr     *Manager
	emitter telemetry.Emitter

	items     []feed.Item
	positions []int // same positions, ascending
	cursor    int
}

// Descriptor is what the render layer sees for one feed index: the
// underlying article, or a snapshot of the slot occupying it.
type Descriptor struct {
	Article *feed.Article
	Slot    *Slot
}

// NewController builds a controller for one session. A policy
// configuration error is returned after switching the session into
// no-slots mode: the controller stays usable and the feed renders
// without sponsored cards.
func NewController(cfg Config, provider Provider, emitter telemetry.Emitter) (*Controller, error) {
	if emitter == nil {
		emitter = telemetry.Nop{}
	}
	c := &Controller{
		cfg:     cfg,
		mgr:     NewManager(provider, cfg.MaxCached, emitter),
		emitter: emitter,
	}

	policy, err := NewPolicy(cfg)
	if err != nil {
		emitter.Emit(telemetry.Event{Kind: telemetry.KindPolicyDisabled, Detail: err.Error()})
		return c, err
	}
	c.policy = policy
	return c, nil
}

// Manager exposes the lifecycle manager for read-side inspection.
func (c *Controller) Manager() *Manager { return c.mgr }

// Len returns the composed feed length.
func (c *Controller) Len() int { return len(c.items) }

// Cursor returns the current cursor index.
func (c *Controller) Cursor() int { return c.cursor }

// Items returns the composed feed. The slice is owned by the
// controller; callers must not modify it.
func (c *Controller) Items() []feed.Item { return c.items }

// Append is the feed-growth entry point: new articles from the mixer
// are composed into the feed, placeholders are materialized for any
// newly eligible positions, and the preload/evict sets are recomputed
// against the unchanged cursor.
func (c *Controller) Append(batch []feed.Article) []Load {
	for i := range batch {
		c.materialize()
		a := batch[i]
		c.items = append(c.items, feed.ArticleItem(&a))
	}
	return c.sync()
}

// OnCursorChanged is the cursor entry point. The index is clamped to
// the feed bounds.
func (c *Controller) OnCursorChanged(index int) []Load {
	switch n := len(c.items); {
	case index < 0 || n == 0:
		index = 0
	case index >= n:
		index = n - 1
	}
	c.cursor = index
	return c.sync()
}

// Descriptor returns the render view of index i.
func (c *Controller) Descriptor(i int) (Descriptor, bool) {
	if i < 0 || i >= len(c.items) {
		return Descriptor{}, false
	}
	it := c.items[i]
	if !it.IsSlot() {
		return Descriptor{Article: it.Article}, true
	}
	s, ok := c.mgr.Slot(it.SlotPos)
	if !ok {
		s = Slot{Position: it.SlotPos, Status: StatusIdle}
	}
	return Descriptor{Slot: &s}, true
}

// materialize inserts a placeholder when the next eligible position
// falls exactly at the current feed length, so the slot lands ahead of
// the article about to be appended. At most one placeholder goes in
// per article: a slot must be anchored by content, which also keeps
// composition finite for degenerate one-step intervals. Positions are
// emitted in order and never revisited, which keeps the eligible set
// prefix-stable as the feed grows.
func (c *Controller) materialize() {
	if c.policy == nil {
		return
	}
	pos, ok := c.policy.Peek(len(c.items))
	if !ok || pos != len(c.items) {
		return
	}
	c.items = append(c.items, feed.SlotItem(pos))
	c.positions = append(c.positions, pos)
	c.policy.Advance()
}

// sync recomputes the evict and preload sets for the current cursor.
// Evictions run first so freed budget is available to the loads issued
// in the same cycle.
func (c *Controller) sync() []Load {
	if c.policy == nil && len(c.positions) == 0 {
		return nil
	}

	for _, pos := range c.mgr.ActivePositions() {
		if absDist(pos, c.cursor) >= c.cfg.UnloadDistance {
			c.mgr.Evict(pos)
		}
	}
	c.mgr.EnforceCapacity(c.cursor)

	var loads []Load
	for _, pos := range c.preloadSet() {
		dist := absDist(pos, c.cursor)
		if c.mgr.ResidentCount() >= c.cfg.MaxCached {
			if c.cfg.SkipIfNotReady || !c.mgr.MakeRoom(c.cursor, dist) {
				// Deferred; the next cursor update retries.
				c.emitter.Emit(telemetry.Event{
					Kind: telemetry.KindCapacityDeferred, Position: pos,
				})
				continue
			}
		}
		if load, ok := c.mgr.RequestLoad(pos); ok {
			loads = append(loads, load)
		}
	}
	return loads
}

// preloadSet returns loadable positions within preload range, nearest
// first. Equal distances break forward-first unless the session is
// configured with a backward bias.
func (c *Controller) preloadSet() []int {
	var set []int
	for _, pos := range c.positions {
		if absDist(pos, c.cursor) > c.cfg.PreloadDistance {
			continue
		}
		if !c.mgr.Loadable(pos) {
			continue
		}
		set = append(set, pos)
	}

	sort.SliceStable(set, func(i, j int) bool {
		di, dj := absDist(set[i], c.cursor), absDist(set[j], c.cursor)
		if di != dj {
			return di < dj
		}
		forwardI, forwardJ := set[i] > c.cursor, set[j] > c.cursor
		if forwardI != forwardJ {
			if c.cfg.BackwardBias {
				return !forwardI
			}
			return forwardI
		}
		return set[i] < set[j]
	})
	return set
}
