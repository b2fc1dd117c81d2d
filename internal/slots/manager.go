package slots

import (
	"sort"
	"time"

	"github.com/wilbur182/skim/internal/telemetry"
)

// Manager owns the slot map and the resident-resource budget. It is
// the single writer: all mutation goes through its methods, which are
// expected to run on one logical execution context (the app's Update
// loop). Async load results re-enter through OnLoadSettled only.
type Manager struct {
	provider Provider
	emitter  telemetry.Emitter
	budget   int

	slots map[int]*Slot
	now   func() time.Time
}

// NewManager creates a manager with the given resident budget.
func NewManager(provider Provider, budget int, emitter telemetry.Emitter) *Manager {
	if emitter == nil {
		emitter = telemetry.Nop{}
	}
	return &Manager{
		provider: provider,
		emitter:  emitter,
		budget:   budget,
		slots:    make(map[int]*Slot),
		now:      time.Now,
	}
}

// Slot returns a copy of the state for a position. The copy keeps
// readers from mutating manager-owned state.
func (m *Manager) Slot(pos int) (Slot, bool) {
	s, ok := m.slots[pos]
	if !ok {
		return Slot{}, false
	}
	return *s, true
}

// ResidentCount returns count(Loaded) + count(Loading).
func (m *Manager) ResidentCount() int {
	n := 0
	for _, s := range m.slots {
		if s.Active() {
			n++
		}
	}
	return n
}

// ActivePositions returns the positions currently Loading or Loaded.
func (m *Manager) ActivePositions() []int {
	var out []int
	for pos, s := range m.slots {
		if s.Active() {
			out = append(out, pos)
		}
	}
	sort.Ints(out)
	return out
}

// Loadable reports whether RequestLoad would start a load for pos:
// the slot is unknown, Idle, or a fresh instance after eviction.
func (m *Manager) Loadable(pos int) bool {
	s, ok := m.slots[pos]
	if !ok {
		return true
	}
	return s.Status == StatusIdle || s.Status == StatusEvicted
}

// RequestLoad transitions a slot into Loading and returns the load
// descriptor the caller must execute asynchronously. A slot already
// Loading dedups to a no-op; Loaded and Failed slots are not
// re-requested without an intervening eviction.
func (m *Manager) RequestLoad(pos int) (Load, bool) {
	s, ok := m.slots[pos]
	if !ok {
		s = &Slot{Position: pos, Status: StatusIdle, Generation: 1}
		m.slots[pos] = s
	}

	switch s.Status {
	case StatusEvicted:
		// Fresh instance: new generation, prior results are stale.
		s.Generation++
		s.Status = StatusIdle
		s.Handle = nil
		s.Err = nil
		s.LoadedAt = time.Time{}
	case StatusIdle:
	default:
		return Load{}, false
	}

	s.Status = StatusLoading
	s.RequestedAt = m.now()
	m.emitter.Emit(telemetry.Event{
		Kind: telemetry.KindRequested, Position: pos, Generation: s.Generation, At: s.RequestedAt,
	})
	return Load{Position: pos, Generation: s.Generation, SlotID: slotID(pos, s.Generation)}, true
}

// OnLoadSettled delivers an async acquisition result. Results whose
// generation no longer matches, or whose slot was evicted while the
// load was in flight, are discarded and their resource released, never
// surfaced to the render layer.
func (m *Manager) OnLoadSettled(pos int, gen uint64, handle Resource, err error) {
	s, ok := m.slots[pos]
	if !ok || gen != s.Generation || s.Status == StatusEvicted {
		m.discard(pos, gen, handle)
		return
	}
	if s.Status != StatusLoading {
		// Duplicate settlement for the same generation.
		m.discard(pos, gen, handle)
		return
	}

	if err != nil {
		s.Status = StatusFailed
		s.Err = err
		m.emitter.Emit(telemetry.Event{
			Kind: telemetry.KindFailed, Position: pos, Generation: gen, At: m.now(), Detail: err.Error(),
		})
		return
	}

	s.Status = StatusLoaded
	s.Handle = handle
	s.LoadedAt = m.now()
	m.emitter.Emit(telemetry.Event{
		Kind: telemetry.KindLoaded, Position: pos, Generation: gen, At: s.LoadedAt,
	})
}

// discard releases a resource that arrived for an abandoned slot
// instance. Logged to telemetry only; this is not an error.
func (m *Manager) discard(pos int, gen uint64, handle Resource) {
	if handle != nil {
		m.provider.Release(handle)
	}
	m.emitter.Emit(telemetry.Event{
		Kind: telemetry.KindStaleDiscarded, Position: pos, Generation: gen, At: m.now(),
	})
}

// Evict releases a Loaded slot's resource and moves the slot to
// Evicted. An in-flight load is not force-aborted; moving to Evicted
// marks its eventual result for discard-on-arrival.
func (m *Manager) Evict(pos int) {
	s, ok := m.slots[pos]
	if !ok || s.Status == StatusEvicted {
		return
	}

	if s.Status == StatusLoaded && s.Handle != nil {
		m.provider.Release(s.Handle)
	}
	gen := s.Generation
	s.Status = StatusEvicted
	s.Handle = nil
	m.emitter.Emit(telemetry.Event{
		Kind: telemetry.KindEvicted, Position: pos, Generation: gen, At: m.now(),
	})
}

// EnforceCapacity evicts Loaded slots until the resident count fits
// the budget, farthest from the cursor first, ties broken by oldest
// LoadedAt. Loading slots are never evicted for capacity; if they
// alone exceed the budget the overage resolves as they settle.
func (m *Manager) EnforceCapacity(cursor int) {
	for m.ResidentCount() > m.budget {
		victim := m.farthestLoaded(cursor)
		if victim == nil {
			return
		}
		m.Evict(victim.Position)
	}
}

// MakeRoom evicts the farthest Loaded slot to free budget for a load
// at minDist from the cursor. Returns false when no Loaded slot sits
// strictly farther than minDist; evicting one would be churn, not
// progress.
func (m *Manager) MakeRoom(cursor, minDist int) bool {
	victim := m.farthestLoaded(cursor)
	if victim == nil || absDist(victim.Position, cursor) <= minDist {
		return false
	}
	m.Evict(victim.Position)
	return true
}

func (m *Manager) farthestLoaded(cursor int) *Slot {
	var victim *Slot
	var victimDist int
	for _, s := range m.slots {
		if s.Status != StatusLoaded {
			continue
		}
		d := absDist(s.Position, cursor)
		switch {
		case victim == nil,
			d > victimDist,
			d == victimDist && s.LoadedAt.Before(victim.LoadedAt):
			victim = s
			victimDist = d
		}
	}
	return victim
}

func absDist(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
