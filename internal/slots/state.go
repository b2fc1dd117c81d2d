package slots

import (
	"context"
	"fmt"
	"time"
)

// Resource is an acquired sponsored creative. Opaque to the slot
// machinery beyond acquisition and release.
type Resource any

// Provider acquires and releases sponsored resources. Request may take
// arbitrarily long; it must honor ctx cancellation. Release must be
// safe to call exactly once per acquired resource.
type Provider interface {
	Request(ctx context.Context, slotID string) (Resource, error)
	Release(res Resource)
}

// Status is the lifecycle state of a slot instance.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
	StatusEvicted
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	case StatusEvicted:
		return "evicted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Slot is the per-position lifecycle record. Generation increments
// each time the slot leaves Evicted for a fresh Idle instance; a
// settling load whose generation no longer matches is stale and its
// result is discarded.
type Slot struct {
	Position    int
	Status      Status
	Handle      Resource
	Generation  uint64
	RequestedAt time.Time
	LoadedAt    time.Time
	Err         error
}

// Active reports whether the slot holds or is acquiring a resource.
func (s *Slot) Active() bool {
	return s.Status == StatusLoading || s.Status == StatusLoaded
}

// Load describes one asynchronous acquisition the caller must run.
// The generation pins the slot instance the result belongs to.
type Load struct {
	Position   int
	Generation uint64
	SlotID     string
}

func slotID(pos int, gen uint64) string {
	return fmt.Sprintf("slot-%d.%d", pos, gen)
}
