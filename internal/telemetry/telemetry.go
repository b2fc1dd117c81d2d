// Package telemetry emits slot lifecycle events to pluggable sinks.
// Emission is fire-and-forget: no sink may block the caller, and a sink
// that cannot keep up drops events rather than applying backpressure.
package telemetry

import (
	"log/slog"
	"time"
)

// Kind classifies a slot lifecycle event.
type Kind string

const (
	KindRequested        Kind = "requested"
	KindLoaded           Kind = "loaded"
	KindFailed           Kind = "failed"
	KindEvicted          Kind = "evicted"
	KindStaleDiscarded   Kind = "stale_discarded"
	KindCapacityDeferred Kind = "capacity_deferred"
	KindPolicyDisabled   Kind = "policy_disabled"
)

// Event is one slot lifecycle occurrence.
type Event struct {
	Kind       Kind
	Position   int
	Generation uint64
	At         time.Time
	Detail     string
}

// Emitter receives lifecycle events. Implementations must not block.
type Emitter interface {
	Emit(Event)
}

// Nop discards all events.
type Nop struct{}

// Emit implements Emitter.
func (Nop) Emit(Event) {}

// Logger emits events at debug level through slog.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates a logging emitter.
func NewLogger(log *slog.Logger) *Logger {
	return &Logger{log: log}
}

// Emit implements Emitter.
func (l *Logger) Emit(e Event) {
	l.log.Debug("slot event",
		"kind", string(e.Kind),
		"position", e.Position,
		"generation", e.Generation,
		"detail", e.Detail,
	)
}

// Multi fans an event out to several emitters.
type Multi []Emitter

// Emit implements Emitter.
func (m Multi) Emit(e Event) {
	for _, em := range m {
		em.Emit(e)
	}
}
