package telemetry

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// storeBuffer is the queue depth between Emit and the writer goroutine.
// Events beyond this are dropped; telemetry loss is acceptable, a
// stalled controller is not.
const storeBuffer = 256

// Store persists events to an append-only sqlite table. Writes happen
// on a dedicated goroutine so Emit never touches the database.
type Store struct {
	db     *sql.DB
	events chan Event
	done   chan struct{}
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS slot_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT    NOT NULL,
	position   INTEGER NOT NULL,
	generation INTEGER NOT NULL,
	at         TEXT    NOT NULL,
	detail     TEXT
);`

// OpenStore opens (creating if needed) the event database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{
		db:     db,
		events: make(chan Event, storeBuffer),
		done:   make(chan struct{}),
	}
	go s.writeLoop()
	return s, nil
}

// Emit implements Emitter with a non-blocking send.
func (s *Store) Emit(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	select {
	case s.events <- e:
	default:
		// Queue full; drop.
	}
}

// Close drains queued events and closes the database.
func (s *Store) Close() error {
	close(s.events)
	<-s.done
	return s.db.Close()
}

func (s *Store) writeLoop() {
	defer close(s.done)
	for e := range s.events {
		_, _ = s.db.Exec(
			`INSERT INTO slot_events (kind, position, generation, at, detail) VALUES (?, ?, ?, ?, ?)`,
			string(e.Kind), e.Position, int64(e.Generation), e.At.UTC().Format(time.RFC3339Nano), e.Detail,
		)
	}
}

// Count returns the number of stored events, optionally filtered by kind.
// Used by diagnostics and tests.
func (s *Store) Count(kind Kind) (int, error) {
	var n int
	var err error
	if kind == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM slot_events`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM slot_events WHERE kind = ?`, string(kind)).Scan(&n)
	}
	return n, err
}
