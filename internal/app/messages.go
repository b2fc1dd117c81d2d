package app

import (
	"time"

	"github.com/wilbur182/skim/internal/feed"
	"github.com/wilbur182/skim/internal/slots"
)

// BatchLoadedMsg delivers the next merged batch of articles.
type BatchLoadedMsg struct {
	Articles []feed.Article
	Err      error
}

// FeedGrewMsg signals that the primary feed file gained bytes; the
// model responds by reading the next batch.
type FeedGrewMsg struct{}

// SlotSettledMsg delivers an async creative acquisition result back
// into the update loop. Gen pins the result to the slot instance that
// requested it; the lifecycle manager discards mismatches.
type SlotSettledMsg struct {
	Pos    int
	Gen    uint64
	Handle slots.Resource
	Err    error
}

// ToastMsg displays a temporary status message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool
}

// tickMsg drives toast expiry.
type tickMsg time.Time
