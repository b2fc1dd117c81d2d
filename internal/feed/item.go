// Package feed models the merged article feed: two pull-based content
// streams mixed into one ordered sequence, with reserved positions for
// sponsored cards interleaved by the slots controller.
package feed

import "time"

// Stream identifies which content stream an article came from.
type Stream string

const (
	StreamPrimary   Stream = "primary"
	StreamSecondary Stream = "secondary"
)

// Article is an opaque content payload from either stream.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Body        string    `json:"body,omitempty"`
	Source      Stream    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Item is one row of the composed feed: either an article or a
// placeholder reserving an index for a sponsored card. Exactly one of
// the two interpretations applies; IsSlot distinguishes them.
type Item struct {
	Article *Article
	SlotPos int // valid only when Article == nil
}

// IsSlot reports whether the item is a sponsored-card placeholder.
func (it Item) IsSlot() bool { return it.Article == nil }

// ArticleItem wraps an article as a feed item.
func ArticleItem(a *Article) Item { return Item{Article: a} }

// SlotItem creates a placeholder item for the given feed position.
func SlotItem(pos int) Item { return Item{SlotPos: pos} }
