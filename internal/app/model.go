// Package app hosts the Bubble Tea model for the skim reader. Update
// is the single serial execution context: cursor moves, feed growth,
// and settled slot loads all mutate state here and nowhere else.
package app

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/skim/internal/config"
	"github.com/wilbur182/skim/internal/feed"
	"github.com/wilbur182/skim/internal/markdown"
	"github.com/wilbur182/skim/internal/slots"
	"github.com/wilbur182/skim/internal/styles"
	"github.com/wilbur182/skim/internal/ui"
)

// cursorSettleDelay batches rapid cursor movement: a flick through
// many rows pushes only the final position into the slot controller.
const cursorSettleDelay = 80 * time.Millisecond

// cursorSettledMsg fires after the cursor has rested for the settle
// delay. Seq discards ticks superseded by further movement.
type cursorSettledMsg struct {
	seq uint64
}

// Model is the root Bubble Tea model for skim.
type Model struct {
	cfg        *config.Config
	controller *slots.Controller
	provider   slots.Provider

	primary   feed.Provider
	secondary feed.Provider
	growth    <-chan feed.GrowthEvent
	watcher   io.Closer

	renderer *markdown.Renderer
	spin     spinner.Model
	skeleton ui.Skeleton

	width, height int
	cursor        int
	cursorSeq     uint64
	scroll        int

	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	lastError error
	ready     bool
}

// Options carries the wired dependencies for New.
type Options struct {
	Config     *config.Config
	Controller *slots.Controller
	Provider   slots.Provider
	Primary    feed.Provider
	Secondary  feed.Provider
	Growth     <-chan feed.GrowthEvent
	Watcher    io.Closer
}

// New creates the application model.
func New(opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	return Model{
		cfg:        opts.Config,
		controller: opts.Controller,
		provider:   opts.Provider,
		primary:    opts.Primary,
		secondary:  opts.Secondary,
		growth:     opts.Growth,
		watcher:    opts.Watcher,
		renderer:   markdown.NewRenderer(),
		spin:       sp,
		skeleton:   ui.NewSkeleton(3, nil),
	}
}

// Init loads the first batch and arms the feed watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		readBatchCmd(m.primary, m.secondary, m.cfg.Feed.Interleave),
		m.spin.Tick,
		ui.SkeletonTick(),
		tickCmd(),
	}
	if cmd := waitForGrowthCmd(m.growth); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Cursor returns the current cursor index into the composed feed.
func (m Model) Cursor() int { return m.cursor }

// moveCursor shifts the visual cursor and schedules the settle tick.
// The slot controller is only consulted once movement pauses.
func (m *Model) moveCursor(to int) tea.Cmd {
	switch n := m.controller.Len(); {
	case to < 0 || n == 0:
		to = 0
	case to >= n:
		to = n - 1
	}
	if to == m.cursor {
		return nil
	}
	m.cursor = to
	m.ensureCursorVisible()

	m.cursorSeq++
	seq := m.cursorSeq
	return tea.Tick(cursorSettleDelay, func(time.Time) tea.Msg {
		return cursorSettledMsg{seq: seq}
	})
}

// ensureCursorVisible adjusts scroll so the cursor stays in the list
// window.
func (m *Model) ensureCursorVisible() {
	visible := m.listHeight()
	if visible <= 0 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}

// showToast displays a temporary status message.
func (m *Model) showToast(msg string, d time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(d)
	m.statusIsError = isError
}

// clearExpiredToast drops the status message once its time is up.
func (m *Model) clearExpiredToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// anyLoading reports whether any slot in the composed feed is still
// acquiring its creative. Drives the spinner and skeleton ticks.
func (m Model) anyLoading() bool {
	for _, pos := range m.controller.Manager().ActivePositions() {
		if s, ok := m.controller.Manager().Slot(pos); ok && s.Status == slots.StatusLoading {
			return true
		}
	}
	return false
}

// Close releases the feed watcher. Called after the program exits.
func (m Model) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
