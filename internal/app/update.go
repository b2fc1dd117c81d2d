package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/skim/internal/ui"
)

// Update is the serial execution context. Every state transition in
// the session, including each settled async load, passes through here
// one message at a time.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case cursorSettledMsg:
		// Stale ticks from superseded movement are dropped; only the
		// resting position reaches the slot controller.
		if msg.seq != m.cursorSeq {
			return m, nil
		}
		loads := m.controller.OnCursorChanged(m.cursor)
		return m, tea.Batch(loadCmds(m.provider, loads, m.cfg.Slots.LoadTimeout)...)

	case BatchLoadedMsg:
		if msg.Err != nil {
			m.lastError = msg.Err
			m.showToast("Feed error: "+msg.Err.Error(), 5*time.Second, true)
			return m, nil
		}
		if len(msg.Articles) == 0 {
			return m, nil
		}
		loads := m.controller.Append(msg.Articles)
		cmds := loadCmds(m.provider, loads, m.cfg.Slots.LoadTimeout)
		// Providers cap batch size, so a large backlog spans several
		// batches. Keep reading until one comes back empty.
		cmds = append(cmds, readBatchCmd(m.primary, m.secondary, m.cfg.Feed.Interleave))
		return m, tea.Batch(cmds...)

	case FeedGrewMsg:
		cmds := []tea.Cmd{readBatchCmd(m.primary, m.secondary, m.cfg.Feed.Interleave)}
		if cmd := waitForGrowthCmd(m.growth); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case SlotSettledMsg:
		m.controller.Manager().OnLoadSettled(msg.Pos, msg.Gen, msg.Handle, msg.Err)
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			// Stop ticking until the next load starts; the cursor
			// settle handler restarts it.
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ui.SkeletonTickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		cmd := m.skeleton.Update(msg)
		return m, cmd

	case ToastMsg:
		m.showToast(msg.Message, msg.Duration, msg.IsError)
		return m, nil

	case tickMsg:
		m.clearExpiredToast()
		return m, tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		cmd := m.withAnimation(m.moveCursor(m.cursor - 1))
		return m, cmd
	case "down", "j":
		cmd := m.withAnimation(m.moveCursor(m.cursor + 1))
		return m, cmd
	case "pgup", "ctrl+u":
		cmd := m.withAnimation(m.moveCursor(m.cursor - m.listHeight()))
		return m, cmd
	case "pgdown", "ctrl+d":
		cmd := m.withAnimation(m.moveCursor(m.cursor + m.listHeight()))
		return m, cmd
	case "g", "home":
		cmd := m.withAnimation(m.moveCursor(0))
		return m, cmd
	case "G", "end":
		cmd := m.withAnimation(m.moveCursor(m.controller.Len() - 1))
		return m, cmd

	case "c", "y":
		if d, ok := m.controller.Descriptor(m.cursor); ok && d.Article != nil && d.Article.Link != "" {
			return m, copyLinkCmd(d.Article.Link)
		}
		return m, nil
	}
	return m, nil
}

// withAnimation bundles a movement command with the animation ticks
// that may need restarting once new loads begin.
func (m Model) withAnimation(move tea.Cmd) tea.Cmd {
	if move == nil {
		return nil
	}
	return tea.Batch(move, m.spin.Tick, ui.SkeletonTick())
}
