package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/skim/internal/slots"
	"github.com/wilbur182/skim/internal/sponsor"
	"github.com/wilbur182/skim/internal/styles"
	"github.com/wilbur182/skim/internal/ui"
)

// listHeight returns how many feed rows fit above the body pane.
func (m Model) listHeight() int {
	h := m.height - 2 - m.bodyHeight() // header + status bar
	if h < 1 {
		h = 1
	}
	return h
}

// bodyHeight is the reading pane's share of the screen.
func (m Model) bodyHeight() int {
	h := m.height / 3
	if h < 4 {
		h = 4
	}
	return h
}

// View renders the header, the feed window with scrollbar, the reading
// pane for the row under the cursor, and the status bar.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderBodyPane())
	if m.cfg.UI.ShowStatusBar {
		b.WriteString("\n")
		b.WriteString(m.renderStatusBar())
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("skim")
	count := styles.MutedStyle.Render(fmt.Sprintf("%d items", m.controller.Len()))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + count
}

func (m Model) renderList() string {
	visible := m.listHeight()
	rowWidth := m.width - 2 // scrollbar column + gap
	if rowWidth < 10 {
		rowWidth = 10
	}

	rows := make([]string, 0, visible)
	for i := m.scroll; i < m.scroll+visible; i++ {
		d, ok := m.controller.Descriptor(i)
		if !ok {
			rows = append(rows, "")
			continue
		}
		rows = append(rows, m.renderRow(d, rowWidth, i == m.cursor))
	}

	list := strings.Join(rows, "\n")
	bar := ui.RenderScrollbar(ui.ScrollbarParams{
		TotalItems:   m.controller.Len(),
		ScrollOffset: m.scroll,
		VisibleItems: visible,
		TrackHeight:  visible,
	})
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", bar)
}

// renderRow renders one single-line feed row. Sponsored slots show
// their lifecycle inline; the full card renders in the reading pane.
func (m Model) renderRow(d slots.Descriptor, width int, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "▌ "
	}
	textWidth := width - 2

	var line string
	switch {
	case d.Article != nil:
		meta := styles.MutedStyle.Render(" · " + string(d.Article.Source) + " · " + timeAgo(d.Article.PublishedAt))
		title := ui.Truncate(d.Article.Title, textWidth-lipgloss.Width(meta))
		if selected {
			line = styles.SelectedRowStyle.Render(title) + meta
		} else {
			line = title + meta
		}

	case d.Slot != nil:
		line = m.renderSlotRow(d.Slot, textWidth, selected)
	}

	return prefix + line
}

func (m Model) renderSlotRow(s *slots.Slot, width int, selected bool) string {
	switch s.Status {
	case slots.StatusLoaded:
		card, ok := s.Handle.(*sponsor.Card)
		if !ok {
			return ui.RenderCollapsedSlot(width)
		}
		tag := styles.SponsorTagStyle.Render("AD")
		headline := ui.Truncate(card.Headline, width-4)
		if selected {
			return tag + " " + styles.SelectedRowStyle.Render(headline)
		}
		return tag + " " + headline

	case slots.StatusLoading:
		return m.spin.View() + " " + styles.SubtleStyle.Render("loading sponsor...")

	case slots.StatusFailed:
		if m.cfg.Slots.SkipIfNotReady {
			return ui.RenderCollapsedSlot(width)
		}
		return styles.ErrorStyle.Render(ui.Truncate("sponsor unavailable", width))

	default:
		// Idle and evicted slots keep their row but stay quiet.
		return ui.RenderCollapsedSlot(width)
	}
}

// renderBodyPane renders the reading pane for the row under the
// cursor: the article body, the full sponsor card, or the loading
// shimmer.
func (m Model) renderBodyPane() string {
	height := m.bodyHeight()
	width := m.width
	if m.cfg.UI.BodyWidth > 0 && width > m.cfg.UI.BodyWidth {
		width = m.cfg.UI.BodyWidth
	}

	divider := styles.SubtleStyle.Render(strings.Repeat("─", max(m.width, 1)))

	d, ok := m.controller.Descriptor(m.cursor)
	if !ok {
		return divider + "\n" + padLines(nil, height-1)
	}

	var lines []string
	switch {
	case d.Article != nil:
		lines = m.renderer.Render(d.Article.Body, width)

	case d.Slot != nil && d.Slot.Status == slots.StatusLoaded:
		if card, ok := d.Slot.Handle.(*sponsor.Card); ok {
			rendered := ui.RenderSponsorCard(ui.SponsorCard{
				Advertiser: card.Advertiser,
				Headline:   card.Headline,
				Body:       card.Body,
				Link:       card.Link,
			}, width, true)
			lines = strings.Split(rendered, "\n")
		}

	case d.Slot != nil && d.Slot.Status == slots.StatusLoading:
		lines = strings.Split(m.skeleton.View(width), "\n")
	}

	if len(lines) > height-1 {
		lines = lines[:height-1]
	}
	return divider + "\n" + padLines(lines, height-1)
}

func (m Model) renderStatusBar() string {
	if m.statusMsg != "" {
		if m.statusIsError {
			return styles.ErrorStyle.Render(ui.Truncate(m.statusMsg, m.width))
		}
		return styles.StatusBarStyle.Render(ui.Truncate(m.statusMsg, m.width))
	}

	resident := m.controller.Manager().ResidentCount()
	left := fmt.Sprintf("%d/%d", m.cursor+1, m.controller.Len())
	right := fmt.Sprintf("sponsors %d/%d cached", resident, m.cfg.Slots.MaxCached)
	hint := "j/k move · c copy link · q quit"

	gap := m.width - len(left) - len(hint) - len(right) - 4
	if gap < 2 {
		return styles.StatusBarStyle.Render(ui.Truncate(left+"  "+hint, m.width))
	}
	return styles.StatusBarStyle.Render(left + "  " + hint + strings.Repeat(" ", gap) + right)
}

// padLines joins lines and pads with blanks to exactly height rows.
func padLines(lines []string, height int) string {
	if height < 0 {
		height = 0
	}
	out := make([]string, height)
	copy(out, lines)
	return strings.Join(out, "\n")
}

// timeAgo formats a timestamp as a compact relative age.
func timeAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
