package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/skim/internal/styles"
)

// SkeletonTickMsg advances the shimmer animation one frame.
type SkeletonTickMsg time.Time

// SkeletonTickInterval is the shimmer frame rate.
const SkeletonTickInterval = 80 * time.Millisecond

// Skeleton is the placeholder shown in the reading pane while a
// sponsored card is still loading: a few ghost text rows with a
// shimmer band sweeping across them.
type Skeleton struct {
	Rows      int   // ghost rows to draw
	RowWidths []int // percentage width per row, cycled when shorter than Rows

	frame    int
	shimmerW int
}

// NewSkeleton creates a skeleton with the given row count. A nil
// rowWidths gets a varied default so the rows read like ragged text.
func NewSkeleton(rows int, rowWidths []int) Skeleton {
	if rowWidths == nil {
		rowWidths = []int{85, 60, 75, 55, 80, 65, 70, 50}
	}
	return Skeleton{
		Rows:      rows,
		RowWidths: rowWidths,
		shimmerW:  6,
	}
}

// Update advances the animation on a tick and schedules the next
// frame. The caller decides when to stop feeding ticks; skim only
// forwards them while a load is in flight.
func (s *Skeleton) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(SkeletonTickMsg); !ok {
		return nil
	}
	s.frame++
	return SkeletonTick()
}

// SkeletonTick schedules the next shimmer frame.
func SkeletonTick() tea.Cmd {
	return tea.Tick(SkeletonTickInterval, func(t time.Time) tea.Msg {
		return SkeletonTickMsg(t)
	})
}

// View renders the ghost rows at the given content width.
func (s Skeleton) View(width int) string {
	if width < 10 {
		width = 10
	}

	dimStyle := lipgloss.NewStyle().Foreground(styles.TextSubtle)
	brightStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	// The shimmer band cycles left to right across the full width,
	// offset a little per row so it sweeps diagonally.
	cycleLen := width + s.shimmerW*2
	shimmerStart := s.frame % cycleLen

	var sb strings.Builder
	for row := range s.Rows {
		pct := s.RowWidths[row%len(s.RowWidths)]
		rowWidth := min(max((width*pct)/100, 5), width)

		sb.WriteString(s.renderShimmerLine(rowWidth, shimmerStart+row*2, cycleLen, dimStyle, brightStyle))
		if row < s.Rows-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderShimmerLine draws one ghost row, brightening the cells the
// shimmer band currently covers.
func (s Skeleton) renderShimmerLine(width, shimmerPos, cycleLen int, dimStyle, brightStyle lipgloss.Style) string {
	const (
		charDim    = "░"
		charBright = "▒"
	)

	shimmerPos = shimmerPos % cycleLen

	var parts []string
	inShimmer := false
	segmentStart := 0
	for col := 0; col <= width; col++ {
		dist := col - (shimmerPos - s.shimmerW)
		nowInShimmer := dist >= 0 && dist < s.shimmerW && col < width

		if col == width || nowInShimmer != inShimmer {
			if n := col - segmentStart; n > 0 {
				if inShimmer {
					parts = append(parts, brightStyle.Render(strings.Repeat(charBright, n)))
				} else {
					parts = append(parts, dimStyle.Render(strings.Repeat(charDim, n)))
				}
			}
			segmentStart = col
			inShimmer = nowInShimmer
		}
	}
	return strings.Join(parts, "")
}
