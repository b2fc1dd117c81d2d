package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/wilbur182/skim/internal/styles"
)

// SponsorCard is the rendered form of a loaded sponsored creative.
type SponsorCard struct {
	Advertiser string
	Headline   string
	Body       string
	Link       string
}

var cardBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.BorderNormal).
	Padding(0, 1)

var cardBorderActiveStyle = cardBorderStyle.
	BorderForeground(styles.BorderActive)

// RenderSponsorCard renders a loaded creative as a bordered card.
// width is the total available width including the border.
func RenderSponsorCard(card SponsorCard, width int, selected bool) string {
	inner := width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	tag := styles.SponsorTagStyle.Render("SPONSORED")
	by := styles.SubtleStyle.Render(Truncate(card.Advertiser, inner-12))
	header := tag + "  " + by

	headline := styles.TitleStyle.Render(Truncate(card.Headline, inner))
	body := styles.MutedStyle.Render(Truncate(card.Body, inner))
	link := styles.SubtleStyle.Render(Truncate(card.Link, inner))

	content := strings.Join([]string{header, headline, body, link}, "\n")
	if selected {
		return cardBorderActiveStyle.Width(inner + 2).Render(content)
	}
	return cardBorderStyle.Width(inner + 2).Render(content)
}

// RenderCollapsedSlot renders the single-line form of a slot that is
// hidden from the reader: failed with skip-if-not-ready, or not yet
// loaded. Keeps row accounting stable without drawing attention.
func RenderCollapsedSlot(width int) string {
	return styles.SubtleStyle.Render(Truncate("· · ·", width))
}

// Truncate cuts s to fit maxWidth display cells, appending an ellipsis
// when anything was removed. Width-aware for double-width runes.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
