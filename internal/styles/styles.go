// Package styles defines the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Brand and status colors.
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
)

// Text colors.
var (
	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")
	TextSubtle    = lipgloss.Color("#4B5563")
)

// Border colors.
var (
	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")
)

// Scrollbar colors.
var (
	ScrollbarTrackColor = lipgloss.Color("#374151")
	ScrollbarThumbColor = lipgloss.Color("#6B7280")
)

// Shared styles used across the app and ui packages.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(TextSubtle)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Background(lipgloss.Color("#1F2937")).
				Bold(true)

	SponsorTagStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondary)
)
