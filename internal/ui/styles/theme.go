package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the player.
type Theme struct {
	Primary   lipgloss.Color // seek bar start, transport button
	Secondary lipgloss.Color // seek bar end

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	Border lipgloss.Color
	Error  lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Border: lipgloss.Color("#585858"),
	Error:  lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		base := lipgloss.NewStyle().Foreground(t.FgBase)
		t.styles = &Styles{
			Base:    base,
			Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
			Title:   base.Bold(true),
			Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(t.Error),
		}
	}
	return t.styles
}
