// Package styles provides the light and dark palettes of the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Name domain.Theme

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// LightTheme returns the palette used on light terminals. It is the default.
func LightTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeLight,
		Primary:    lipgloss.Color("#2563EB"),
		Secondary:  lipgloss.Color("#0F766E"),
		Background: lipgloss.Color("#FFFFFF"),
		Foreground: lipgloss.Color("#1F2937"),
		Muted:      lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#15803D"),
		Warning:    lipgloss.Color("#B45309"),
		Error:      lipgloss.Color("#B91C1C"),
		Border:     lipgloss.Color("#D1D5DB"),
		Bar:        lipgloss.Color("#F3F4F6"),
	}
}

// DarkTheme returns the palette used on dark terminals.
func DarkTheme() *Theme {
	return &Theme{
		Name:       domain.ThemeDark,
		Primary:    lipgloss.Color("#60A5FA"),
		Secondary:  lipgloss.Color("#2DD4BF"),
		Background: lipgloss.Color("#111827"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Success:    lipgloss.Color("#4ADE80"),
		Warning:    lipgloss.Color("#FBBF24"),
		Error:      lipgloss.Color("#F87171"),
		Border:     lipgloss.Color("#374151"),
		Bar:        lipgloss.Color("#1F2937"),
	}
}

// ThemeFor returns the palette for a stored theme. Unknown values fall back to light.
func ThemeFor(t domain.Theme) *Theme {
	if t == domain.ThemeDark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// Card frames a dashboard card.
	Card lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = LightTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Primary),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			MarginRight(1),
	}
}

// DefaultStyles returns styles with the light theme.
func DefaultStyles() *Styles {
	return NewStyles(LightTheme())
}

// ForTheme returns styles for a stored theme.
func ForTheme(t domain.Theme) *Styles {
	return NewStyles(ThemeFor(t))
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Risk renders a risk badge coloured by level.
func (s *Styles) Risk(r domain.RiskPercentage) string {
	label := r.String()
	if r.IsUnknown() || r.IsNull() {
		return s.Muted.Render(label)
	}
	switch r.Level() {
	case domain.RiskLevelHigh:
		return s.Error.Bold(true).Render(label)
	case domain.RiskLevelMedium:
		return s.Warning.Render(label)
	default:
		return s.Success.Render(label)
	}
}

// Health renders the backend health badge.
func (s *Styles) Health(h domain.HealthState) string {
	switch h {
	case domain.HealthHealthy:
		return s.Success.Render("● " + h.Label())
	case domain.HealthDegraded:
		return s.Warning.Render("● " + h.Label())
	default:
		return s.Error.Render("● " + h.Label())
	}
}

// Mistakes renders a mistakes status label.
func (s *Styles) Mistakes(m domain.MistakesStatus) string {
	switch m {
	case domain.MistakesFound:
		return s.Error.Render(m.Label())
	case domain.MistakesNone:
		return s.Success.Render(m.Label())
	default:
		return s.Muted.Render(m.Label())
	}
}
