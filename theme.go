package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
	"github.com/Rshep3087/bizmargin/overview"
)

// Theme contains all the colors used throughout the application.
type Theme struct {
	Primary       lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Info          lipgloss.Color
	Muted         lipgloss.Color
	Income        lipgloss.Color
	Expense       lipgloss.Color
	Border        lipgloss.Color
	Background    lipgloss.Color
	Text          lipgloss.Color
	SecondaryText lipgloss.Color
}

// newTheme creates a Theme from config.Colors.
func newTheme(colors config.Colors) Theme {
	return Theme{
		Primary:       parseColor(colors.Primary, "#ffd644"),
		Error:         parseColor(colors.Error, "#ff0000"),
		Success:       parseColor(colors.Success, "#22ba46"),
		Warning:       parseColor(colors.Warning, "#e0a951"),
		Info:          parseColor(colors.Info, "#4ea1d3"),
		Muted:         parseColor(colors.Muted, "#7f7d78"),
		Income:        parseColor(colors.Income, "#00ff00"),
		Expense:       parseColor(colors.Expense, "#ff0000"),
		Border:        parseColor(colors.Border, "#7D56F4"),
		Background:    parseColor(colors.Background, "#7D56F4"),
		Text:          parseColor(colors.Text, "#FAFAFA"),
		SecondaryText: parseColor(colors.SecondaryText, "#888888"),
	}
}

// parseColor parses a color string (hex or ANSI) and returns a lipgloss.Color
// Falls back to defaultColor if input is empty.
func parseColor(colorStr, defaultColor string) lipgloss.Color {
	if colorStr == "" {
		return lipgloss.Color(defaultColor)
	}
	return lipgloss.Color(colorStr)
}

// severityColor maps an advisory severity onto the theme.
func (t Theme) severityColor(s engine.Severity) lipgloss.Color {
	switch s {
	case engine.SeverityCritical:
		return t.Error
	case engine.SeverityWarning:
		return t.Warning
	case engine.SeverityInfo:
		return t.Info
	case engine.SeveritySuccess:
		return t.Success
	}
	return t.Muted
}

// overviewStyles builds the result view styles from the theme.
func (t Theme) overviewStyles() overview.Styles {
	s := overview.DefaultStyles()
	s.IncomeStyle = lipgloss.NewStyle().Foreground(t.Income)
	s.SpentStyle = lipgloss.NewStyle().Foreground(t.Expense)
	s.MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	s.TitleStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.SummaryStyle = s.SummaryStyle.BorderForeground(t.Border)
	s.WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)

	s.Severity = make(map[engine.Severity]lipgloss.Color)
	for _, tier := range engine.Tiers() {
		s.Severity[tier.Severity] = t.severityColor(tier.Severity)
	}
	return s
}
