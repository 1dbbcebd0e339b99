package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/bizmargin/engine"
)

// Output formats understood by the CLI commands.
const (
	TableOutput = "table"
	JSONOutput  = "json"
)

// Modes select the period scale applied to the entered figures.
const (
	DirectMode  = "direct"
	MonthlyMode = "monthly"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "INR"

// Colors overrides the theme colors. Values are hex codes or ANSI numbers.
type Colors struct {
	Primary       string `toml:"primary" mapstructure:"primary"`
	Error         string `toml:"error" mapstructure:"error"`
	Success       string `toml:"success" mapstructure:"success"`
	Warning       string `toml:"warning" mapstructure:"warning"`
	Info          string `toml:"info" mapstructure:"info"`
	Muted         string `toml:"muted" mapstructure:"muted"`
	Income        string `toml:"income" mapstructure:"income"`
	Expense       string `toml:"expense" mapstructure:"expense"`
	Border        string `toml:"border" mapstructure:"border"`
	Background    string `toml:"background" mapstructure:"background"`
	Text          string `toml:"text" mapstructure:"text"`
	SecondaryText string `toml:"secondary_text" mapstructure:"secondary_text"`
}

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `toml:"debug" mapstructure:"debug"`
	// Currency is the ISO 4217 code used when displaying amounts
	Currency string `toml:"currency" mapstructure:"currency"`
	// Mode is either "direct" or "monthly"
	Mode string `toml:"mode" mapstructure:"mode"`
	// Output is the default output format for CLI commands
	Output string `toml:"output" mapstructure:"output"`
	// LunchMoneyToken is the Lunch Money API token used by the import command
	LunchMoneyToken string `toml:"lunchmoney_token" mapstructure:"lunchmoney_token"`
	// AnthropicAPIKey enables AI insights when set
	AnthropicAPIKey string `toml:"anthropic_api_key" mapstructure:"anthropic_api_key"`
	// ServerAddr is the listen address of the serve command
	ServerAddr string `toml:"server_addr" mapstructure:"server_addr"`
	// Colors customises the theme
	Colors Colors `toml:"colors" mapstructure:"colors"`
}

// Validate checks the enumerated settings and fills defaults for empty ones.
func (c *Config) Validate() error {
	var problems []string

	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	c.Currency = strings.ToUpper(c.Currency)

	// aliases such as "Monthly", "annual" or "12" are stored by their mode name
	if scale, err := engine.ParsePeriodScale(c.Mode); err == nil {
		c.Mode = scale.String()
	} else {
		problems = append(problems, fmt.Sprintf("invalid mode %q (must be %s or %s)", c.Mode, DirectMode, MonthlyMode))
	}

	if c.Output == "" {
		c.Output = TableOutput
	}
	if !slices.Contains([]string{TableOutput, JSONOutput}, c.Output) {
		problems = append(problems, fmt.Sprintf("invalid output format %q (must be %s or %s)", c.Output, TableOutput, JSONOutput))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Model represents the config view model.
type Model struct {
	configTable table.Model
}

// New creates a new config view model.
func New(primary string) Model {
	configTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 22},
			{Title: "Value", Width: 30},
			{Title: "Description", Width: 50},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color(primary))

	configTable.SetStyles(tableStyle)

	return Model{configTable: configTable}
}

// SetFocus sets the focus state of the config table.
func (m *Model) SetFocus(focus bool) {
	if focus {
		m.configTable.Focus()
	} else {
		m.configTable.Blur()
	}
}

// SetSize sets the size of the config table.
func (m *Model) SetSize(width, height int) {
	m.configTable.SetHeight(height)
	m.configTable.SetWidth(width)
}

func maskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}

	return value[:4] + strings.Repeat("*", len(value)-4)
}

// Redacted returns a copy of c with secrets masked.
func (c Config) Redacted() Config {
	if c.LunchMoneyToken != "" {
		c.LunchMoneyToken = maskSensitiveValue(c.LunchMoneyToken)
	}
	if c.AnthropicAPIKey != "" {
		c.AnthropicAPIKey = maskSensitiveValue(c.AnthropicAPIKey)
	}
	return c
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// SetConfig sets the configuration data for the view.
func (m *Model) SetConfig(config Config) {
	rows := []table.Row{
		{
			"Debug",
			strconv.FormatBool(config.Debug),
			"Enable debug logging",
		},
		{
			"Currency",
			orDefault(config.Currency, DefaultCurrency),
			"Currency used when displaying amounts",
		},
		{
			"Mode",
			orDefault(config.Mode, DirectMode),
			"direct uses figures as entered, monthly projects them to a year",
		},
		{
			"Output",
			orDefault(config.Output, TableOutput),
			"Default output format of CLI commands",
		},
		{
			"Lunch Money Token",
			maskSensitiveValue(config.LunchMoneyToken),
			"Lunch Money API token used by import",
		},
		{
			"Anthropic API Key",
			maskSensitiveValue(config.AnthropicAPIKey),
			"Enables AI insights on the result view",
		},
		{
			"Server Address",
			orDefault(config.ServerAddr, "(not set)"),
			"Listen address of the serve command",
		},
	}

	m.configTable.SetRows(rows)
}

// Init initializes the config view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles updates to the config view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.configTable, cmd = m.configTable.Update(msg)
	return m, cmd
}

// View renders the config view.
func (m Model) View() string {
	return m.configTable.View()
}
