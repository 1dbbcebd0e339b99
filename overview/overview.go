package overview

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Rshep3087/bizmargin/engine"
)

const barWidth = 20

var printer = message.NewPrinter(language.English)

// FormatAmount renders a whole-unit amount with the currency symbol and
// grouped digits, e.g. "₹5,500" or "₹-500".
func FormatAmount(amount int64, currency string) string {
	return currencySymbol(currency) + printer.Sprintf("%d", amount)
}

func currencySymbol(code string) string {
	code = strings.ToUpper(code)
	c := money.GetCurrency(code)
	if c == nil || c.Grapheme == "" {
		return code + " "
	}
	return c.Grapheme
}

// FormatMargin renders a margin percentage with two decimals.
func FormatMargin(margin decimal.Decimal) string {
	return margin.StringFixed(2) + "%"
}

// Bar renders a proportional bar for a percentage share.
func Bar(share decimal.Decimal, width int) string {
	filled := int(share.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// BreakdownRows returns one row per expense category: name, amount, share and bar.
func BreakdownRows(res engine.Result, currency string) [][]string {
	rows := make([][]string, 0, len(res.Breakdown))
	for i, ca := range res.Breakdown {
		share := res.Breakdown.Share(i)
		rows = append(rows, []string{
			ca.Category.String(),
			FormatAmount(ca.Amount, currency),
			FormatMargin(share),
			Bar(share, barWidth),
		})
	}
	return rows
}

// Model defines the state for the result view.
type Model struct {
	Styles   Styles
	Viewport viewport.Model

	result        *engine.Result
	currency      string
	insights      []string
	insightStatus string
}

// Styles holds the styles of the result view.
type Styles struct {
	IncomeStyle  lipgloss.Style
	SpentStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	TitleStyle   lipgloss.Style
	SummaryStyle lipgloss.Style
	WarningStyle lipgloss.Style
	Severity     map[engine.Severity]lipgloss.Color
}

// DefaultStyles returns the built-in result view styles.
func DefaultStyles() Styles {
	return Styles{
		IncomeStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		SpentStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		MutedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7f7d78")),
		TitleStyle:   lipgloss.NewStyle().Bold(true),
		SummaryStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		WarningStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#e0a951")),
		Severity: map[engine.Severity]lipgloss.Color{
			engine.SeverityCritical: lipgloss.Color("#ff0000"),
			engine.SeverityWarning:  lipgloss.Color("#e0a951"),
			engine.SeverityInfo:     lipgloss.Color("#4ea1d3"),
			engine.SeveritySuccess:  lipgloss.Color("#22ba46"),
		},
	}
}

type Option func(*Model)

func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.Styles = s
	}
}

func WithCurrency(code string) Option {
	return func(m *Model) {
		m.currency = code
	}
}

func New(opts ...Option) Model {
	m := Model{
		Styles:   DefaultStyles(),
		Viewport: viewport.New(0, 20),
		currency: "INR",
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.UpdateViewport()

	return m
}

// SetResult replaces the displayed evaluation and clears previous insights.
func (m *Model) SetResult(res engine.Result) {
	m.result = &res
	m.insights = nil
	m.insightStatus = ""
	m.UpdateViewport()
}

// Result returns the displayed evaluation, if any.
func (m Model) Result() (engine.Result, bool) {
	if m.result == nil {
		return engine.Result{}, false
	}
	return *m.result, true
}

func (m *Model) SetCurrency(code string) {
	m.currency = code
	m.UpdateViewport()
}

func (m *Model) SetInsights(insights []string) {
	m.insights = insights
	m.insightStatus = ""
	m.UpdateViewport()
}

// SetInsightStatus shows a one-line status in place of the insights, such as
// a loading notice or a provider failure.
func (m *Model) SetInsightStatus(status string) {
	m.insightStatus = status
	m.UpdateViewport()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.Viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.Viewport.Width = width
	m.Viewport.Height = height
}

func (m *Model) UpdateViewport() {
	if m.result == nil {
		m.Viewport.SetContent("No evaluation yet.")
		return
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.summaryView(),
		m.breakdownView(),
	)

	sections := []string{m.headerView(), top, m.advisoryView()}
	if w := m.warningsView(); w != "" {
		sections = append(sections, w)
	}
	if i := m.insightsView(); i != "" {
		sections = append(sections, i)
	}

	m.Viewport.SetContent(lipgloss.JoinVertical(lipgloss.Top, sections...))
}

func (m Model) headerView() string {
	return m.Styles.TitleStyle.Render(
		fmt.Sprintf("Financial Summary (%s)", m.result.Scale.Describe()),
	)
}

func (m Model) summaryView() string {
	s := m.result.Summary

	profitStyle := m.Styles.IncomeStyle
	if s.Profit < 0 {
		profitStyle = m.Styles.SpentStyle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Income: %s\n", m.Styles.IncomeStyle.Render(FormatAmount(s.TotalIncome, m.currency)))
	fmt.Fprintf(&b, "Total Expenses: %s\n", m.Styles.SpentStyle.Render(FormatAmount(s.TotalExpenses, m.currency)))
	fmt.Fprintf(&b, "Net Profit: %s\n", profitStyle.Render(FormatAmount(s.Profit, m.currency)))
	fmt.Fprintf(&b, "Profit Margin: %s\n\n", profitStyle.Render(FormatMargin(s.ProfitMargin)))
	fmt.Fprintf(&b, "Highest Expense Area: %s (%s)",
		m.result.Dominant.Category,
		FormatAmount(m.result.Dominant.Amount, m.currency),
	)

	return m.Styles.SummaryStyle.Render(b.String())
}

func (m Model) breakdownView() string {
	var rows []table.Row
	for _, r := range BreakdownRows(*m.result, m.currency) {
		rows = append(rows, table.Row(r))
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 22},
			{Title: "Amount", Width: 16},
			{Title: "Share", Width: 8},
			{Title: "", Width: barWidth},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	return m.Styles.SummaryStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			m.Styles.TitleStyle.Render("Expense Breakdown"),
			t.View(),
		),
	)
}

func (m Model) advisoryView() string {
	tier := m.result.Tier
	color, ok := m.Styles.Severity[tier.Severity]
	if !ok {
		color = lipgloss.Color("#888888")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(
		fmt.Sprintf("%s: %s", tier.Label, tier.Headline),
	))
	for _, g := range tier.Guidance {
		b.WriteString("\n• " + g)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2).
		Render(b.String())
}

func (m Model) warningsView() string {
	if !m.result.HasWarnings() {
		return ""
	}

	lines := make([]string, 0, len(m.result.Warnings))
	for _, w := range m.result.Warnings {
		lines = append(lines, m.Styles.WarningStyle.Render("⚠ "+w.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) insightsView() string {
	if m.insightStatus != "" {
		return m.Styles.MutedStyle.Render(m.insightStatus)
	}
	if len(m.insights) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.Styles.TitleStyle.Render("AI Insights"))
	for _, in := range m.insights {
		b.WriteString("\n• " + in)
	}
	return m.Styles.SummaryStyle.Render(b.String())
}
