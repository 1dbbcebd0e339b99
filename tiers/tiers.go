package tiers

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/bizmargin/engine"
)

type Colors struct {
	Primary string
}

// Model lists the advisory tiers in the order they are evaluated.
type Model struct {
	tiers table.Model
}

func New(colors Colors) Model {
	tiers := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Condition", Width: 22},
			{Title: "Tier", Width: 14},
			{Title: "Severity", Width: 10},
			{Title: "Headline", Width: 60},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color(colors.Primary))

	tiers.SetStyles(tableStyle)
	tiers.SetRows(Rows(engine.Tiers()))

	return Model{tiers: tiers}
}

// Rows converts tiers into table rows.
func Rows(ts []engine.Tier) []table.Row {
	rows := make([]table.Row, 0, len(ts))
	for i, t := range ts {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			t.Condition,
			t.Label,
			string(t.Severity),
			t.Headline,
		})
	}
	return rows
}

func (m *Model) SetFocus(focus bool) {
	if focus {
		m.tiers.Focus()
	} else {
		m.tiers.Blur()
	}
}

func (m *Model) SetSize(width, height int) {
	m.tiers.SetHeight(height)
	m.tiers.SetWidth(width)
}

// Selected returns the tier under the cursor.
func (m Model) Selected() engine.Tier {
	ts := engine.Tiers()
	i := m.tiers.Cursor()
	if i < 0 || i >= len(ts) {
		return ts[0]
	}
	return ts[i]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tiers, cmd = m.tiers.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.tiers.View()
}
