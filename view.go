package main

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch m.sessionState {
	case formState:
		b.WriteString(m.form.View())
		return m.styles.docStyle.Render(b.String())
	case resultState:
		b.WriteString(m.overview.View())
	case tiersState:
		b.WriteString(m.tiers.View())
		if t := m.tiers.Selected(); len(t.Guidance) > 0 {
			b.WriteString("\n")
			b.WriteString(m.styles.statusStyle.Render(strings.Join(t.Guidance, " ")))
		}
	case configState:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.docStyle.Render(b.String())
}

func (m model) renderTitle() string {
	return m.styles.titleStyle.Render(
		fmt.Sprintf("bizmargin | %s | %s | %s",
			m.sessionState.String(),
			m.values.mode,
			m.cfg.Currency,
		),
	)
}
