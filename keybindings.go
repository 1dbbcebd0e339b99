package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type keyMap struct {
	edit       key.Binding
	switchMode key.Binding
	tiers      key.Binding
	config     key.Binding
	insights   key.Binding
	escape     key.Binding
	fullHelp   key.Binding
	quit       key.Binding
	forceQuit  key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.edit,
		km.switchMode,
		km.tiers,
		km.insights,
		km.quit,
		km.fullHelp,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.edit,
			km.switchMode,
			km.insights,
		},
		{
			km.tiers,
			km.config,
			km.escape,
			km.quit,
			km.fullHelp,
		},
	}
}

func initializeKeyMap() keyMap {
	return keyMap{
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit inputs"),
		),
		switchMode: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "switch mode"),
		),
		tiers: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tiers"),
		),
		config: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "configuration"),
		),
		insights: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ai insights"),
			key.WithDisabled(),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		fullHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// handleKeyPress processes global key bindings. It reports whether the key
// was consumed; unconsumed keys are passed on to the active view.
func handleKeyPress(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	log.Debug("key pressed", "key", msg.String())

	if key.Matches(msg, m.keys.forceQuit) {
		return tea.Quit, true
	}

	// the form owns the keyboard while it is open
	if m.sessionState == formState {
		if key.Matches(msg, m.keys.escape) && m.hasResult() {
			m.sessionState = resultState
			return nil, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.escape):
		return handleEscape(m), true

	case key.Matches(msg, m.keys.fullHelp):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}

	return handleSessionStateKeys(msg, m)
}

func handleSessionStateKeys(msg tea.KeyMsg, m *model) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.edit):
		return m.openForm(), true

	case key.Matches(msg, m.keys.switchMode):
		if !m.hasResult() {
			return nil, true
		}
		m.switchMode()
		m.sessionState = resultState
		return nil, true

	case key.Matches(msg, m.keys.tiers):
		if m.sessionState != tiersState {
			m.setState(tiersState)
		}
		return nil, true

	case key.Matches(msg, m.keys.config):
		if m.sessionState != configState {
			m.setState(configState)
		}
		return nil, true

	case key.Matches(msg, m.keys.insights):
		if m.sessionState != resultState || m.insightsPending {
			return nil, true
		}
		return m.requestInsights(), true
	}

	return nil, false
}

// handleEscape returns to the result view, or to the form when nothing has
// been evaluated yet.
func handleEscape(m *model) tea.Cmd {
	if m.sessionState == resultState {
		return nil
	}

	if !m.hasResult() {
		return m.openForm()
	}

	m.setState(resultState)
	return nil
}
