package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := handleKeyPress(msg, &m); handled {
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case insightsMsg:
		return m.handleInsights(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	var cmd tea.Cmd
	switch m.sessionState {
	case formState:
		return m.updateForm(msg)

	case resultState:
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd

	case tiersState:
		m.tiers, cmd = m.tiers.Update(msg)
		return m, cmd

	case configState:
		m.configView, cmd = m.configView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.evaluate()
		return m, nil

	case huh.StateAborted:
		log.Debug("input form aborted")
		return m, tea.Quit
	}

	return m, cmd
}

func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentWidth := msg.Width - 2*standardMargin
	contentHeight := max(msg.Height-headerHeight, 1)

	m.overview.SetSize(contentWidth, contentHeight)
	m.tiers.SetSize(contentWidth, contentHeight)
	m.configView.SetSize(contentWidth, contentHeight)
	m.help.Width = contentWidth
	m.form = m.form.WithWidth(contentWidth)

	return m, nil
}

func (m model) handleInsights(msg insightsMsg) (tea.Model, tea.Cmd) {
	if msg.evaluation != m.evaluation {
		log.Debug("dropping insights for an older evaluation", "evaluation", msg.evaluation)
		return m, nil
	}

	m.insightsPending = false
	if msg.err != nil {
		m.overview.SetInsightStatus(fmt.Sprintf("AI insights unavailable: %s", msg.err))
		return m, nil
	}

	m.overview.SetInsights(msg.insights)
	return m, nil
}

func (m model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.insightsPending {
		return m, nil
	}

	var cmd tea.Cmd
	m.insightSpinner, cmd = m.insightSpinner.Update(msg)
	m.setInsightStatus()
	return m, cmd
}
