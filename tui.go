package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
	"github.com/Rshep3087/bizmargin/overview"
	"github.com/Rshep3087/bizmargin/tiers"
)

type model struct {
	keys   keyMap
	help   help.Model
	styles styles
	theme  Theme

	// sessionState is the current state of the session
	sessionState sessionState
	// previousSessionState is where esc returns to from the form
	previousSessionState sessionState

	form   *huh.Form
	values *formValues
	// evaluation counts evaluations so late insight responses can be dropped
	evaluation int

	overview   overview.Model
	tiers      tiers.Model
	configView config.Model

	cfg       config.Config
	insighter *Insighter

	// insightSpinner animates while an insight request is pending
	insightSpinner  spinner.Model
	insightsPending bool

	width  int
	height int
}

func newModel(cfg config.Config, insighter *Insighter) model {
	theme := newTheme(cfg.Colors)

	keys := initializeKeyMap()
	keys.insights.SetEnabled(insighter.IsEnabled())

	configView := config.New(string(theme.Primary))
	configView.SetConfig(cfg)

	m := model{
		keys:   keys,
		help:   createHelpModel(theme),
		styles: createStyles(theme),
		theme:  theme,
		values: newFormValues(cfg.Mode),
		overview: overview.New(
			overview.WithStyles(theme.overviewStyles()),
			overview.WithCurrency(cfg.Currency),
		),
		tiers:      tiers.New(tiers.Colors{Primary: string(theme.Primary)}),
		configView: configView,
		cfg:        cfg,
		insighter:  insighter,
	}

	m.insightSpinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)

	m.form = newInputForm(m.values)
	m.sessionState = formState

	return m
}

func (m model) Init() tea.Cmd {
	return m.form.Init()
}

func (m model) hasResult() bool {
	_, ok := m.overview.Result()
	return ok
}

// openForm shows the input form pre-filled with the previous entries.
func (m *model) openForm() tea.Cmd {
	m.previousSessionState = m.sessionState
	m.form = newInputForm(m.values)
	m.sessionState = formState
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width - 2*standardMargin)
	}
	return m.form.Init()
}

// evaluate runs the engine over the current form values and shows the result.
func (m *model) evaluate() {
	res := engine.Evaluate(m.values.inputs(), m.values.scale())
	m.evaluation++
	m.insightsPending = false

	log.Debug("evaluated inputs",
		"scale", res.Scale,
		"profit", res.Summary.Profit,
		"tier", res.Tier.ID,
		"warnings", len(res.Warnings),
	)

	m.overview.SetResult(res)
	m.setState(resultState)
}

// switchMode flips between direct and monthly and re-evaluates the same inputs.
func (m *model) switchMode() {
	if m.values.mode == config.MonthlyMode {
		m.values.mode = config.DirectMode
	} else {
		m.values.mode = config.MonthlyMode
	}
	m.evaluate()
}

func (m *model) setState(s sessionState) {
	m.previousSessionState = m.sessionState
	m.sessionState = s
	m.tiers.SetFocus(s == tiersState)
	m.configView.SetFocus(s == configState)
}

func (m *model) requestInsights() tea.Cmd {
	res, ok := m.overview.Result()
	if !ok {
		return nil
	}

	cmd := m.insighter.Suggest(res, m.cfg.Currency, m.evaluation)
	if cmd == nil {
		return nil
	}

	m.insightsPending = true
	m.setInsightStatus()
	return tea.Batch(m.insightSpinner.Tick, cmd)
}

func (m *model) setInsightStatus() {
	m.overview.SetInsightStatus(m.insightSpinner.View() + " Generating insights...")
}

// rootAction starts the interactive evaluator.
func rootAction(ctx context.Context, cfg config.Config) error {
	if cfg.Debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()

		log.SetOutput(f)
		defer log.SetOutput(os.Stderr)
	}

	var provider InsightProvider
	if cfg.AnthropicAPIKey != "" {
		log.Debug("AI insights enabled")
		provider = NewAnthropicProvider(cfg.AnthropicAPIKey, &http.Client{
			Transport: newLoggingTransport(http.DefaultTransport, log.Default()),
		})
	}

	p := tea.NewProgram(newModel(cfg, NewInsighter(provider)), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}
