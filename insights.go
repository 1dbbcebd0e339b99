package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/bizmargin/engine"
	"github.com/Rshep3087/bizmargin/overview"
)

// InsightProvider defines the interface for AI-generated business suggestions.
type InsightProvider interface {
	// Suggest returns up to maxInsights short suggestions for the evaluation.
	Suggest(ctx context.Context, res engine.Result, currency string) ([]string, error)
}

// insightsMsg is sent when an insight request is completed.
type insightsMsg struct {
	insights   []string
	err        error
	evaluation int
}

// Insighter runs insight requests in the background. A nil provider disables it.
type Insighter struct {
	provider InsightProvider
	enabled  bool
}

// NewInsighter creates a new insighter with the given provider.
func NewInsighter(provider InsightProvider) *Insighter {
	return &Insighter{
		provider: provider,
		enabled:  provider != nil,
	}
}

// IsEnabled returns true if AI insights are available.
func (r *Insighter) IsEnabled() bool {
	return r != nil && r.enabled
}

// Suggest creates a tea.Cmd that asks the provider about res.
func (r *Insighter) Suggest(res engine.Result, currency string, evaluation int) tea.Cmd {
	if !r.IsEnabled() {
		log.Debug("Insighter.Suggest: not enabled")
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), aiInsightTimeout)
		defer cancel()

		insights, err := r.provider.Suggest(ctx, res, currency)
		if err != nil {
			log.Error("insight request failed", "error", err)
		} else {
			log.Debug("insight request succeeded", "count", len(insights))
		}

		return insightsMsg{insights: insights, err: err, evaluation: evaluation}
	}
}

// formatResultForAI describes an evaluation in plain text for the model.
func formatResultForAI(res engine.Result, currency string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Figures (%s):\n", res.Scale.Describe())
	fmt.Fprintf(&sb, "- Total income: %s\n", overview.FormatAmount(res.Summary.TotalIncome, currency))
	fmt.Fprintf(&sb, "- Total expenses: %s\n", overview.FormatAmount(res.Summary.TotalExpenses, currency))
	fmt.Fprintf(&sb, "- Net profit: %s\n", overview.FormatAmount(res.Summary.Profit, currency))
	fmt.Fprintf(&sb, "- Profit margin: %s\n", overview.FormatMargin(res.Summary.ProfitMargin))
	fmt.Fprintf(&sb, "- Advisory tier: %s (%s)\n", res.Tier.Label, res.Tier.Headline)

	sb.WriteString("Expense breakdown:\n")
	for i, ca := range res.Breakdown {
		fmt.Fprintf(&sb, "- %s: %s (%s)\n",
			ca.Category,
			overview.FormatAmount(ca.Amount, currency),
			overview.FormatMargin(res.Breakdown.Share(i)),
		)
	}

	sb.WriteString("Income sources:\n")
	for _, ca := range res.Income {
		fmt.Fprintf(&sb, "- %s: %s\n", ca.Category, overview.FormatAmount(ca.Amount, currency))
	}

	return sb.String()
}
