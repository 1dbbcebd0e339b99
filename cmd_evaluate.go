package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
	"github.com/Rshep3087/bizmargin/overview"
)

// evaluation is the JSON document printed by evaluate and import.
type evaluation struct {
	engine.Result

	Currency string   `json:"currency"`
	Insights []string `json:"insights,omitempty"`
}

// evaluateCommand encapsulates the dependencies for the evaluate command.
type evaluateCommand struct {
	loadConfig  func() (config.Config, error)
	newProvider func(apiKey string) InsightProvider
}

func newAnthropicInsights(apiKey string) InsightProvider {
	return NewAnthropicProvider(apiKey, &http.Client{
		Transport: newLoggingTransport(http.DefaultTransport, log.Default()),
	})
}

// categoryFlag returns the flag name used for a category, e.g. "core-income".
func categoryFlag(c engine.Category) string {
	return strings.ReplaceAll(c.Key(), "_", "-")
}

func newEvaluateCmd() *cobra.Command {
	return newEvaluateCmdWith(evaluateCommand{
		loadConfig:  loadConfig,
		newProvider: newAnthropicInsights,
	})
}

func newEvaluateCmdWith(ec evaluateCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate expenses and income without the interactive form",
		Long: `Evaluate computes totals, profit, profit margin and the advisory tier from the
given amounts. Amounts are whole numbers; anything else is counted as zero and reported.`,
		Example: "  bizmargin evaluate --marketing 3000 --salaries 2000 --admin 500 --core-income 6000",
		RunE:    ec.run,
	}

	for _, c := range engine.Categories() {
		cmd.Flags().String(categoryFlag(c), "", c.String()+" amount")
	}
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	cmd.Flags().Bool("insights", false, "ask the AI provider for suggestions (requires an Anthropic API key)")

	return cmd
}

func (ec evaluateCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := ec.loadConfig()
	if err != nil {
		return err
	}

	outputFormat, err := validateOutputFormat(cmd, cfg.Output)
	if err != nil {
		return err
	}

	scale, err := engine.ParsePeriodScale(cfg.Mode)
	if err != nil {
		return err
	}

	raw := make(engine.RawInputs)
	for _, c := range engine.Categories() {
		v, _ := cmd.Flags().GetString(categoryFlag(c))
		raw[c] = v
	}

	out := evaluation{
		Result:   engine.Evaluate(raw, scale),
		Currency: cfg.Currency,
	}

	if withInsights, _ := cmd.Flags().GetBool("insights"); withInsights {
		out.Insights, err = ec.insights(cmd.Context(), cfg, out.Result)
		if err != nil {
			return err
		}
	}

	return printEvaluation(cmd, outputFormat, out)
}

func (ec evaluateCommand) insights(ctx context.Context, cfg config.Config, res engine.Result) ([]string, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, errors.New("AI insights require an Anthropic API key " +
			"(set ANTHROPIC_API_KEY or anthropic_api_key in the config file)")
	}

	ctx, cancel := context.WithTimeout(ctx, aiInsightTimeout)
	defer cancel()

	insights, err := ec.newProvider(cfg.AnthropicAPIKey).Suggest(ctx, res, cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %w", err)
	}
	return insights, nil
}

// printEvaluation writes an evaluation in the requested format. In table
// format warnings go to stderr.
func printEvaluation(cmd *cobra.Command, outputFormat string, out evaluation) error {
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), out)
	case tableOutputFormat:
		for _, w := range out.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
		}
		return outputEvaluationTable(cmd.OutOrStdout(), out)
	default:
		return errors.New("unsupported output format")
	}
}

func outputEvaluationTable(w io.Writer, out evaluation) error {
	s := out.Summary

	summary := createStyledTable("FIGURE", "VALUE")
	summary.Row("Total Income", overview.FormatAmount(s.TotalIncome, out.Currency))
	summary.Row("Total Expenses", overview.FormatAmount(s.TotalExpenses, out.Currency))
	summary.Row("Net Profit", overview.FormatAmount(s.Profit, out.Currency))
	summary.Row("Profit Margin", overview.FormatMargin(s.ProfitMargin))
	summary.Row("Highest Expense Area", fmt.Sprintf("%s (%s)",
		out.Dominant.Category, overview.FormatAmount(out.Dominant.Amount, out.Currency)))
	summary.Row("Mode", fmt.Sprintf("%s (%s)", out.Scale, out.Scale.Describe()))

	breakdown := createStyledTable("CATEGORY", "AMOUNT", "SHARE", "")
	for _, row := range overview.BreakdownRows(out.Result, out.Currency) {
		breakdown.Row(row...)
	}

	var advisory strings.Builder
	advisory.WriteString(lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("%s: %s", out.Tier.Label, out.Tier.Headline),
	))
	for _, g := range out.Tier.Guidance {
		advisory.WriteString("\n  • " + g)
	}

	sections := []string{summary.String(), breakdown.String(), advisory.String()}
	if len(out.Insights) > 0 {
		sections = append(sections, "AI Insights:\n  • "+strings.Join(out.Insights, "\n  • "))
	}

	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}
