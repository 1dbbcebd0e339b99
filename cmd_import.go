package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
)

// importCommand encapsulates the dependencies for the import command.
type importCommand struct {
	newReader  lunchMoneyFactory
	loadConfig func() (config.Config, error)
	now        func() time.Time
}

func newImportCmd(factory lunchMoneyFactory) *cobra.Command {
	return newImportCmdWith(importCommand{
		newReader:  factory,
		loadConfig: loadConfig,
		now:        time.Now,
	})
}

func newImportCmdWith(ic importCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Evaluate a period of Lunch Money transactions",
		Long: `Import fetches the transactions of a month or year from Lunch Money, sums them into the
expense and income categories and evaluates the result.

Income categories count as core income and every other category as other expenses unless
mapped with --map. Categories excluded from totals are skipped.`,
		Example: `  bizmargin import --period month --map "Advertising=marketing" --map "Payroll=salaries"`,
		RunE:    ic.run,
	}

	cmd.Flags().String("token", "", "the API token for Lunch Money (default from LUNCHMONEY_API_TOKEN)")
	cmd.Flags().String("period", monthlyPeriodType, "period to import: month or year")
	cmd.Flags().String("date", "", "any date inside the period, YYYY-MM-DD (default today)")
	cmd.Flags().StringArray("map", nil, `assign a Lunch Money category to a key, e.g. "Payroll=salaries"`)
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	return cmd
}

// importResult is the JSON document printed by import.
type importResult struct {
	evaluation

	Source importStats `json:"source"`
}

func (ic importCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := ic.loadConfig()
	if err != nil {
		return err
	}

	outputFormat, err := validateOutputFormat(cmd, cfg.Output)
	if err != nil {
		return err
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = cfg.LunchMoneyToken
	}
	if token == "" {
		return errors.New("API token is required (set via --token flag, " +
			"LUNCHMONEY_API_TOKEN environment variable, or config file)")
	}

	periodType, _ := cmd.Flags().GetString("period")
	date, _ := cmd.Flags().GetString("date")
	period, err := parsePeriod(date, periodType, ic.now())
	if err != nil {
		return err
	}

	scale, err := engine.ParsePeriodScale(cfg.Mode)
	if err != nil {
		return err
	}
	if scale == engine.Annualized && period.kind != monthlyPeriodType {
		return fmt.Errorf("monthly mode projects a single month to a year; use --period %s", monthlyPeriodType)
	}

	specs, _ := cmd.Flags().GetStringArray("map")
	mapping, err := parseMappings(specs)
	if err != nil {
		return err
	}

	reader, err := ic.newReader(token)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
	defer cancel()

	categories, transactions, err := fetchPeriod(ctx, reader, period)
	if err != nil {
		return err
	}

	raw, stats := summarizeTransactions(transactions, categories, mapping)
	stats.Period = period.String()

	log.Debug("imported transactions", "period", stats.Period, "excluded", stats.Excluded, "unparsable", stats.Unparsable)

	out := importResult{
		evaluation: evaluation{
			Result:   engine.Evaluate(raw, scale),
			Currency: cfg.Currency,
		},
		Source: stats,
	}

	if outputFormat == tableOutputFormat {
		fmt.Fprintf(cmd.OutOrStdout(), "Lunch Money %s: %d transactions (%d excluded from totals)\n\n",
			stats.Period, stats.Transactions, stats.Excluded)
		return printEvaluation(cmd, outputFormat, out.evaluation)
	}

	return outputJSON(cmd.OutOrStdout(), out)
}
