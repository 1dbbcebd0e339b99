package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
)

func newTiersCmd() *cobra.Command {
	return newTiersCmdWith(loadConfig)
}

func newTiersCmdWith(loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "List the advisory tiers",
		Long:  `List the advisory tiers in the order they are evaluated, with the guidance each one gives.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runTiers(cmd, cfg.Output)
		},
	}
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	return cmd
}

func runTiers(cmd *cobra.Command, configured string) error {
	outputFormat, err := validateOutputFormat(cmd, configured)
	if err != nil {
		return err
	}

	tiers := engine.Tiers()

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), tiers)
	case tableOutputFormat:
		return outputTiersTable(cmd.OutOrStdout(), tiers)
	default:
		return errors.New("unsupported output format")
	}
}

func outputTiersTable(w io.Writer, tiers []engine.Tier) error {
	t := createStyledTable("#", "CONDITION", "TIER", "SEVERITY", "GUIDANCE")

	for i, tier := range tiers {
		t.Row(
			strconv.Itoa(i+1),
			tier.Condition,
			tier.Label,
			string(tier.Severity),
			strings.Join(tier.Guidance, "\n"),
		)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}
