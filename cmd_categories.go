package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
)

// categoryView is the listing form of a category.
type categoryView struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Flag     string `json:"flag"`
	Question string `json:"question"`
}

func categoryViews() []categoryView {
	views := make([]categoryView, 0, len(engine.Categories()))
	for _, c := range engine.Categories() {
		kind := "expense"
		if c.IsIncome() {
			kind = "income"
		}
		views = append(views, categoryView{
			Key:      c.Key(),
			Name:     c.String(),
			Kind:     kind,
			Flag:     "--" + categoryFlag(c),
			Question: c.Prompt(),
		})
	}
	return views
}

func newCategoriesCmd() *cobra.Command {
	return newCategoriesCmdWith(loadConfig)
}

func newCategoriesCmdWith(loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the expense and income categories",
		Long:  `List the fixed expense and income categories with their keys and evaluate flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runCategories(cmd, cfg.Output)
		},
	}
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	return cmd
}

func runCategories(cmd *cobra.Command, configured string) error {
	outputFormat, err := validateOutputFormat(cmd, configured)
	if err != nil {
		return err
	}

	views := categoryViews()

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), views)
	case tableOutputFormat:
		return outputCategoriesTable(cmd.OutOrStdout(), views)
	default:
		return errors.New("unsupported output format")
	}
}

func outputCategoriesTable(w io.Writer, views []categoryView) error {
	t := createStyledTable("#", "KEY", "NAME", "KIND", "FLAG")

	for i, v := range views {
		t.Row(
			strconv.Itoa(i+1),
			v.Key,
			v.Name,
			v.Kind,
			v.Flag,
		)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}
