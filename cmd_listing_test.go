package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
)

func TestTiersCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		stdout, _, err := executeCommand(newTiersCmdWith(staticConfig(config.Config{})), "-o", "json")
		be.NilErr(t, err)

		var got []struct {
			ID       string   `json:"id"`
			Label    string   `json:"label"`
			Guidance []string `json:"guidance"`
		}
		be.NilErr(t, json.Unmarshal([]byte(stdout), &got))
		be.Equal(t, len(engine.Tiers()), len(got))
		be.Equal(t, string(engine.TierLoss), got[0].ID)
		be.Nonzero(t, len(got[0].Guidance))
	})

	t.Run("table", func(t *testing.T) {
		stdout, _, err := executeCommand(newTiersCmdWith(staticConfig(config.Config{})))
		be.NilErr(t, err)
		be.True(t, strings.Contains(stdout, "CONDITION"))
		be.True(t, strings.Contains(stdout, "Low-Moderate"))
		be.True(t, strings.Contains(stdout, "Excellent"))
	})

	t.Run("invalid output", func(t *testing.T) {
		_, _, err := executeCommand(newTiersCmdWith(staticConfig(config.Config{})), "-o", "csv")
		be.True(t, err != nil)
	})
}

func TestCategoriesCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		stdout, _, err := executeCommand(newCategoriesCmdWith(staticConfig(config.Config{})), "--output", "json")
		be.NilErr(t, err)

		var got []categoryView
		be.NilErr(t, json.Unmarshal([]byte(stdout), &got))
		be.Equal(t, 8, len(got))
		be.Equal(t, "marketing", got[0].Key)
		be.Equal(t, "expense", got[0].Kind)
		be.Equal(t, "--core-income", got[6].Flag)
		be.Equal(t, "income", got[6].Kind)
		be.Equal(t, engine.OtherIncome.Prompt(), got[7].Question)
	})

	t.Run("table", func(t *testing.T) {
		stdout, _, err := executeCommand(newCategoriesCmdWith(staticConfig(config.Config{})))
		be.NilErr(t, err)
		be.True(t, strings.Contains(stdout, "Staff Salaries"))
		be.True(t, strings.Contains(stdout, "--other-income"))
	})
}

func TestListingCommandsConfiguredOutput(t *testing.T) {
	jsonConfig := staticConfig(config.Config{Output: config.JSONOutput})

	tests := []struct {
		name string
		cmd  func() *cobra.Command
	}{
		{"tiers", func() *cobra.Command { return newTiersCmdWith(jsonConfig) }},
		{"categories", func() *cobra.Command { return newCategoriesCmdWith(jsonConfig) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(tt.cmd())
			be.NilErr(t, err)
			be.True(t, json.Valid([]byte(stdout)))

			// the flag still wins over the configured format
			stdout, _, err = executeCommand(tt.cmd(), "-o", "table")
			be.NilErr(t, err)
			be.False(t, json.Valid([]byte(stdout)))
		})
	}
}
