package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/bizmargin/config"
)

func newTestImportCmd(cfg config.Config, r *fakeLunchMoney, tokens *[]string) importCommand {
	return importCommand{
		newReader: func(token string) (lunchMoneyReader, error) {
			if tokens != nil {
				*tokens = append(*tokens, token)
			}
			return r, nil
		},
		loadConfig: staticConfig(cfg),
		now:        func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestImportCommandJSON(t *testing.T) {
	r := &fakeLunchMoney{categories: testCategories(), transactions: testTransactions()}
	var tokens []string
	cmd := newImportCmdWith(newTestImportCmd(config.Config{LunchMoneyToken: "from-config"}, r, &tokens))

	stdout, _, err := executeCommand(cmd,
		"--map", "Advertising=marketing",
		"--map", "Payroll=salaries",
		"-o", "json",
	)
	be.NilErr(t, err)

	var got struct {
		evaluationJSON
		Source importStats `json:"source"`
	}
	be.NilErr(t, json.Unmarshal([]byte(stdout), &got))

	be.Equal(t, 1, len(tokens))
	be.Equal(t, "from-config", tokens[0])
	be.Equal(t, "2024-03-01 - 2024-03-31", got.Source.Period)
	be.Equal(t, 8, got.Source.Transactions)
	be.Equal(t, 1, got.Source.Excluded)
	be.Equal(t, int64(4025), got.Summary.TotalExpenses)
	be.Equal(t, int64(6001), got.Summary.TotalIncome)
	be.Equal(t, "2024-03-01", *r.filters.StartDate)
}

func TestImportCommandTable(t *testing.T) {
	r := &fakeLunchMoney{categories: testCategories(), transactions: testTransactions()}
	var tokens []string
	cmd := newImportCmdWith(newTestImportCmd(config.Config{LunchMoneyToken: "from-config"}, r, &tokens))

	stdout, _, err := executeCommand(cmd, "--token", "from-flag", "--period", "year", "--date", "2023-06-01")
	be.NilErr(t, err)

	be.Equal(t, "from-flag", tokens[0])
	be.True(t, strings.Contains(stdout, "Lunch Money 2023-01-01 - 2023-12-31: 8 transactions (1 excluded from totals)"))
	be.True(t, strings.Contains(stdout, "Total Expenses"))
	be.Equal(t, "2023-12-31", *r.filters.EndDate)
}

func TestImportCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		reader  *fakeLunchMoney
		args    []string
		wantErr string
	}{
		{
			name:    "missing token",
			cfg:     config.Config{},
			args:    nil,
			wantErr: "API token is required",
		},
		{
			name:    "bad period",
			cfg:     config.Config{LunchMoneyToken: "t"},
			args:    []string{"--period", "week"},
			wantErr: "invalid period type",
		},
		{
			name:    "bad date",
			cfg:     config.Config{LunchMoneyToken: "t"},
			args:    []string{"--date", "15/03/2024"},
			wantErr: "invalid date",
		},
		{
			name:    "monthly mode needs a month",
			cfg:     config.Config{LunchMoneyToken: "t", Mode: config.MonthlyMode},
			args:    []string{"--period", "year"},
			wantErr: "use --period month",
		},
		{
			name:    "bad mapping",
			cfg:     config.Config{LunchMoneyToken: "t"},
			args:    []string{"--map", "Advertising=ads"},
			wantErr: "invalid mapping",
		},
		{
			name:    "api failure",
			cfg:     config.Config{LunchMoneyToken: "t"},
			reader:  &fakeLunchMoney{transactionsErr: errors.New("unauthorized")},
			wantErr: "failed to fetch transactions: unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.reader
			if r == nil {
				r = &fakeLunchMoney{}
			}

			cmd := newImportCmdWith(newTestImportCmd(tt.cfg, r, nil))
			_, _, err := executeCommand(cmd, tt.args...)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), tt.wantErr))
		})
	}
}

func TestImportCommandReaderError(t *testing.T) {
	ic := newTestImportCmd(config.Config{LunchMoneyToken: "t"}, nil, nil)
	ic.newReader = func(string) (lunchMoneyReader, error) {
		return nil, errors.New("failed to create Lunch Money client")
	}

	_, _, err := executeCommand(newImportCmdWith(ic))
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "failed to create Lunch Money client"))
}
