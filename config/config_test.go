package config

import (
	"strings"
	"testing"

	"github.com/carlmjohnson/be"
)

func TestMaskSensitiveValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "mask token",
			value:    "abc123def456",
			expected: "abc1********",
		},
		{
			name:     "mask short token",
			value:    "abc",
			expected: "***",
		},
		{
			name:     "empty token",
			value:    "",
			expected: "(not set)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskSensitiveValue(tt.value)
			be.Equal(t, tt.expected, result)
		})
	}
}

func TestSetConfig(t *testing.T) {
	m := New("#ffd644")
	testConfig := Config{
		Debug:           true,
		Currency:        "USD",
		Mode:            MonthlyMode,
		LunchMoneyToken: "test-token-123456",
		AnthropicAPIKey: "sk-ant-secret",
	}

	m.SetConfig(testConfig)

	rows := m.configTable.Rows()
	be.Equal(t, 7, len(rows))
	be.Equal(t, "true", rows[0][1])
	be.Equal(t, "USD", rows[1][1])
	be.Equal(t, "monthly", rows[2][1])
	be.Equal(t, "table", rows[3][1])
	be.Equal(t, "test*************", rows[4][1])
	be.Equal(t, "sk-a*********", rows[5][1])
	be.Equal(t, "(not set)", rows[6][1])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantErr  string
		currency string
		mode     string
		output   string
	}{
		{
			name:     "defaults",
			config:   Config{},
			currency: "INR",
			mode:     DirectMode,
			output:   TableOutput,
		},
		{
			name:     "lowercase currency",
			config:   Config{Currency: "usd", Mode: MonthlyMode, Output: JSONOutput},
			currency: "USD",
			mode:     MonthlyMode,
			output:   JSONOutput,
		},
		{
			name:     "capitalised mode",
			config:   Config{Mode: "Monthly"},
			currency: "INR",
			mode:     MonthlyMode,
			output:   TableOutput,
		},
		{
			name:     "mode aliases",
			config:   Config{Mode: " annual "},
			currency: "INR",
			mode:     MonthlyMode,
			output:   TableOutput,
		},
		{
			name:     "numeric mode",
			config:   Config{Mode: "1"},
			currency: "INR",
			mode:     DirectMode,
			output:   TableOutput,
		},
		{
			name:    "bad mode",
			config:  Config{Mode: "weekly"},
			wantErr: `invalid mode "weekly"`,
		},
		{
			name:    "bad output",
			config:  Config{Output: "yaml"},
			wantErr: `invalid output format "yaml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			err := cfg.Validate()
			if tt.wantErr != "" {
				be.True(t, err != nil)
				be.True(t, strings.Contains(err.Error(), tt.wantErr))
				return
			}

			be.NilErr(t, err)
			be.Equal(t, tt.currency, cfg.Currency)
			be.Equal(t, tt.mode, cfg.Mode)
			be.Equal(t, tt.output, cfg.Output)
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Config{LunchMoneyToken: "abcdefgh", Currency: "USD"}

	redacted := cfg.Redacted()
	be.Equal(t, "abcd****", redacted.LunchMoneyToken)
	be.Equal(t, "", redacted.AnthropicAPIKey)
	be.Equal(t, "USD", redacted.Currency)
	be.Equal(t, "abcdefgh", cfg.LunchMoneyToken)
}
