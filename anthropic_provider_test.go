package main

import (
	"strings"
	"testing"

	"github.com/carlmjohnson/be"

	"github.com/Rshep3087/bizmargin/engine"
)

func TestParseInsights(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected []string
		wantErr  bool
	}{
		{
			name:     "plain array",
			response: `["Cut ad spend", "Raise prices"]`,
			expected: []string{"Cut ad spend", "Raise prices"},
		},
		{
			name:     "array wrapped in prose",
			response: "Here you go:\n[\"Renegotiate rent\"]\nGood luck!",
			expected: []string{"Renegotiate rent"},
		},
		{
			name:     "blank entries dropped",
			response: `["  Trim payroll  ", "", "   "]`,
			expected: []string{"Trim payroll"},
		},
		{
			name:     "capped",
			response: `["a", "b", "c", "d", "e"]`,
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "no array",
			response: "I cannot help with that.",
			wantErr:  true,
		},
		{
			name:     "not strings",
			response: `[1, 2]`,
			wantErr:  true,
		},
		{
			name:     "empty array",
			response: `[]`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInsights(tt.response)
			if tt.wantErr {
				be.True(t, err != nil)
				return
			}

			be.NilErr(t, err)
			be.Equal(t, len(tt.expected), len(got))
			for i := range tt.expected {
				be.Equal(t, tt.expected[i], got[i])
			}
		})
	}
}

func TestBuildInsightPrompt(t *testing.T) {
	res := engine.Evaluate(engine.RawInputs{
		engine.Marketing:  "3000",
		engine.CoreIncome: "6000",
	}, engine.Direct)

	prompt := buildInsightPrompt(res, "INR")
	be.True(t, strings.Contains(prompt, "JSON array of at most 3"))
	be.True(t, strings.Contains(prompt, "Total income: ₹6,000"))
	be.True(t, strings.Contains(prompt, "Profit margin: 50.00%"))
}
