package main

import "time"

// Period types accepted by the import command.
const (
	monthlyPeriodType = "month"
	annualPeriodType  = "year"
)

const (
	standardMargin = 2
	// headerHeight is the number of lines used by the title and help.
	headerHeight = 6

	aiInsightTimeout   = 30 * time.Second
	anthropicMaxTokens = 400
	maxInsights        = 3

	importTimeout = 30 * time.Second
)

// Session states
type sessionState int

const (
	formState sessionState = iota
	resultState
	tiersState
	configState
)

func (ss sessionState) String() string {
	switch ss {
	case formState:
		return "inputs"
	case resultState:
		return "result"
	case tiersState:
		return "advisory tiers"
	case configState:
		return "configuration"
	}

	return "unknown"
}
