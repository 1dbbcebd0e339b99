package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TierID identifies an advisory tier.
type TierID string

const (
	TierLoss        TierID = "loss"
	TierLowModerate TierID = "low_moderate"
	TierHealthy     TierID = "healthy"
	TierVeryGood    TierID = "very_good"
	TierStrong      TierID = "strong"
	TierExcellent   TierID = "excellent"
	TierOutOfRange  TierID = "out_of_range"
)

// Severity is the display weight of a tier.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Tier is an advisory band with its guidance.
type Tier struct {
	ID        TierID   `json:"id"`
	Label     string   `json:"label"`
	Severity  Severity `json:"severity"`
	Headline  string   `json:"headline"`
	Condition string   `json:"condition"`
	Guidance  []string `json:"guidance"`
}

// band is a half-open margin range [lower, upper), closed at upper when inclusive.
type band struct {
	tier      TierID
	lower     decimal.Decimal
	upper     decimal.Decimal
	inclusive bool
}

func (b band) contains(margin decimal.Decimal) bool {
	if margin.LessThan(b.lower) {
		return false
	}
	if b.inclusive {
		return margin.LessThanOrEqual(b.upper)
	}
	return margin.LessThan(b.upper)
}

func (b band) String() string {
	op := "<"
	if b.inclusive {
		op = "≤"
	}
	return fmt.Sprintf("%s ≤ margin %s %s", b.lower, op, b.upper)
}

// marginBands apply only when profit is not negative. They are checked in order.
var marginBands = []band{
	{tier: TierLowModerate, lower: decimal.NewFromInt(0), upper: decimal.NewFromInt(30)},
	{tier: TierHealthy, lower: decimal.NewFromInt(30), upper: decimal.NewFromInt(50)},
	{tier: TierVeryGood, lower: decimal.NewFromInt(50), upper: decimal.NewFromInt(60)},
	{tier: TierStrong, lower: decimal.NewFromInt(60), upper: decimal.NewFromInt(80)},
	{tier: TierExcellent, lower: decimal.NewFromInt(80), upper: decimal.NewFromInt(100), inclusive: true},
}

var tierTable = map[TierID]Tier{
	TierLoss: {
		ID:        TierLoss,
		Label:     "Loss",
		Severity:  SeverityCritical,
		Headline:  "You're operating at a loss.",
		Condition: "profit < 0",
		Guidance: []string{
			"Review pricing and cost structures.",
			"Cut unnecessary expenses in highest spend areas.",
			"Explore new revenue streams.",
		},
	},
	TierLowModerate: {
		ID:       TierLowModerate,
		Label:    "Low-Moderate",
		Severity: SeverityWarning,
		Headline: "Low to Moderate Profit Margin (0–29%)",
		Guidance: []string{
			"Slightly increase prices if possible.",
			"Focus on operational efficiency.",
			"Upsell or bundle high-margin services.",
		},
	},
	TierHealthy: {
		ID:       TierHealthy,
		Label:    "Healthy",
		Severity: SeverityInfo,
		Headline: "Healthy Profit Margin (30–49%)",
		Guidance: []string{
			"You're doing well! Optimize for growth.",
			"Explore automation and marketing.",
			"Strengthen your value proposition.",
		},
	},
	TierVeryGood: {
		ID:       TierVeryGood,
		Label:    "Very Good",
		Severity: SeveritySuccess,
		Headline: "Very Good Profit Margin (50–59%)",
		Guidance: []string{
			"Consider scaling sustainably.",
			"Invest in quality and customer service.",
		},
	},
	TierStrong: {
		ID:       TierStrong,
		Label:    "Strong",
		Severity: SeveritySuccess,
		Headline: "Strong Profit Margin (60–79%)",
		Guidance: []string{
			"Expand into new markets.",
			"Reinvest in your brand and team.",
		},
	},
	TierExcellent: {
		ID:       TierExcellent,
		Label:    "Excellent",
		Severity: SeveritySuccess,
		Headline: "Excellent Profit Margin (80–100%)",
		Guidance: []string{
			"Consider franchising or partnerships.",
			"Build thought leadership.",
			"Invest in innovation.",
		},
	},
	TierOutOfRange: {
		ID:        TierOutOfRange,
		Label:     "Out-of-range",
		Severity:  SeverityWarning,
		Headline:  "Profit margin seems outside the normal range.",
		Condition: "any other margin",
		Guidance: []string{
			"Please verify your inputs.",
		},
	},
}

func init() {
	for _, b := range marginBands {
		t := tierTable[b.tier]
		t.Condition = b.String()
		tierTable[b.tier] = t
	}
}

// tierOrder is the evaluation order of the classifier.
var tierOrder = []TierID{
	TierLoss,
	TierLowModerate,
	TierHealthy,
	TierVeryGood,
	TierStrong,
	TierExcellent,
	TierOutOfRange,
}

// Tiers returns every tier in evaluation order.
func Tiers() []Tier {
	tiers := make([]Tier, len(tierOrder))
	for i, id := range tierOrder {
		tiers[i] = LookupTier(id)
	}
	return tiers
}

// LookupTier returns the tier with the given id. Unknown ids yield the out-of-range tier.
func LookupTier(id TierID) Tier {
	t, ok := tierTable[id]
	if !ok {
		t = tierTable[TierOutOfRange]
	}
	// guidance is shared table data
	t.Guidance = append([]string(nil), t.Guidance...)
	return t
}

// Classify maps a profit and margin to exactly one tier. A negative profit is always
// a loss; otherwise the first margin band containing the margin wins, and margins
// outside every band fall through to the out-of-range tier.
func Classify(profit int64, margin decimal.Decimal) Tier {
	if profit < 0 {
		return LookupTier(TierLoss)
	}

	for _, b := range marginBands {
		if b.contains(margin) {
			return LookupTier(b.tier)
		}
	}

	return LookupTier(TierOutOfRange)
}
