package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPeriodScale is returned by ParsePeriodScale for unsupported modes.
var ErrInvalidPeriodScale = errors.New("invalid period scale")

var hundred = decimal.NewFromInt(100)

// PeriodScale multiplies every entered amount before summation.
type PeriodScale int

const (
	// Direct uses the amounts as entered.
	Direct PeriodScale = 1
	// Annualized treats the amounts as monthly figures and projects them to a year.
	Annualized PeriodScale = 12
)

// String returns the mode name of the scale.
func (s PeriodScale) String() string {
	switch s {
	case Direct:
		return "direct"
	case Annualized:
		return "monthly"
	}
	return fmt.Sprintf("x%d", int(s))
}

// Describe returns a short human description of what the totals represent.
func (s PeriodScale) Describe() string {
	switch s {
	case Direct:
		return "as entered"
	case Annualized:
		return "monthly figures projected to a year"
	}
	return fmt.Sprintf("amounts multiplied by %d", int(s))
}

// ParsePeriodScale parses a mode name or multiplier.
func ParsePeriodScale(s string) (PeriodScale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "direct", "as-entered", "1":
		return Direct, nil
	case "monthly", "annual", "annualized", "12":
		return Annualized, nil
	}
	return 0, fmt.Errorf("%w: %q (must be direct or monthly)", ErrInvalidPeriodScale, s)
}

// CategoryAmount pairs a category with its amount.
type CategoryAmount struct {
	Category Category
	Amount   int64
}

func (ca CategoryAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category string `json:"category"`
		Name     string `json:"name"`
		Amount   int64  `json:"amount"`
	}{
		Category: ca.Category.Key(),
		Name:     ca.Category.String(),
		Amount:   ca.Amount,
	})
}

// ExpenseBreakdown holds the scaled expense amounts in the fixed category order.
type ExpenseBreakdown []CategoryAmount

// Total sums the breakdown.
func (b ExpenseBreakdown) Total() int64 {
	var total int64
	for _, ca := range b {
		total += ca.Amount
	}
	return total
}

// Dominant returns the category with the largest amount. Ties go to the
// category that comes first in the breakdown order.
func (b ExpenseBreakdown) Dominant() CategoryAmount {
	if len(b) == 0 {
		return CategoryAmount{Category: Marketing}
	}

	dominant := b[0]
	for _, ca := range b[1:] {
		if ca.Amount > dominant.Amount {
			dominant = ca
		}
	}
	return dominant
}

// Share returns the percentage of total expenses taken by the i-th entry.
// It is zero when there are no expenses.
func (b ExpenseBreakdown) Share(i int) decimal.Decimal {
	total := b.Total()
	if total == 0 || i < 0 || i >= len(b) {
		return decimal.Zero
	}
	return decimal.NewFromInt(b[i].Amount).Mul(hundred).Div(decimal.NewFromInt(total))
}

// Summary holds the aggregate figures of one evaluation.
type Summary struct {
	TotalExpenses int64
	TotalIncome   int64
	Profit        int64
	// ProfitMargin is profit as a percentage of income, zero when there is no income.
	ProfitMargin decimal.Decimal
}

// MarshalJSON renders the margin rounded to two places.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalExpenses int64   `json:"total_expenses"`
		TotalIncome   int64   `json:"total_income"`
		Profit        int64   `json:"profit"`
		ProfitMargin  float64 `json:"profit_margin"`
	}{
		TotalExpenses: s.TotalExpenses,
		TotalIncome:   s.TotalIncome,
		Profit:        s.Profit,
		ProfitMargin:  s.ProfitMargin.Round(2).InexactFloat64(),
	})
}

// Aggregate scales the expense and income amounts and derives the summary.
// The returned breakdown keeps the order of expenses.
func Aggregate(expenses, income []CategoryAmount, scale PeriodScale) (Summary, ExpenseBreakdown) {
	factor := int64(scale)

	breakdown := make(ExpenseBreakdown, len(expenses))
	for i, ca := range expenses {
		breakdown[i] = CategoryAmount{Category: ca.Category, Amount: ca.Amount * factor}
	}

	var totalIncome int64
	for _, ca := range income {
		totalIncome += ca.Amount * factor
	}

	s := Summary{
		TotalExpenses: breakdown.Total(),
		TotalIncome:   totalIncome,
	}
	s.Profit = s.TotalIncome - s.TotalExpenses
	s.ProfitMargin = profitMargin(s.Profit, s.TotalIncome)

	return s, breakdown
}

func profitMargin(profit, income int64) decimal.Decimal {
	if income <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(profit).Mul(hundred).Div(decimal.NewFromInt(income))
}
