// Package engine computes a business's financial summary from the eight raw
// expense and income figures and classifies it into an advisory tier.
//
// Everything in the package is a pure function of its arguments, so a single
// evaluation can be run from any goroutine without coordination.
package engine

// RawInputs maps each category to the text the user entered for it.
// A missing category is treated as blank.
type RawInputs map[Category]string

// Result is everything one evaluation produces.
type Result struct {
	Scale     PeriodScale      `json:"period_scale"`
	Summary   Summary          `json:"summary"`
	Breakdown ExpenseBreakdown `json:"expense_breakdown"`
	Income    []CategoryAmount `json:"income"`
	Dominant  CategoryAmount   `json:"dominant_category"`
	Tier      Tier             `json:"tier"`
	Warnings  []Warning        `json:"warnings"`
}

// HasWarnings reports whether the evaluation produced any notices.
func (r Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Evaluate normalizes the raw inputs, aggregates them with the given scale and
// classifies the outcome. It always returns a complete result: fields that could
// not be used count as zero and are listed in Warnings.
func Evaluate(raw RawInputs, scale PeriodScale) Result {
	warnings := make([]Warning, 0)

	collect := func(categories []Category) []CategoryAmount {
		amounts := make([]CategoryAmount, len(categories))
		for i, c := range categories {
			amount, w := Normalize(c, raw[c])
			if w != nil {
				warnings = append(warnings, *w)
			}
			amounts[i] = CategoryAmount{Category: c, Amount: amount}
		}
		return amounts
	}

	expenses := collect(ExpenseCategories)
	income := collect(IncomeCategories)

	summary, breakdown := Aggregate(expenses, income, scale)

	scaledIncome := make([]CategoryAmount, len(income))
	for i, ca := range income {
		scaledIncome[i] = CategoryAmount{Category: ca.Category, Amount: ca.Amount * int64(scale)}
	}

	tier := Classify(summary.Profit, summary.ProfitMargin)
	if tier.ID == TierOutOfRange {
		warnings = append(warnings, *newMarginWarning())
	}

	return Result{
		Scale:     scale,
		Summary:   summary,
		Breakdown: breakdown,
		Income:    scaledIncome,
		Dominant:  breakdown.Dominant(),
		Tier:      tier,
		Warnings:  warnings,
	}
}
