package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category key does not name one of the
// fixed expense or income categories.
var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the fixed expense or income categories.
type Category int

const (
	Marketing Category = iota
	StaffSalaries
	Administrative
	Logistics
	LegalCompliance
	OtherExpense
	CoreIncome
	OtherIncome
)

type categoryInfo struct {
	key    string
	name   string
	prompt string
}

var categoryInfos = [...]categoryInfo{
	Marketing: {
		key:    "marketing",
		name:   "Marketing",
		prompt: "1. How much do you spend on marketing and advertising?",
	},
	StaffSalaries: {
		key:    "salaries",
		name:   "Staff Salaries",
		prompt: "2. What is your total monthly expense on staff salaries?",
	},
	Administrative: {
		key:  "admin",
		name: "Administrative",
		prompt: "3. What are your other administrative or office-related expenses " +
			"(e.g., rent, internet, insurance, supplies)?",
	},
	Logistics: {
		key:    "logistics",
		name:   "Logistics",
		prompt: "4. Do you have any logistics, delivery, or distribution expenses?",
	},
	LegalCompliance: {
		key:    "legal",
		name:   "Legal & Compliance",
		prompt: "5. How much do you spend on legal, licensing, or compliance-related fees?",
	},
	OtherExpense: {
		key:    "other",
		name:   "Other",
		prompt: "6. Do you have any other business expenses not listed above?",
	},
	CoreIncome: {
		key:  "core_income",
		name: "Core Income",
		prompt: "1. What is your total income from core business activities " +
			"(e.g., product sales, services, subscriptions)?",
	},
	OtherIncome: {
		key:  "other_income",
		name: "Other Income",
		prompt: "2. Do you have any additional income sources " +
			"(e.g., commissions, rent, investments, etc.)?",
	},
}

// ExpenseCategories lists the expense categories in their fixed order.
// The order is used for dominant category tie-breaking and for rendering.
var ExpenseCategories = []Category{
	Marketing,
	StaffSalaries,
	Administrative,
	Logistics,
	LegalCompliance,
	OtherExpense,
}

// IncomeCategories lists the income categories in their fixed order.
var IncomeCategories = []Category{CoreIncome, OtherIncome}

// Categories returns every category, expenses first.
func Categories() []Category {
	all := make([]Category, 0, len(ExpenseCategories)+len(IncomeCategories))
	all = append(all, ExpenseCategories...)
	return append(all, IncomeCategories...)
}

func (c Category) valid() bool {
	return c >= Marketing && c <= OtherIncome
}

// String returns the display name of the category.
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryInfos[c].name
}

// Key returns the stable machine key used by flags, config and JSON.
func (c Category) Key() string {
	if !c.valid() {
		return ""
	}
	return categoryInfos[c].key
}

// Prompt returns the question shown to the user when asking for the amount.
func (c Category) Prompt() string {
	if !c.valid() {
		return ""
	}
	return categoryInfos[c].prompt
}

// IsIncome reports whether the category is an income source.
func (c Category) IsIncome() bool {
	return c == CoreIncome || c == OtherIncome
}

// MarshalText implements encoding.TextMarshaler so categories can be map keys in JSON.
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory resolves a category from its key.
func ParseCategory(key string) (Category, error) {
	for i, info := range categoryInfos {
		if info.key == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}
