package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/carlmjohnson/be"
)

func TestCategoryOrder(t *testing.T) {
	names := []string{"Marketing", "Staff Salaries", "Administrative", "Logistics", "Legal & Compliance", "Other"}
	be.Equal(t, len(names), len(ExpenseCategories))
	for i, c := range ExpenseCategories {
		be.Equal(t, names[i], c.String())
		be.False(t, c.IsIncome())
	}

	for _, c := range IncomeCategories {
		be.True(t, c.IsIncome())
	}

	all := Categories()
	be.Equal(t, 8, len(all))
	be.Equal(t, OtherExpense, all[5])
	be.Equal(t, CoreIncome, all[6])
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		t.Run(c.Key(), func(t *testing.T) {
			parsed, err := ParseCategory(c.Key())
			be.NilErr(t, err)
			be.Equal(t, c, parsed)
			be.Nonzero(t, c.Prompt())
		})
	}

	_, err := ParseCategory("rent")
	be.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestCategoryOutOfRange(t *testing.T) {
	c := Category(42)
	be.Equal(t, "Category(42)", c.String())
	be.Equal(t, "", c.Key())
	be.Equal(t, "", c.Prompt())

	_, err := c.MarshalText()
	be.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestRawInputsJSONKeys(t *testing.T) {
	var raw RawInputs
	err := json.Unmarshal([]byte(`{"marketing":"10","core_income":"20"}`), &raw)
	be.NilErr(t, err)
	be.Equal(t, "10", raw[Marketing])
	be.Equal(t, "20", raw[CoreIncome])

	err = json.Unmarshal([]byte(`{"rent":"10"}`), &raw)
	be.True(t, errors.Is(err, ErrUnknownCategory))
}
