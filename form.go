package main

import (
	"github.com/charmbracelet/huh"

	"github.com/Rshep3087/bizmargin/config"
	"github.com/Rshep3087/bizmargin/engine"
)

// formValues holds the text bound to the input form. Values survive between
// edits so the form can be reopened pre-filled.
type formValues struct {
	raw  map[engine.Category]*string
	mode string
}

func newFormValues(mode string) *formValues {
	fv := &formValues{
		raw:  make(map[engine.Category]*string),
		mode: mode,
	}
	for _, c := range engine.Categories() {
		fv.raw[c] = new(string)
	}
	return fv
}

// inputs returns a snapshot of the entered text.
func (fv *formValues) inputs() engine.RawInputs {
	raw := make(engine.RawInputs, len(fv.raw))
	for c, v := range fv.raw {
		raw[c] = *v
	}
	return raw
}

func (fv *formValues) scale() engine.PeriodScale {
	scale, err := engine.ParsePeriodScale(fv.mode)
	if err != nil {
		return engine.Direct
	}
	return scale
}

func categoryInputs(categories []engine.Category, fv *formValues) []huh.Field {
	fields := make([]huh.Field, 0, len(categories))
	for _, c := range categories {
		fields = append(fields,
			huh.NewInput().
				Title(c.Prompt()).
				Key(c.Key()).
				Placeholder("0").
				Value(fv.raw[c]),
		)
	}
	return fields
}

// newInputForm builds the form collecting the six expenses, the two income
// sources and the period mode. Nothing is validated here: text that is not a
// whole number becomes a warning on the result.
func newInputForm(fv *formValues) *huh.Form {
	modeOpts := []huh.Option[string]{
		huh.NewOption("Direct (use amounts as entered)", config.DirectMode),
		huh.NewOption("Monthly (project amounts to a year)", config.MonthlyMode),
	}

	return huh.NewForm(
		huh.NewGroup(categoryInputs(engine.ExpenseCategories, fv)...).
			Title("Business Expenses"),
		huh.NewGroup(categoryInputs(engine.IncomeCategories, fv)...).
			Title("Business Income"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Period").
				Description("How should the amounts be interpreted?").
				Options(modeOpts...).
				Key("mode").
				Value(&fv.mode),
		),
	).WithShowHelp(true)
}
