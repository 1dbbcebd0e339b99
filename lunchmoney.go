package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	lm "github.com/icco/lunchmoney"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Rshep3087/bizmargin/engine"
)

// transactionPageSize is the number of transactions requested per call.
// The API returns at most this many, so a full page means there may be more.
const transactionPageSize = 1000

// uncategorizedName is the mapping name for transactions without a category.
const uncategorizedName = "uncategorized"

// lunchMoneyReader is the part of the Lunch Money API the importer needs.
type lunchMoneyReader interface {
	GetCategories(ctx context.Context) ([]*lm.Category, error)
	GetTransactions(ctx context.Context, filters *lm.TransactionFilters) ([]*lm.Transaction, error)
}

// lunchMoneyFactory creates a reader from an API token.
type lunchMoneyFactory func(token string) (lunchMoneyReader, error)

func newLunchMoneyClient(token string) (lunchMoneyReader, error) {
	lmc, err := lm.NewClient(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Lunch Money client: %w", err)
	}

	lmc.HTTP.Transport = newLoggingTransport(lmc.HTTP.Transport, log.Default())

	return lmc, nil
}

// categoryMapping assigns Lunch Money category names, compared
// case-insensitively, to evaluation categories.
type categoryMapping map[string]engine.Category

// parseMappings parses --map values of the form "Lunch Category=key".
func parseMappings(specs []string) (categoryMapping, error) {
	mapping := make(categoryMapping, len(specs))
	for _, spec := range specs {
		name, key, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid mapping %q (expected \"Lunch Money category=key\")", spec)
		}

		c, err := engine.ParseCategory(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("invalid mapping %q: %w", spec, err)
		}
		mapping[strings.ToLower(name)] = c
	}
	return mapping, nil
}

// target picks the evaluation category for a Lunch Money category.
// A nil category means the transaction is uncategorized.
func (cm categoryMapping) target(category *lm.Category) engine.Category {
	name := uncategorizedName
	if category != nil {
		name = category.Name
	}

	if c, ok := cm[strings.ToLower(name)]; ok {
		return c
	}

	if category != nil && category.IsIncome {
		return engine.CoreIncome
	}
	return engine.OtherExpense
}

// importStats describes what happened to the fetched transactions.
type importStats struct {
	Period       string `json:"period"`
	Transactions int    `json:"transactions"`
	Excluded     int    `json:"excluded"`
	Unparsable   int    `json:"unparsable"`
}

// summarizeTransactions sums absolute transaction amounts per evaluation
// category and renders them as whole-unit raw inputs.
func summarizeTransactions(
	ts []*lm.Transaction,
	categories []*lm.Category,
	mapping categoryMapping,
) (engine.RawInputs, importStats) {
	byID := make(map[int64]*lm.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	stats := importStats{Transactions: len(ts)}
	totals := make(map[engine.Category]decimal.Decimal)

	for _, t := range ts {
		category := byID[t.CategoryID]
		if category != nil && category.ExcludeFromTotals {
			stats.Excluded++
			continue
		}

		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			log.Debug("skipping transaction with unparsable amount", "id", t.ID, "amount", t.Amount, "error", err)
			stats.Unparsable++
			continue
		}

		c := mapping.target(category)
		totals[c] = totals[c].Add(amount.Abs())
	}

	raw := make(engine.RawInputs, len(engine.Categories()))
	for _, c := range engine.Categories() {
		raw[c] = strconv.FormatInt(totals[c].Round(0).IntPart(), 10)
	}

	return raw, stats
}

// fetchPeriod loads categories and transactions for the period concurrently.
func fetchPeriod(ctx context.Context, r lunchMoneyReader, p Period) ([]*lm.Category, []*lm.Transaction, error) {
	var (
		categories   []*lm.Category
		transactions []*lm.Transaction
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cs, err := r.GetCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}
		categories = cs
		return nil
	})

	g.Go(func() error {
		ts, err := fetchTransactions(ctx, r, p)
		if err != nil {
			return fmt.Errorf("failed to fetch transactions: %w", err)
		}
		transactions = ts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	log.Debug("fetched Lunch Money data",
		"period", p.String(),
		"categories", len(categories),
		"transactions", len(transactions),
	)

	return categories, transactions, nil
}

// fetchTransactions pages through every transaction of the period.
func fetchTransactions(ctx context.Context, r lunchMoneyReader, p Period) ([]*lm.Transaction, error) {
	debitsAsNegative := false
	sd, ed := p.startDate(), p.endDate()

	var all []*lm.Transaction
	for offset := int64(0); ; offset += transactionPageSize {
		off, limit := offset, int64(transactionPageSize)

		page, err := r.GetTransactions(ctx, &lm.TransactionFilters{
			DebitAsNegative: &debitsAsNegative,
			StartDate:       &sd,
			EndDate:         &ed,
			Offset:          &off,
			Limit:           &limit,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		log.Debug("fetched transaction page", "offset", off, "count", len(page))

		if len(page) < transactionPageSize {
			return all, nil
		}
	}
}
