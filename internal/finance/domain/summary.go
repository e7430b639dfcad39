package domain

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MonthlyWindow        = 8
	DefaultLatestLimit   = 10
	MaxLatestLimit       = 50
	MiscellaneousBucket  = "miscellaneous"
	DefaultTopCategories = 4
)

type Summary struct {
	TotalIncome  int64   `json:"totalIncome"`
	TotalExpense int64   `json:"totalExpense"`
	Balance      int64   `json:"balance"`
	SavingsRate  float64 `json:"savingsRate"`
}

// NewSummary derives balance and savings rate from the two totals. The rate is
// a percentage rounded to two places, 0 when there is no income.
func NewSummary(incomeCents, expenseCents int64) Summary {
	s := Summary{
		TotalIncome:  incomeCents,
		TotalExpense: expenseCents,
		Balance:      incomeCents - expenseCents,
	}
	if incomeCents != 0 {
		rate := decimal.NewFromInt(s.Balance).
			Div(decimal.NewFromInt(incomeCents)).
			Mul(hundred).
			Round(2)
		s.SavingsRate, _ = rate.Float64()
	}
	return s
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// SortCategoryTotals orders by amount descending, then name.
func SortCategoryTotals(totals []CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})
}

// RollupCategories keeps the n largest totals and folds the remainder into a
// single bucket. With n or fewer categories there is nothing to fold and the
// totals come back without the bucket.
func RollupCategories(totals []CategoryTotal, n int, label string) []CategoryTotal {
	if n <= 0 {
		return totals
	}
	sorted := make([]CategoryTotal, len(totals))
	copy(sorted, totals)
	SortCategoryTotals(sorted)

	if len(sorted) <= n {
		return sorted
	}

	rest := decimal.Zero
	for _, t := range sorted[n:] {
		rest = rest.Add(decimal.NewFromFloat(t.Amount))
	}
	restAmount, _ := rest.Round(2).Float64()

	out := append([]CategoryTotal{}, sorted[:n]...)
	return append(out, CategoryTotal{Category: label, Amount: restAmount})
}

type MonthlyTotal struct {
	Month      string    `json:"month"`
	MonthStart time.Time `json:"month_start"`
	Income     float64   `json:"income"`
	Expense    float64   `json:"expense"`
}

// MonthWindow returns the first day of each of the trailing MonthlyWindow
// months, most recent first, the month containing now included.
func MonthWindow(now time.Time) []time.Time {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]time.Time, MonthlyWindow)
	for i := range months {
		months[i] = current.AddDate(0, -i, 0)
	}
	return months
}

type Dashboard struct {
	Summary            Summary         `json:"summary"`
	IncomeByCategory   []CategoryTotal `json:"income_by_category"`
	ExpenseByCategory  []CategoryTotal `json:"expense_by_category"`
	LatestTransactions []Transaction   `json:"latest_transactions"`
	MonthlyTotals      []MonthlyTotal  `json:"monthly_totals"`
}

type SummaryRepository interface {
	Totals(ctx context.Context, userID string) (incomeCents, expenseCents int64, err error)
	ByCategory(ctx context.Context, userID, transactionType string) ([]CategoryTotal, error)
	MonthlyTotals(ctx context.Context, userID string, now time.Time) ([]MonthlyTotal, error)
}
