package infrastructure

import (
	"context"
	"time"

	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type SummaryRepository struct {
	db *database.DBService
}

func NewSummaryRepository(db *database.DBService) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) Totals(ctx context.Context, userID string) (int64, int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := SelectQuery{
		Columns: []string{
			"COALESCE(SUM(amount_cents) FILTER (WHERE type = 'income'), 0) AS income_cents",
			"COALESCE(SUM(amount_cents) FILTER (WHERE type = 'expense'), 0) AS expense_cents",
		},
		From: "transactions",
	}
	q.AndWhere("user_id = " + q.Arg(userID))
	query, args := q.SQL()

	var totals struct {
		Income  int64 `db:"income_cents"`
		Expense int64 `db:"expense_cents"`
	}
	if err := r.db.DB.GetContext(ctx, &totals, query, args...); err != nil {
		return 0, 0, financeErrors.NewStorageError("summary totals", err)
	}
	return totals.Income, totals.Expense, nil
}

func (r *SummaryRepository) ByCategory(ctx context.Context, userID, transactionType string) ([]domain.CategoryTotal, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := SelectQuery{
		Columns: []string{"c.category", "SUM(t.amount_cents) AS total_cents"},
		From:    "transactions t JOIN categories c ON c.category_id = t.category_id",
		GroupBy: "c.category",
		OrderBy: "total_cents DESC, c.category",
	}
	q.AndWhere("t.user_id = " + q.Arg(userID))
	q.AndWhere("t.type = " + q.Arg(transactionType))
	query, args := q.SQL()

	var rows []struct {
		Category   string `db:"category"`
		TotalCents int64  `db:"total_cents"`
	}
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, financeErrors.NewStorageError("category totals", err)
	}

	totals := make([]domain.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = domain.CategoryTotal{Category: row.Category, Amount: domain.CentsToFloat(row.TotalCents)}
	}
	return totals, nil
}

// MonthlyTotals returns one row per month of the trailing window ending with
// the month of now, months without transactions included as zeros.
func (r *SummaryRepository) MonthlyTotals(ctx context.Context, userID string, now time.Time) ([]domain.MonthlyTotal, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `
		WITH months AS (
			SELECT generate_series(
				date_trunc('month', $2::date) - ($3::int - 1) * INTERVAL '1 month',
				date_trunc('month', $2::date),
				INTERVAL '1 month'
			)::date AS month_start
		)
		SELECT
			to_char(m.month_start, 'Mon YYYY') AS month_label,
			m.month_start,
			COALESCE(SUM(t.amount_cents) FILTER (WHERE t.type = 'income'), 0) AS income_cents,
			COALESCE(SUM(t.amount_cents) FILTER (WHERE t.type = 'expense'), 0) AS expense_cents
		FROM months m
		LEFT JOIN transactions t
			ON t.user_id = $1
			AND t.transaction_date >= m.month_start
			AND t.transaction_date < m.month_start + INTERVAL '1 month'
		GROUP BY m.month_start
		ORDER BY m.month_start DESC`

	var rows []struct {
		Label        string    `db:"month_label"`
		MonthStart   time.Time `db:"month_start"`
		IncomeCents  int64     `db:"income_cents"`
		ExpenseCents int64     `db:"expense_cents"`
	}
	day := now.Format(domain.DateLayout)
	if err := r.db.DB.SelectContext(ctx, &rows, query, userID, day, domain.MonthlyWindow); err != nil {
		return nil, financeErrors.NewStorageError("monthly totals", err)
	}

	totals := make([]domain.MonthlyTotal, len(rows))
	for i, row := range rows {
		totals[i] = domain.MonthlyTotal{
			Month:      row.Label,
			MonthStart: row.MonthStart,
			Income:     domain.CentsToFloat(row.IncomeCents),
			Expense:    domain.CentsToFloat(row.ExpenseCents),
		}
	}
	return totals, nil
}
