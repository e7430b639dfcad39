package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

var transactionColumns = []string{
	"t.transaction_id", "t.user_id", "t.amount_cents", "t.type", "t.category_id",
	"c.category", "t.created_date", "t.transaction_date", "t.description",
}

const transactionOrder = "t.transaction_date DESC, t.created_date DESC, t.transaction_id DESC"

// returningWithCategory joins the rows produced by a data-modifying CTE named
// "changed" with their category name.
const returningWithCategory = `
	SELECT t.transaction_id, t.user_id, t.amount_cents, t.type, t.category_id,
	       c.category, t.created_date, t.transaction_date, t.description
	FROM changed t
	JOIN categories c ON c.category_id = t.category_id`

type PersonalTransactionRepository struct {
	db *database.DBService
}

func NewPersonalTransactionRepository(db *database.DBService) *PersonalTransactionRepository {
	return &PersonalTransactionRepository{db: db}
}

// scopedQuery is the single source of the join, ownership scope and search
// filter shared by List and Count.
func scopedQuery(params domain.ListParams) SelectQuery {
	q := SelectQuery{From: "transactions t JOIN categories c ON c.category_id = t.category_id"}
	q.AndWhere("t.user_id = " + q.Arg(params.UserID))
	q.AndWhere("t.type = " + q.Arg(params.Type))
	AddSearchFilter(&q, params.Query)
	return q
}

func listQuery(params domain.ListParams) SelectQuery {
	q := scopedQuery(params)
	q.Columns = transactionColumns
	q.OrderBy = transactionOrder
	q.Limit = params.PageSize
	q.Offset = params.Offset()
	return q
}

func countQuery(params domain.ListParams) SelectQuery {
	q := scopedQuery(params)
	q.Columns = []string{"COUNT(*)"}
	return q
}

func (r *PersonalTransactionRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Transaction, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query, args := listQuery(params).SQL()
	transactions := []domain.Transaction{}
	if err := r.db.DB.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, financeErrors.NewStorageError("list transactions", err)
	}
	return transactions, nil
}

func (r *PersonalTransactionRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query, args := countQuery(params).SQL()
	var count int
	if err := r.db.DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, financeErrors.NewStorageError("count transactions", err)
	}
	return count, nil
}

func (r *PersonalTransactionRepository) FindByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := SelectQuery{
		Columns: transactionColumns,
		From:    "transactions t JOIN categories c ON c.category_id = t.category_id",
	}
	q.AndWhere("t.transaction_id = " + q.Arg(transactionID))
	q.AndWhere("t.user_id = " + q.Arg(userID))
	query, args := q.SQL()

	var transaction domain.Transaction
	if err := r.db.DB.GetContext(ctx, &transaction, query, args...); err != nil {
		return nil, notFoundOrStorage("find transaction", err)
	}
	return &transaction, nil
}

func (r *PersonalTransactionRepository) Create(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `
	WITH changed AS (
		INSERT INTO transactions
		(transaction_id, user_id, amount_cents, type, category_id, created_date, transaction_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	)` + returningWithCategory

	var created domain.Transaction
	err := r.db.DB.GetContext(ctx, &created, query,
		t.ID, t.UserID, t.AmountCents, t.Type, t.CategoryID, t.CreatedDate, t.TransactionDate, t.Description,
	)
	if err != nil {
		return nil, financeErrors.NewStorageError("create transaction", err)
	}
	return &created, nil
}

func (r *PersonalTransactionRepository) Update(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `
	WITH changed AS (
		UPDATE transactions
		SET amount_cents = $1, type = $2, category_id = $3, transaction_date = $4, description = $5
		WHERE transaction_id = $6 AND user_id = $7
		RETURNING *
	)` + returningWithCategory

	var updated domain.Transaction
	err := r.db.DB.GetContext(ctx, &updated, query,
		t.AmountCents, t.Type, t.CategoryID, t.TransactionDate, t.Description, t.ID, t.UserID,
	)
	if err != nil {
		return nil, notFoundOrStorage("update transaction", err)
	}
	return &updated, nil
}

func (r *PersonalTransactionRepository) Delete(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `
	WITH changed AS (
		DELETE FROM transactions
		WHERE transaction_id = $1 AND user_id = $2
		RETURNING *
	)` + returningWithCategory

	var deleted domain.Transaction
	if err := r.db.DB.GetContext(ctx, &deleted, query, transactionID, userID); err != nil {
		return nil, notFoundOrStorage("delete transaction", err)
	}
	return &deleted, nil
}

func (r *PersonalTransactionRepository) Latest(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	q := SelectQuery{
		Columns: transactionColumns,
		From:    "transactions t JOIN categories c ON c.category_id = t.category_id",
		OrderBy: transactionOrder,
		Limit:   limit,
	}
	q.AndWhere("t.user_id = " + q.Arg(userID))
	query, args := q.SQL()

	transactions := []domain.Transaction{}
	if err := r.db.DB.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, financeErrors.NewStorageError("latest transactions", err)
	}
	return transactions, nil
}

func notFoundOrStorage(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, financeErrors.ErrNotFoundOrUnauthorized)
	}
	return financeErrors.NewStorageError(op, err)
}
