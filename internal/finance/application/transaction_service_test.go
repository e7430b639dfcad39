package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransactionService(repo *MockTransactionRepository) *PersonalTransactionService {
	log, _ := test.NewNullLogger()
	service := NewPersonalTransactionService(repo, NewCategoryService(testCategories()), domain.DefaultPageSize, log)
	service.now = func() time.Time { return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC) }
	return service
}

func TestCreateAndSearch(t *testing.T) {
	repo := &MockTransactionRepository{}
	service := newTestTransactionService(repo)
	ctx := context.Background()

	input := domain.TransactionInput{
		Amount:          "100.00",
		Category:        "salary",
		Type:            domain.TypeIncome,
		TransactionDate: "2024-01-15",
		Description:     "bonus",
	}
	created, err := service.CreateTransaction(ctx, "user-a", input)
	require.NoError(t, err)
	_, err = service.CreateTransaction(ctx, "user-b", input)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), created.AmountCents)
	assert.Equal(t, 1, created.CategoryID)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.False(t, created.CreatedDate.IsZero())

	for _, q := range []string{"100", "bonus", "2024-01-15", "SALARY", ""} {
		page, err := service.ListPage(ctx, domain.ListParams{UserID: "user-a", Type: domain.TypeIncome, Query: q})
		require.NoError(t, err, q)
		require.Len(t, page.Transactions, 1, q)
		assert.Equal(t, created.ID, page.Transactions[0].ID, q)
		assert.Equal(t, 1, page.TotalCount, q)
	}

	page, err := service.ListPage(ctx, domain.ListParams{UserID: "user-a", Type: domain.TypeExpense, Query: "bonus"})
	require.NoError(t, err)
	assert.Empty(t, page.Transactions)
	assert.NotNil(t, page.Transactions)
	assert.Equal(t, 0, page.TotalPages)
}

func TestListPage_Pagination(t *testing.T) {
	repo := &MockTransactionRepository{}
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		repo.Transactions = append(repo.Transactions, domain.Transaction{
			ID:              fmt.Sprintf("%02d", i),
			UserID:          "user-a",
			AmountCents:     int64(100 + i),
			Type:            domain.TypeExpense,
			Category:        "food",
			TransactionDate: base.AddDate(0, 0, i/3),
			CreatedDate:     base,
		})
	}
	service := newTestTransactionService(repo)

	seen := map[string]bool{}
	var total int
	for p := 1; p <= 3; p++ {
		page, err := service.ListPage(context.Background(), domain.ListParams{UserID: "user-a", Type: domain.TypeExpense, Page: p})
		require.NoError(t, err)
		assert.Equal(t, 30, page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, domain.DefaultPageSize, page.PageSize)
		for _, tx := range page.Transactions {
			assert.False(t, seen[tx.ID], "duplicate row %s", tx.ID)
			seen[tx.ID] = true
		}
		total += len(page.Transactions)
	}
	assert.Equal(t, 30, total)

	first, err := service.ListPage(context.Background(), domain.ListParams{UserID: "user-a", Type: domain.TypeExpense, Page: -4, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, domain.MaxPageSize, first.PageSize)
	assert.Equal(t, "29", first.Transactions[0].ID)
}

func TestListPage_OversizedPageIsEmpty(t *testing.T) {
	repo := &MockTransactionRepository{Transactions: []domain.Transaction{
		{ID: "a", UserID: "user-a", AmountCents: 100, Type: domain.TypeExpense, Category: "food"},
	}}
	service := newTestTransactionService(repo)

	page, err := service.ListPage(context.Background(), domain.ListParams{UserID: "user-a", Type: domain.TypeExpense, Page: math.MaxInt64})
	require.NoError(t, err)
	assert.Empty(t, page.Transactions)
	assert.NotNil(t, page.Transactions)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, math.MaxInt/domain.DefaultPageSize, page.Page)
}

func TestListPage_FailsWhenEitherQueryFails(t *testing.T) {
	storageErr := financeErrors.NewStorageError("count", errors.New("connection reset"))

	for name, repo := range map[string]*MockTransactionRepository{
		"list":  {ListErr: storageErr},
		"count": {CountErr: storageErr},
	} {
		t.Run(name, func(t *testing.T) {
			service := newTestTransactionService(repo)
			page, err := service.ListPage(context.Background(), domain.ListParams{UserID: "user-a", Type: domain.TypeIncome})
			assert.Nil(t, page)
			assert.ErrorIs(t, err, financeErrors.ErrDataFetch)
		})
	}
}

func TestListPage_RequiresUserAndType(t *testing.T) {
	service := newTestTransactionService(&MockTransactionRepository{})

	_, err := service.ListPage(context.Background(), domain.ListParams{Type: domain.TypeIncome})
	assert.ErrorIs(t, err, financeErrors.ErrUnauthenticated)

	_, err = service.ListPage(context.Background(), domain.ListParams{UserID: "user-a", Type: "all"})
	assert.ErrorIs(t, err, financeErrors.ErrInvalidType)
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	repo := &MockTransactionRepository{}
	service := newTestTransactionService(repo)

	_, err := service.CreateTransaction(context.Background(), "user-a", domain.TransactionInput{
		Amount: "-5", Type: "refund", TransactionDate: "15/01/2024",
	})
	assert.True(t, financeErrors.IsValidationErrors(err))
	assert.Empty(t, repo.Created)

	_, err = service.CreateTransaction(context.Background(), "user-a", domain.TransactionInput{
		Amount: "5", Type: domain.TypeIncome, Category: "crypto", TransactionDate: "2024-01-15",
	})
	assert.ErrorIs(t, err, financeErrors.ErrCategoryNotFound)
	assert.Empty(t, repo.Created)
}

func TestDeleteTransaction_OtherUser(t *testing.T) {
	id := uuid.NewString()
	repo := &MockTransactionRepository{Transactions: []domain.Transaction{
		{ID: id, UserID: "user-b", AmountCents: 500, Type: domain.TypeExpense},
	}}
	service := newTestTransactionService(repo)
	ctx := context.Background()

	_, err := service.DeleteTransaction(ctx, id, "user-a")
	assert.ErrorIs(t, err, financeErrors.ErrNotFoundOrUnauthorized)
	assert.Len(t, repo.Transactions, 1)

	_, err = service.DeleteTransaction(ctx, "not-a-uuid", "user-a")
	assert.ErrorIs(t, err, financeErrors.ErrNotFoundOrUnauthorized)

	_, err = service.DeleteTransaction(ctx, "", "user-a")
	assert.ErrorIs(t, err, financeErrors.ErrMissingTransactionID)

	deleted, err := service.DeleteTransaction(ctx, id, "user-b")
	require.NoError(t, err)
	assert.Equal(t, id, deleted.ID)
	assert.Empty(t, repo.Transactions)
}

func TestUpdateTransaction(t *testing.T) {
	id := uuid.NewString()
	created := time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
	repo := &MockTransactionRepository{Transactions: []domain.Transaction{
		{ID: id, UserID: "user-a", AmountCents: 500, Type: domain.TypeExpense, CategoryID: 2, Category: "food", CreatedDate: created},
	}}
	service := newTestTransactionService(repo)

	updated, err := service.UpdateTransaction(context.Background(), id, "user-a", domain.TransactionInput{
		Amount: "12.345", Category: "Food", Type: domain.TypeExpense, TransactionDate: "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1235), updated.AmountCents)
	assert.Equal(t, 10, updated.CategoryID)
	assert.Equal(t, created, updated.CreatedDate)

	_, err = service.UpdateTransaction(context.Background(), id, "user-b", domain.TransactionInput{
		Amount: "1", Category: "food", Type: domain.TypeExpense, TransactionDate: "2024-02-01",
	})
	assert.ErrorIs(t, err, financeErrors.ErrNotFoundOrUnauthorized)
}

func TestGetTransaction(t *testing.T) {
	id := uuid.NewString()
	repo := &MockTransactionRepository{Transactions: []domain.Transaction{{ID: id, UserID: "user-a"}}}
	service := newTestTransactionService(repo)

	got, err := service.GetTransaction(context.Background(), id, "user-a")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = service.GetTransaction(context.Background(), id, "user-b")
	assert.ErrorIs(t, err, financeErrors.ErrNotFoundOrUnauthorized)

	_, err = service.GetTransaction(context.Background(), id, "")
	assert.ErrorIs(t, err, financeErrors.ErrUnauthenticated)
}
