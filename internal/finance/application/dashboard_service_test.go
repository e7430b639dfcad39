package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboardService(summaries *MockSummaryRepository, txs *MockTransactionRepository) *DashboardService {
	log, _ := test.NewNullLogger()
	return NewDashboardService(summaries, txs, log)
}

func TestGetSummary(t *testing.T) {
	service := newTestDashboardService(&MockSummaryRepository{Income: 50000, Expense: 30000}, &MockTransactionRepository{})

	summary, err := service.GetSummary(context.Background(), "user-a")
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{TotalIncome: 50000, TotalExpense: 30000, Balance: 20000, SavingsRate: 40.0}, summary)

	_, err = service.GetSummary(context.Background(), "")
	assert.ErrorIs(t, err, financeErrors.ErrUnauthenticated)
}

func TestGetCategoryTotals_Sorted(t *testing.T) {
	summaries := &MockSummaryRepository{ByCategoryRows: map[string][]domain.CategoryTotal{
		domain.TypeExpense: {{Category: "food", Amount: 50}, {Category: "bills", Amount: 200}, {Category: "fun", Amount: 50}},
	}}
	service := newTestDashboardService(summaries, &MockTransactionRepository{})

	totals, err := service.GetCategoryTotals(context.Background(), "user-a", domain.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, []string{"bills", "food", "fun"}, []string{totals[0].Category, totals[1].Category, totals[2].Category})

	empty, err := service.GetCategoryTotals(context.Background(), "user-a", domain.TypeIncome)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGetLatestTransactions_ClampsLimit(t *testing.T) {
	txs := &MockTransactionRepository{}
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		txs.Transactions = append(txs.Transactions, domain.Transaction{ID: fmt.Sprint(i), UserID: "user-a", TransactionDate: base.AddDate(0, 0, i)})
	}
	service := newTestDashboardService(&MockSummaryRepository{}, txs)

	latest, err := service.GetLatestTransactions(context.Background(), "user-a", 0)
	require.NoError(t, err)
	assert.Len(t, latest, domain.DefaultLatestLimit)
	assert.Equal(t, "59", latest[0].ID)

	latest, err = service.GetLatestTransactions(context.Background(), "user-a", 1000)
	require.NoError(t, err)
	assert.Len(t, latest, domain.MaxLatestLimit)
}

func TestGetMonthlyTotals_UsesClock(t *testing.T) {
	summaries := &MockSummaryRepository{}
	service := newTestDashboardService(summaries, &MockTransactionRepository{})
	now := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	_, err := service.GetMonthlyTotals(context.Background(), "user-a")
	require.NoError(t, err)
	assert.Equal(t, now, summaries.CalledWithNow)
}

func TestGetDashboard(t *testing.T) {
	summaries := &MockSummaryRepository{
		Income:  50000,
		Expense: 30000,
		ByCategoryRows: map[string][]domain.CategoryTotal{
			domain.TypeIncome:  {{Category: "salary", Amount: 500}},
			domain.TypeExpense: {{Category: "food", Amount: 300}},
		},
		Months: []domain.MonthlyTotal{{Month: "Mar 2024", Income: 500, Expense: 300}},
	}
	txs := &MockTransactionRepository{Transactions: []domain.Transaction{{ID: "1", UserID: "user-a"}}}
	service := newTestDashboardService(summaries, txs)

	d, err := service.GetDashboard(context.Background(), "user-a")
	require.NoError(t, err)
	assert.Equal(t, int64(20000), d.Summary.Balance)
	assert.Len(t, d.IncomeByCategory, 1)
	assert.Len(t, d.ExpenseByCategory, 1)
	assert.Len(t, d.LatestTransactions, 1)
	assert.Len(t, d.MonthlyTotals, 1)
}

func TestGetDashboard_FailsOnAnyAggregate(t *testing.T) {
	summaries := &MockSummaryRepository{Err: financeErrors.NewStorageError("totals", errors.New("timeout"))}
	service := newTestDashboardService(summaries, &MockTransactionRepository{})

	d, err := service.GetDashboard(context.Background(), "user-a")
	assert.Nil(t, d)
	assert.True(t, financeErrors.IsStorageError(err))
}
