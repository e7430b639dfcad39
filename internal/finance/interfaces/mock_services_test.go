package interfaces

import (
	"context"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

type MockTransactionService struct {
	Page        *domain.TransactionPage
	Transaction *domain.Transaction
	Err         error
	LastParams  domain.ListParams
	LastInput   domain.TransactionInput
	LastID      string
	LastUserID  string
}

func (m *MockTransactionService) ListPage(ctx context.Context, params domain.ListParams) (*domain.TransactionPage, error) {
	m.LastParams = params
	return m.Page, m.Err
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	m.LastID, m.LastUserID = transactionID, userID
	return m.Transaction, m.Err
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, input domain.TransactionInput) (*domain.Transaction, error) {
	m.LastUserID, m.LastInput = userID, input
	return m.Transaction, m.Err
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID, userID string, input domain.TransactionInput) (*domain.Transaction, error) {
	m.LastID, m.LastUserID, m.LastInput = transactionID, userID, input
	return m.Transaction, m.Err
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	m.LastID, m.LastUserID = transactionID, userID
	return m.Transaction, m.Err
}

type MockCategoryService struct {
	Categories []domain.Category
	Err        error
}

func (m *MockCategoryService) GetVisibleCategories(ctx context.Context, categoryType, userID string) ([]domain.Category, error) {
	return m.Categories, m.Err
}

type MockDashboardService struct {
	Dashboard *domain.Dashboard
	Summary   domain.Summary
	Totals    []domain.CategoryTotal
	Latest    []domain.Transaction
	Months    []domain.MonthlyTotal
	Err       error
	LastLimit int
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	return m.Dashboard, m.Err
}

func (m *MockDashboardService) GetSummary(ctx context.Context, userID string) (domain.Summary, error) {
	return m.Summary, m.Err
}

func (m *MockDashboardService) GetCategoryTotals(ctx context.Context, userID, transactionType string) ([]domain.CategoryTotal, error) {
	return m.Totals, m.Err
}

func (m *MockDashboardService) GetLatestTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	m.LastLimit = limit
	return m.Latest, m.Err
}

func (m *MockDashboardService) GetMonthlyTotals(ctx context.Context, userID string) ([]domain.MonthlyTotal, error) {
	return m.Months, m.Err
}
