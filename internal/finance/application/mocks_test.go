package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

// MockTransactionRepository keeps transactions in memory and filters them with
// domain.MatchesQuery.
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions []domain.Transaction
	ListErr      error
	CountErr     error
	Created      []domain.Transaction
}

func (m *MockTransactionRepository) scoped(params domain.ListParams) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range m.Transactions {
		if t.UserID != params.UserID || t.Type != params.Type {
			continue
		}
		if params.Query != "" && !domain.MatchesQuery(t, params.Query) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		if !out[i].CreatedDate.Equal(out[j].CreatedDate) {
			return out[i].CreatedDate.After(out[j].CreatedDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *MockTransactionRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	rows := m.scoped(params)
	start := params.Offset()
	if start >= len(rows) {
		return nil, nil
	}
	end := start + params.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], nil
}

func (m *MockTransactionRepository) Count(ctx context.Context, params domain.ListParams) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return len(m.scoped(params)), nil
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Transactions {
		if t.ID == transactionID && t.UserID == userID {
			found := t
			return &found, nil
		}
	}
	return nil, financeErrors.ErrNotFoundOrUnauthorized
}

func (m *MockTransactionRepository) Create(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, t)
	m.Created = append(m.Created, t)
	return &t, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.Transactions {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			t.CreatedDate = existing.CreatedDate
			m.Transactions[i] = t
			return &t, nil
		}
	}
	return nil, financeErrors.ErrNotFoundOrUnauthorized
}

func (m *MockTransactionRepository) Delete(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.Transactions {
		if existing.ID == transactionID && existing.UserID == userID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return &existing, nil
		}
	}
	return nil, financeErrors.ErrNotFoundOrUnauthorized
}

func (m *MockTransactionRepository) Latest(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, t := range m.Transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type MockCategoryRepository struct {
	Categories []domain.Category
	Err        error
}

func (m *MockCategoryRepository) find(name, categoryType, owner string) (int, bool) {
	for _, c := range m.Categories {
		if c.UserID == owner && c.Type == categoryType && strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return 0, false
}

func (m *MockCategoryRepository) FindUserCategoryID(ctx context.Context, name, categoryType, userID string) (int, bool, error) {
	if m.Err != nil {
		return 0, false, m.Err
	}
	if userID == domain.SystemOwner {
		return 0, false, nil
	}
	id, ok := m.find(name, categoryType, userID)
	return id, ok, nil
}

func (m *MockCategoryRepository) FindSystemCategoryID(ctx context.Context, name, categoryType string) (int, bool, error) {
	if m.Err != nil {
		return 0, false, m.Err
	}
	id, ok := m.find(name, categoryType, domain.SystemOwner)
	return id, ok, nil
}

func (m *MockCategoryRepository) FindVisible(ctx context.Context, categoryType, userID string) ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.Category
	for _, c := range m.Categories {
		if c.Type == categoryType && (c.UserID == userID || c.IsSystem()) {
			out = append(out, c)
		}
	}
	return out, nil
}

type MockSummaryRepository struct {
	Income, Expense int64
	ByCategoryRows  map[string][]domain.CategoryTotal
	Months          []domain.MonthlyTotal
	Err             error
	CalledWithNow   time.Time
	mu              sync.Mutex
}

func (m *MockSummaryRepository) Totals(ctx context.Context, userID string) (int64, int64, error) {
	return m.Income, m.Expense, m.Err
}

func (m *MockSummaryRepository) ByCategory(ctx context.Context, userID, transactionType string) ([]domain.CategoryTotal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rows := append([]domain.CategoryTotal(nil), m.ByCategoryRows[transactionType]...)
	return rows, nil
}

func (m *MockSummaryRepository) MonthlyTotals(ctx context.Context, userID string, now time.Time) ([]domain.MonthlyTotal, error) {
	m.mu.Lock()
	m.CalledWithNow = now
	m.mu.Unlock()
	return m.Months, m.Err
}
