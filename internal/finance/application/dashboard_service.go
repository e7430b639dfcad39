package application

import (
	"context"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type LatestTransactionsReader interface {
	Latest(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)
}

// DashboardService serves the read-only aggregates. None of them take a filter;
// all are scoped by user only.
type DashboardService struct {
	summaries    domain.SummaryRepository
	transactions LatestTransactionsReader
	now          func() time.Time
	log          logrus.FieldLogger
}

func NewDashboardService(summaries domain.SummaryRepository, transactions LatestTransactionsReader, log logrus.FieldLogger) *DashboardService {
	return &DashboardService{
		summaries:    summaries,
		transactions: transactions,
		now:          time.Now,
		log:          log.WithField("component", "dashboard"),
	}
}

func (s *DashboardService) GetSummary(ctx context.Context, userID string) (domain.Summary, error) {
	if userID == "" {
		return domain.Summary{}, financeErrors.ErrUnauthenticated
	}
	income, expense, err := s.summaries.Totals(ctx, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.NewSummary(income, expense), nil
}

func (s *DashboardService) GetCategoryTotals(ctx context.Context, userID, transactionType string) ([]domain.CategoryTotal, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	if !domain.IsValidTransactionType(transactionType) {
		return nil, financeErrors.ErrInvalidType
	}
	totals, err := s.summaries.ByCategory(ctx, userID, transactionType)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []domain.CategoryTotal{}
	}
	domain.SortCategoryTotals(totals)
	return totals, nil
}

func (s *DashboardService) GetMonthlyTotals(ctx context.Context, userID string) ([]domain.MonthlyTotal, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	return s.summaries.MonthlyTotals(ctx, userID, s.now())
}

// GetLatestTransactions clamps limit to [1, MaxLatestLimit], defaulting to
// DefaultLatestLimit.
func (s *DashboardService) GetLatestTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = domain.DefaultLatestLimit
	}
	if limit > domain.MaxLatestLimit {
		limit = domain.MaxLatestLimit
	}
	transactions, err := s.transactions.Latest(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, nil
}

// GetDashboard runs every aggregate concurrently. The results are not read in
// one snapshot, so they may be momentarily inconsistent with each other.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}

	var d domain.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Summary, err = s.GetSummary(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.IncomeByCategory, err = s.GetCategoryTotals(gctx, userID, domain.TypeIncome)
		return err
	})
	g.Go(func() (err error) {
		d.ExpenseByCategory, err = s.GetCategoryTotals(gctx, userID, domain.TypeExpense)
		return err
	})
	g.Go(func() (err error) {
		d.LatestTransactions, err = s.GetLatestTransactions(gctx, userID, domain.DefaultLatestLimit)
		return err
	})
	g.Go(func() (err error) {
		d.MonthlyTotals, err = s.GetMonthlyTotals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to build dashboard")
		return nil, err
	}
	return &d, nil
}
