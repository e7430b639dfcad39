package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type CategoryResolver interface {
	ResolveCategoryID(ctx context.Context, name, categoryType, userID string) (int, error)
}

type PersonalTransactionService struct {
	repo            domain.TransactionRepository
	categories      CategoryResolver
	defaultPageSize int
	now             func() time.Time
	log             logrus.FieldLogger
}

func NewPersonalTransactionService(repo domain.TransactionRepository, categories CategoryResolver, defaultPageSize int, log logrus.FieldLogger) *PersonalTransactionService {
	return &PersonalTransactionService{
		repo:            repo,
		categories:      categories,
		defaultPageSize: defaultPageSize,
		now:             time.Now,
		log:             log.WithField("component", "transactions"),
	}
}

// ListPage returns one page of a user's transactions of one type together with
// the total number of matching rows. The page and the count are fetched
// concurrently with the same scope; if either fails the whole page fails.
func (s *PersonalTransactionService) ListPage(ctx context.Context, params domain.ListParams) (*domain.TransactionPage, error) {
	if params.UserID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	if !domain.IsValidTransactionType(params.Type) {
		return nil, financeErrors.ErrInvalidType
	}
	params = params.Normalize(s.defaultPageSize)

	var (
		rows  []domain.Transaction
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.repo.List(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, params)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": params.UserID,
			"type":    params.Type,
			"page":    params.Page,
		}).Error("Failed to fetch transaction page")
		return nil, err
	}

	if rows == nil {
		rows = []domain.Transaction{}
	}
	return &domain.TransactionPage{
		Transactions: rows,
		Page:         params.Page,
		PageSize:     params.PageSize,
		TotalCount:   total,
		TotalPages:   domain.TotalPages(total, params.PageSize),
	}, nil
}

func (s *PersonalTransactionService) GetTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	if !isTransactionID(transactionID) {
		return nil, financeErrors.ErrNotFoundOrUnauthorized
	}
	return s.repo.FindByID(ctx, transactionID, userID)
}

func (s *PersonalTransactionService) CreateTransaction(ctx context.Context, userID string, input domain.TransactionInput) (*domain.Transaction, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	transaction, err := s.buildTransaction(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	transaction.ID = uuid.NewString()
	transaction.CreatedDate = s.now()

	created, err := s.repo.Create(ctx, transaction)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to create transaction")
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": created.ID,
		"type":           created.Type,
		"amount_cents":   created.AmountCents,
	}).Info("Transaction created")
	return created, nil
}

func (s *PersonalTransactionService) UpdateTransaction(ctx context.Context, transactionID, userID string, input domain.TransactionInput) (*domain.Transaction, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	transaction, err := s.buildTransaction(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	if !isTransactionID(transactionID) {
		return nil, financeErrors.ErrNotFoundOrUnauthorized
	}
	transaction.ID = transactionID

	updated, err := s.repo.Update(ctx, transaction)
	if err != nil {
		if financeErrors.IsStorageError(err) {
			s.log.WithError(err).WithField("transaction_id", transactionID).Error("Failed to update transaction")
		}
		return nil, err
	}
	return updated, nil
}

func (s *PersonalTransactionService) DeleteTransaction(ctx context.Context, transactionID, userID string) (*domain.Transaction, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	if transactionID == "" {
		return nil, financeErrors.ErrMissingTransactionID
	}
	if !isTransactionID(transactionID) {
		return nil, financeErrors.ErrNotFoundOrUnauthorized
	}

	deleted, err := s.repo.Delete(ctx, transactionID, userID)
	if err != nil {
		if financeErrors.IsStorageError(err) {
			s.log.WithError(err).WithField("transaction_id", transactionID).Error("Failed to delete transaction")
		}
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "transaction_id": transactionID}).Info("Transaction deleted")
	return deleted, nil
}

func (s *PersonalTransactionService) buildTransaction(ctx context.Context, userID string, input domain.TransactionInput) (domain.Transaction, error) {
	fields, err := input.Validate()
	if err != nil {
		return domain.Transaction{}, err
	}

	categoryID, err := s.categories.ResolveCategoryID(ctx, fields.Category, fields.Type, userID)
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		UserID:          userID,
		AmountCents:     fields.AmountCents,
		Type:            fields.Type,
		CategoryID:      categoryID,
		Category:        fields.Category,
		TransactionDate: fields.TransactionDate,
		Description:     fields.Description,
	}, nil
}

// isTransactionID rejects malformed ids up front; they are reported exactly
// like ids that belong to nobody.
func isTransactionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
