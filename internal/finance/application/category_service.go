package application

import (
	"context"
	"fmt"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ResolveCategoryID maps a category name to its id for a user. The user's own
// category is preferred, then the shared system category of the same name and
// type. Another user's categories are never considered.
func (s *CategoryService) ResolveCategoryID(ctx context.Context, name, categoryType, userID string) (int, error) {
	if userID == "" {
		return 0, financeErrors.ErrUnauthenticated
	}
	if !domain.IsValidTransactionType(categoryType) {
		return 0, financeErrors.ErrInvalidType
	}

	id, found, err := s.repo.FindUserCategoryID(ctx, name, categoryType, userID)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}

	id, found, err = s.repo.FindSystemCategoryID(ctx, name, categoryType)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%q (%s): %w", name, categoryType, financeErrors.ErrCategoryNotFound)
	}
	return id, nil
}

func (s *CategoryService) GetVisibleCategories(ctx context.Context, categoryType, userID string) ([]domain.Category, error) {
	if userID == "" {
		return nil, financeErrors.ErrUnauthenticated
	}
	if !domain.IsValidTransactionType(categoryType) {
		return nil, financeErrors.ErrInvalidType
	}
	return s.repo.FindVisible(ctx, categoryType, userID)
}
