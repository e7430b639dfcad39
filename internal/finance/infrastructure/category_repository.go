package infrastructure

import (
	"context"
	"database/sql"
	"errors"

	database "github.com/sebuszqo/FinanceTracker/internal/db"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

type CategoryRepository struct {
	db *database.DBService
}

func NewCategoryRepository(db *database.DBService) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) findCategoryID(ctx context.Context, name, categoryType, owner string) (int, bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var id int
	query := "SELECT category_id FROM categories WHERE LOWER(category) = LOWER($1) AND type = $2 AND user_id = $3"
	err := r.db.DB.GetContext(ctx, &id, query, name, categoryType, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, financeErrors.NewStorageError("find category", err)
	}
	return id, true, nil
}

func (r *CategoryRepository) FindUserCategoryID(ctx context.Context, name, categoryType, userID string) (int, bool, error) {
	if userID == domain.SystemOwner {
		return 0, false, nil
	}
	return r.findCategoryID(ctx, name, categoryType, userID)
}

func (r *CategoryRepository) FindSystemCategoryID(ctx context.Context, name, categoryType string) (int, bool, error) {
	return r.findCategoryID(ctx, name, categoryType, domain.SystemOwner)
}

// FindVisible lists the categories of one type a user may book against. A
// user category hides a system category with the same name.
func (r *CategoryRepository) FindVisible(ctx context.Context, categoryType, userID string) ([]domain.Category, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT category_id, category, type, user_id FROM (
			SELECT DISTINCT ON (LOWER(category)) category_id, category, type, user_id
			FROM categories
			WHERE type = $1 AND user_id IN ($2, $3)
			ORDER BY LOWER(category), (user_id = $3)
		) visible
		ORDER BY category`

	categories := []domain.Category{}
	if err := r.db.DB.SelectContext(ctx, &categories, query, categoryType, userID, domain.SystemOwner); err != nil {
		return nil, financeErrors.NewStorageError("list categories", err)
	}
	return categories, nil
}
