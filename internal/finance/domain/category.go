package domain

import "context"

// SystemOwner owns the shared categories visible to every user.
const SystemOwner = "system"

type Category struct {
	ID     int    `json:"category_id" db:"category_id"`
	Name   string `json:"category" db:"category"`
	Type   string `json:"type" db:"type"`
	UserID string `json:"-" db:"user_id"`
}

func (c Category) IsSystem() bool {
	return c.UserID == SystemOwner
}

type CategoryRepository interface {
	// FindUserCategoryID looks only at the user's own categories.
	FindUserCategoryID(ctx context.Context, name, categoryType, userID string) (int, bool, error)
	// FindSystemCategoryID looks only at shared categories.
	FindSystemCategoryID(ctx context.Context, name, categoryType string) (int, bool, error)
	FindVisible(ctx context.Context, categoryType, userID string) ([]Category, error)
}
