package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	database "github.com/sebuszqo/FinanceTracker/internal/db"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyOnboarded = errors.New("user already onboarded")
)

type Repository interface {
	getProfile(ctx context.Context, userID string) (*Profile, error)
	createProfile(ctx context.Context, profile Profile) (*Profile, error)
	updateProfile(ctx context.Context, profile Profile) (*Profile, error)
}

type userRepository struct {
	db *database.DBService
}

func NewUserRepository(db *database.DBService) Repository {
	return &userRepository{
		db: db,
	}
}

const profileColumns = "user_id, f_name, l_name, currency, profile_picture_url, profile_picture_key, created_at"

func (r *userRepository) getProfile(ctx context.Context, userID string) (*Profile, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM users WHERE user_id = $1`

	var profile Profile
	if err := r.db.DB.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &profile, nil
}

// createProfile inserts the user row once; a second onboarding attempt for the
// same user_id is reported as ErrUserAlreadyOnboarded.
func (r *userRepository) createProfile(ctx context.Context, profile Profile) (*Profile, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (user_id, f_name, l_name, currency, profile_picture_url, profile_picture_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + profileColumns

	var created Profile
	err := r.db.DB.GetContext(ctx, &created, query,
		profile.UserID, profile.FirstName, profile.LastName, profile.Currency, profile.PictureURL, profile.PictureKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserAlreadyOnboarded
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	return &created, nil
}

// updateProfile overwrites the editable fields. A nil picture keeps the stored
// reference.
func (r *userRepository) updateProfile(ctx context.Context, profile Profile) (*Profile, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET f_name = $2,
		    l_name = $3,
		    currency = $4,
		    profile_picture_url = COALESCE($5, profile_picture_url),
		    profile_picture_key = COALESCE($6, profile_picture_key)
		WHERE user_id = $1
		RETURNING ` + profileColumns

	var updated Profile
	err := r.db.DB.GetContext(ctx, &updated, query,
		profile.UserID, profile.FirstName, profile.LastName, profile.Currency, profile.PictureURL, profile.PictureKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not update user: %w", err)
	}
	return &updated, nil
}
