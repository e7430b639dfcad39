package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const (
	minNameLength = 3
	maxNameLength = 20
)

var (
	ErrUnauthenticated   = errors.New("user not authenticated")
	ErrFirstNameLength   = fmt.Errorf("first name must be between %d and %d characters", minNameLength, maxNameLength)
	ErrLastNameLength    = fmt.Errorf("last name must be between %d and %d characters", minNameLength, maxNameLength)
	ErrInvalidCurrency   = errors.New("currency must be a 3-letter code")
	ErrInvalidPictureURL = errors.New("profile picture URL is not valid")
)

type Profile struct {
	UserID     string    `json:"user_id" db:"user_id"`
	FirstName  string    `json:"f_name" db:"f_name"`
	LastName   string    `json:"l_name" db:"l_name"`
	Currency   string    `json:"currency" db:"currency"`
	PictureURL *string   `json:"profile_picture_url" db:"profile_picture_url"`
	PictureKey *string   `json:"profile_picture_key,omitempty" db:"profile_picture_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ProfileInput is the onboarding and profile edit form.
type ProfileInput struct {
	FirstName  string `json:"f_name"`
	LastName   string `json:"l_name"`
	Currency   string `json:"currency"`
	PictureURL string `json:"profile_picture_url"`
	PictureKey string `json:"profile_picture_key"`
}

// FooterInfo is the slice of the profile shown in the page footer.
type FooterInfo struct {
	FirstName  string  `json:"f_name"`
	LastName   string  `json:"l_name"`
	PictureURL *string `json:"profile_picture_url"`
}

// ValidationError collects every problem with a ProfileInput.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := e.Messages()
	return "invalid profile: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return msgs
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

type Service interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	Onboard(ctx context.Context, userID string, input ProfileInput) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*Profile, error)
	GetFooterInfo(ctx context.Context, userID string) (*FooterInfo, error)
}

type service struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewUserService(repo Repository, log logrus.FieldLogger) Service {
	return &service{
		repo: repo,
		log:  log.WithField("component", "users"),
	}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.repo.getProfile(ctx, userID)
}

func (s *service) Onboard(ctx context.Context, userID string, input ProfileInput) (*Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	profile, err := input.toProfile(userID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.createProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.log.WithField("user_id", userID).Info("User onboarded")
	return created, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	profile, err := input.toProfile(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.updateProfile(ctx, profile)
}

func (s *service) GetFooterInfo(ctx context.Context, userID string) (*FooterInfo, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FooterInfo{
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		PictureURL: profile.PictureURL,
	}, nil
}

func (in ProfileInput) toProfile(userID string) (Profile, error) {
	var problems []error

	first := strings.TrimSpace(in.FirstName)
	if !validNameLength(first) {
		problems = append(problems, ErrFirstNameLength)
	}
	last := strings.TrimSpace(in.LastName)
	if !validNameLength(last) {
		problems = append(problems, ErrLastNameLength)
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if !validCurrency(currency) {
		problems = append(problems, ErrInvalidCurrency)
	}

	profile := Profile{
		UserID:    userID,
		FirstName: first,
		LastName:  last,
		Currency:  currency,
	}

	if raw := strings.TrimSpace(in.PictureURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, ErrInvalidPictureURL)
		} else {
			profile.PictureURL = &raw
			if key := strings.TrimSpace(in.PictureKey); key != "" {
				profile.PictureKey = &key
			}
		}
	}

	if len(problems) > 0 {
		return Profile{}, &ValidationError{Errors: problems}
	}
	return profile, nil
}

func validNameLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= minNameLength && n <= maxNameLength
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsUpper(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
