package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	MaxDescriptionLength = 120
	DateLayout           = "2006-01-02"
)

func IsValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type Transaction struct {
	ID              string    `json:"transaction_id" db:"transaction_id"`
	UserID          string    `json:"user_id" db:"user_id"`
	AmountCents     int64     `json:"amount_cents" db:"amount_cents"`
	Type            string    `json:"type" db:"type"`
	CategoryID      int       `json:"category_id" db:"category_id"`
	Category        string    `json:"category" db:"category"`
	CreatedDate     time.Time `json:"created_date" db:"created_date"`
	TransactionDate time.Time `json:"transaction_date" db:"transaction_date"`
	Description     *string   `json:"description" db:"description"`
}

// Amount is the transaction amount in major units.
func (t Transaction) Amount() float64 {
	return CentsToFloat(t.AmountCents)
}

// TransactionInput is the mutable part of a transaction as submitted by a user.
type TransactionInput struct {
	Amount          string `json:"amount"`
	Category        string `json:"category"`
	Type            string `json:"type"`
	TransactionDate string `json:"transaction_date"`
	Description     string `json:"description"`
}

// TransactionFields is a validated TransactionInput with the category still
// unresolved.
type TransactionFields struct {
	AmountCents     int64
	Category        string
	Type            string
	TransactionDate time.Time
	Description     *string
}

// Validate checks the input and converts it to storable fields. All problems
// are reported together.
func (in TransactionInput) Validate() (TransactionFields, error) {
	var fields TransactionFields
	ve := &financeErrors.ValidationErrors{}

	amount, err := ParseAmount(in.Amount)
	if err == nil {
		fields.AmountCents, err = AmountToCents(amount)
	}
	if err != nil {
		ve.Add(err)
	}

	if !IsValidTransactionType(in.Type) {
		ve.Add(financeErrors.ErrInvalidType)
	}
	fields.Type = in.Type

	fields.Category = strings.TrimSpace(in.Category)
	if fields.Category == "" {
		ve.Add(financeErrors.ErrMissingCategory)
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(in.TransactionDate))
	if err != nil {
		ve.Add(financeErrors.ErrInvalidDate)
	}
	fields.TransactionDate = date

	desc := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		ve.Add(financeErrors.ErrDescriptionTooLong)
	} else if desc != "" {
		fields.Description = &desc
	}

	if len(ve.Errors) == 1 {
		return fields, ve.Errors[0]
	}
	return fields, ve.ErrOrNil()
}

type TransactionRepository interface {
	List(ctx context.Context, params ListParams) ([]Transaction, error)
	Count(ctx context.Context, params ListParams) (int, error)
	FindByID(ctx context.Context, transactionID, userID string) (*Transaction, error)
	Create(ctx context.Context, t Transaction) (*Transaction, error)
	Update(ctx context.Context, t Transaction) (*Transaction, error)
	Delete(ctx context.Context, transactionID, userID string) (*Transaction, error)
	Latest(ctx context.Context, userID string, limit int) ([]Transaction, error)
}
