package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func salaryBonus() Transaction {
	desc := "Year-end Bonus"
	return Transaction{
		ID:              "b5f1c6d2-3c1e-4a55-9d0b-7a1f0e9c2b11",
		UserID:          "user_a",
		AmountCents:     10000,
		Type:            TypeIncome,
		Category:        "salary",
		TransactionDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Description:     &desc,
	}
}

func TestMatchesQuery(t *testing.T) {
	tx := salaryBonus()

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"100", true},
		{"100.00", true},
		{"10000", true},
		{"0.0", true},
		{"SALARY", true},
		{"sal", true},
		{"bonus", true},
		{"year-END", true},
		{"2024-01-15", true},
		{"01/15/2024", true},
		{"15/01/2024", true},
		{"January 15, 2024", true},
		{"january", true},
		{"100.01", false},
		{"freelance", false},
		{"2024-01-16", false},
		{"February", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesQuery(tx, tt.query))
		})
	}
}

func TestMatchesQuery_NilDescriptionNeverMatches(t *testing.T) {
	tx := salaryBonus()
	tx.Description = nil

	assert.False(t, MatchesQuery(tx, "bonus"))
	assert.True(t, MatchesQuery(tx, "salary"))
}

func TestSearchableFields_Formats(t *testing.T) {
	tx := salaryBonus()
	tx.AmountCents = 505
	tx.TransactionDate = time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)

	fields := SearchableFields(tx)
	assert.Contains(t, fields, "5.05")
	assert.Contains(t, fields, "505")
	assert.Contains(t, fields, "2023-03-05")
	assert.Contains(t, fields, "03/05/2023")
	assert.Contains(t, fields, "05/03/2023")
	assert.Contains(t, fields, "March 05, 2023")
}
