package domain

import (
	"strconv"
	"strings"
)

// Date renderings a search query is matched against.
var searchDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"January 02, 2006",
}

// SearchableFields lists every textual representation of a transaction that
// a free-text query may match.
func SearchableFields(t Transaction) []string {
	fields := []string{
		FormatCents(t.AmountCents),
		strconv.FormatInt(t.AmountCents, 10),
		t.Category,
	}
	if t.Description != nil {
		fields = append(fields, *t.Description)
	}
	for _, layout := range searchDateLayouts {
		fields = append(fields, t.TransactionDate.Format(layout))
	}
	return fields
}

// MatchesQuery reports whether t satisfies the list search predicate. It is
// the in-memory counterpart of the SQL filter: blank queries match
// everything, otherwise q must be a case-insensitive substring of one field.
func MatchesQuery(t Transaction, q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	needle := strings.ToLower(q)
	for _, f := range SearchableFields(t) {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
