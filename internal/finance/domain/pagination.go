package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// ListParams scopes one page of the transaction list.
type ListParams struct {
	UserID   string
	Type     string
	Query    string
	Page     int
	PageSize int
}

// Normalize applies the paging defaults: a missing or non-positive page is 1,
// a missing page size is defaultSize and page size never exceeds MaxPageSize.
// Page is capped so Offset stays representable; such a page is past the last
// one and comes back empty.
func (p ListParams) Normalize(defaultSize int) ListParams {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if maxPage := math.MaxInt / p.PageSize; p.Page > maxPage {
		p.Page = maxPage
	}
	p.Query = strings.TrimSpace(p.Query)
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePage reads a 1-based page number, falling back to 1. Numbers too
// large for an int saturate to math.MaxInt and are capped by Normalize.
func ParsePage(s string) int {
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) && page > 0 {
		return math.MaxInt
	}
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// TotalPages is ceil(total/pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	TotalCount   int           `json:"total_count"`
	TotalPages   int           `json:"total_pages"`
}
