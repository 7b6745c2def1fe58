package queries

import (
	"math"

	"resource-hub/internal/pkg/errs"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxOffset is the largest row offset the store can address.
	MaxOffset = math.MaxInt32
)

var ErrPageOutOfRange = errs.New("page is beyond the last addressable page")

type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize applies defaults and caps per-page.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset expects a normalized request and rejects pages whose offset would
// not fit the store's int32 OFFSET.
func (p PageRequest) Offset() (int, error) {
	if int64(p.Page-1) > MaxOffset/int64(p.PerPage) {
		return 0, errs.Mark(ErrPageOutOfRange, errs.ErrInvalid)
	}
	return (p.Page - 1) * p.PerPage, nil
}

type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func NewPage[T any](items []T, req PageRequest, total int) *Page[T] {
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.PerPage - 1) / req.PerPage
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		PerPage:    req.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}
}
