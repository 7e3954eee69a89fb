package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 50
)

// PageRequest selects one page of the post listing. Pages are 1-based.
type PageRequest struct {
	Page  int `json:"page" validate:"gte=1"`
	Limit int `json:"limit" validate:"gte=1,lte=50"`
}

// NewPageRequest returns the first page with the default size.
func NewPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, Limit: DefaultLimit}
}

func (p PageRequest) Validate() error {
	if err := validate.Struct(p); err != nil {
		return describe(err)
	}
	return nil
}

// Offset is the number of posts that precede this page. It saturates at
// math.MaxInt, so a page past the end stays past the end.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}
