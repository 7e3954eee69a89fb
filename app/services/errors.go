package services

import (
	"errors"
	"fmt"

	"simpleblog/app/repositories"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInternal        = errors.New("internal error")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// storeError maps a Store failure onto the service error set. Absence
// becomes notFound; anything else is an engine fault.
func storeError(err, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
