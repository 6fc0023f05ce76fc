package product

import "errors"

var (
	ErrNotFound     = errors.New("transaction not found")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)
