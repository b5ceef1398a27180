package search

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is returned for per-request validation failures:
// a non-positive result limit or an unrecognized category.
var ErrInvalidQuery = errors.New("invalid query")

// InvalidQueryError carries the reason a query was rejected
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Reason)
}

func (e *InvalidQueryError) Is(target error) bool { return target == ErrInvalidQuery }
