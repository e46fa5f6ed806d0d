package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingColumns   = errors.New("missing required columns")
	ErrRowCountMismatch = errors.New("row count mismatch after enrichment")
)

// SchemaError lists the required columns absent from an input table.
type SchemaError struct {
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumns }

// RowCountError carries both counts of a failed integrity check.
type RowCountError struct {
	In, Out int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("%s: started with %d, ended with %d", ErrRowCountMismatch, e.In, e.Out)
}

func (e *RowCountError) Unwrap() error { return ErrRowCountMismatch }
