package engine

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below unwraps to one of these so callers
// can branch with errors.Is.
var (
	ErrNotFound        = errors.New("workbook not found")
	ErrTableNotFound   = errors.New("table not found")
	ErrRowNotFound     = errors.New("row not found")
	ErrDuplicateTable  = errors.New("duplicate table")
	ErrMissingSheet    = errors.New("missing sheet")
	ErrInvalidWorkbook = errors.New("invalid workbook")
	ErrRaggedRow       = errors.New("row width does not match columns")
	ErrDuplicateColumn = errors.New("duplicate column")
)

// TableNotFoundError reports a requested table name with no match in the workbook.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("Table '%s' not found.", e.Name)
}

func (e *TableNotFoundError) Unwrap() error { return ErrTableNotFound }

// RowNotFoundError reports a row label with no match in a table.
type RowNotFoundError struct {
	Table string
	Row   string
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("Row '%s' not found in table '%s'.", e.Row, e.Table)
}

func (e *RowNotFoundError) Unwrap() error { return ErrRowNotFound }

// DuplicateTableError is returned when two table names collapse to the same
// lookup key.
type DuplicateTableError struct {
	Name     string
	Existing string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table %q collides with %q", e.Name, e.Existing)
}

func (e *DuplicateTableError) Unwrap() error { return ErrDuplicateTable }

// MissingSheetError is returned by the loader when a recognized sheet is absent.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("Worksheet named '%s' not found", e.Sheet)
}

func (e *MissingSheetError) Unwrap() error { return ErrMissingSheet }
