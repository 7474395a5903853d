package engine

import (
	"fmt"
	"math"
	"strconv"
)

// CellKind tags the value held by a Cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellText
	CellInt
	CellFloat
)

// Cell is a single grid value: empty, text, or a measurement.
type Cell struct {
	Kind CellKind
	s    string
	i    int64
	f    float64
}

func Empty() Cell { return Cell{} }

func Text(s string) Cell { return Cell{Kind: CellText, s: s} }

func Int(i int64) Cell { return Cell{Kind: CellInt, i: i} }

func Float(f float64) Cell { return Cell{Kind: CellFloat, f: f} }

func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

func (c Cell) GoString() string {
	return fmt.Sprintf("engine.Cell{Kind: %d, Value: %q}", c.Kind, c.String())
}

// String renders the cell as text. Integral measurements have no fractional
// part; other floats use the shortest form that parses back to the same value.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.s
	case CellInt:
		return strconv.FormatInt(c.i, 10)
	case CellFloat:
		return formatFloat(c.f)
	}
	return ""
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Table is a named grid. Column 0 is the label column. A Table cannot be
// changed once built; accessors hand out copies.
type Table struct {
	name    string
	columns []string
	rows    [][]Cell
}

// NewTable checks that column names are unique and every row is exactly as
// wide as the column list. The inputs are copied.
func NewTable(name string, columns []string, rows [][]Cell) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("table %q: %w: %q", name, ErrDuplicateColumn, col)
		}
		seen[col] = struct{}{}
	}
	owned := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("table %q row %d: %w: got %d cells, want %d",
				name, i, ErrRaggedRow, len(row), len(columns))
		}
		owned[i] = append([]Cell(nil), row...)
	}
	return &Table{name: name, columns: append([]string(nil), columns...), rows: owned}, nil
}

// Name is the canonical table name.
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) NumRows() int { return len(t.rows) }

// Row returns a copy of row i.
func (t *Table) Row(i int) []Cell {
	return append([]Cell(nil), t.rows[i]...)
}

// label returns the label cell of row i, or an empty cell when the table has
// no columns.
func (t *Table) label(i int) Cell {
	if len(t.rows[i]) == 0 {
		return Empty()
	}
	return t.rows[i][0]
}
