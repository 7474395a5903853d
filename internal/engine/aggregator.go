package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RowSum is the result of summing one row.
type RowSum struct {
	Label string
	Sum   float64
	// Counted is how many data cells were added into Sum.
	Counted int
	// Overflowed is how many numeric cells were left out because adding
	// them would have overflowed float64.
	Overflowed int
}

// numberLiteral accepts an optionally signed decimal with an optional
// fractional part and an optional exponent: "7", "-3.", "+.5", "1.2e-3".
var numberLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// SumRow finds the first row whose trimmed label equals the trimmed rowName
// and adds up the data cells that coerce to a number. Cells that do not
// coerce are skipped; a row with none sums to 0. A value that would push the
// running sum to infinity is skipped as well, so Sum is always finite.
func SumRow(t *Table, rowName string) (RowSum, error) {
	want := strings.TrimSpace(rowName)

	for i, row := range t.rows {
		// Blank label cells identify nothing and never match, not even a
		// blank rowName.
		cell := t.label(i)
		if cell.IsEmpty() {
			continue
		}
		label := strings.TrimSpace(cell.String())
		if label != want {
			continue
		}

		// First match wins; later rows with the same label are never read.
		res := RowSum{Label: label}
		if len(row) == 0 {
			return res, nil
		}
		for _, cell := range row[1:] {
			v, ok := Coerce(cell)
			if !ok {
				continue
			}
			next := res.Sum + v
			if math.IsInf(next, 0) {
				res.Overflowed++
				continue
			}
			res.Sum = next
			res.Counted++
		}
		return res, nil
	}

	return RowSum{}, &RowNotFoundError{Table: t.name, Row: rowName}
}

// Coerce converts a cell to a float64. Measurements convert directly, text
// converts when it matches numberLiteral after trimming. Empty cells, other
// text, NaN, infinities and out-of-range literals do not convert.
func Coerce(c Cell) (float64, bool) {
	switch c.Kind {
	case CellInt:
		return float64(c.i), true
	case CellFloat:
		if math.IsNaN(c.f) || math.IsInf(c.f, 0) {
			return 0, false
		}
		return c.f, true
	case CellText:
		return parseNumber(c.s)
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numberLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
