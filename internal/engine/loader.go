package engine

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultSheets is the recognized sheet set of an investment workbook.
var DefaultSheets = []string{
	"investment measures",
	"growth rates",
	"working capital",
	"discount rate",
	"cashflow details",
	"initial investment",
	"book value & depreciation",
	"operating cashflows",
}

// LoadOptions selects which sheets become tables and how they are cleaned.
type LoadOptions struct {
	Sheets []string
	// DropColumns are header names removed from every table.
	DropColumns []string
	// AllowMissingSheets skips absent sheets instead of failing.
	AllowMissingSheets bool
}

// DefaultLoadOptions reads DefaultSheets and drops the spreadsheet's
// "Column1" housekeeping column.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sheets:      DefaultSheets,
		DropColumns: []string{"Column1"},
	}
}

// Load parses an xlsx stream into a Workbook.
func Load(r io.Reader, opts LoadOptions) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
	}
	defer f.Close()
	return loadFile(f, opts)
}

// LoadFile parses the xlsx file at path into a Workbook.
func LoadFile(path string, opts LoadOptions) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
	}
	defer f.Close()
	return loadFile(f, opts)
}

type rawSheet struct {
	name  string
	rows  [][]string
	types [][]excelize.CellType // aligned with rows
}

func loadFile(f *excelize.File, opts LoadOptions) (*Workbook, error) {
	available := f.GetSheetList()

	// excelize reads are done one sheet at a time; the conversion below
	// works on plain strings and fans out.
	var raws []rawSheet
	for _, want := range opts.Sheets {
		sheet, ok := findSheet(available, want)
		if !ok {
			if opts.AllowMissingSheets {
				continue
			}
			return nil, &MissingSheetError{Sheet: want}
		}
		raw, err := readSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %w", ErrInvalidWorkbook, sheet, err)
		}
		raw.name = want
		raws = append(raws, raw)
	}

	drop := make(map[string]struct{}, len(opts.DropColumns))
	for _, c := range opts.DropColumns {
		drop[c] = struct{}{}
	}

	tables := make([]*Table, len(raws))
	var g errgroup.Group
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			t, err := buildTable(raw, drop)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewWorkbook(tables...)
}

// readSheet reads raw cell values together with each cell's stored type, so
// text that happens to look numeric stays text.
func readSheet(f *excelize.File, sheet string) (rawSheet, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return rawSheet{}, err
	}
	types := make([][]excelize.CellType, len(rows))
	for r, row := range rows {
		types[r] = make([]excelize.CellType, len(row))
		for c, v := range row {
			if v == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return rawSheet{}, err
			}
			if types[r][c], err = f.GetCellType(sheet, name); err != nil {
				return rawSheet{}, err
			}
		}
	}
	return rawSheet{rows: rows, types: types}, nil
}

// findSheet prefers an exact name match, then falls back to a match that
// ignores case and surrounding whitespace.
func findSheet(available []string, want string) (string, bool) {
	for _, s := range available {
		if s == want {
			return s, true
		}
	}
	key := normalizeName(want)
	for _, s := range available {
		if normalizeName(s) == key {
			return s, true
		}
	}
	return "", false
}

func buildTable(raw rawSheet, drop map[string]struct{}) (*Table, error) {
	if len(raw.rows) == 0 {
		return NewTable(raw.name, []string{}, nil)
	}

	header, body := raw.rows[0], raw.rows[1:]

	width := len(header)
	for _, r := range body {
		if len(r) > width {
			width = len(r)
		}
	}

	names := headerNames(header, width)

	keep := make([]int, 0, width)
	columns := make([]string, 0, width)
	for i, name := range names {
		if _, skip := drop[name]; skip {
			continue
		}
		keep = append(keep, i)
		columns = append(columns, name)
	}

	rows := make([][]Cell, len(body))
	for r, src := range body {
		row := make([]Cell, len(keep))
		for c, idx := range keep {
			if idx < len(src) {
				row[c] = parseCell(src[idx], raw.types[r+1][idx])
			}
		}
		rows[r] = row
	}

	return NewTable(raw.name, columns, rows)
}

// headerNames names width columns from the header row. Blank names become
// "Unnamed: <i>" and repeats get ".1", ".2", ... suffixes.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	used := make(map[string]struct{}, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for n := 1; ; n++ {
			if _, dup := used[name]; !dup {
				break
			}
			name = base + "." + strconv.Itoa(n)
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}

// parseCell turns a raw cell value into a Cell. String and inline-string
// cells stay text whatever they contain; only numeric cells become Int or
// Float.
func parseCell(s string, typ excelize.CellType) Cell {
	if s == "" {
		return Empty()
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return Text(s)
	case excelize.CellTypeBool:
		if s == "1" || strings.EqualFold(s, "true") {
			return Text("TRUE")
		}
		return Text("FALSE")
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if numberLiteral.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
	}
	return Text(s)
}
