package engine

import "strings"

// Workbook is the immutable set of tables produced by one ingestion.
type Workbook struct {
	names  []string
	tables map[string]*Table
	index  map[string]string // normalized name -> canonical name
}

// NewWorkbook builds a workbook from tables in the given order. Two tables
// whose names are equal after trimming and lower-casing fail with a
// DuplicateTableError.
func NewWorkbook(tables ...*Table) (*Workbook, error) {
	wb := &Workbook{
		names:  make([]string, 0, len(tables)),
		tables: make(map[string]*Table, len(tables)),
		index:  make(map[string]string, len(tables)),
	}
	for _, t := range tables {
		name := t.Name()
		key := normalizeName(name)
		if existing, ok := wb.index[key]; ok {
			return nil, &DuplicateTableError{Name: name, Existing: existing}
		}
		wb.index[key] = name
		wb.tables[name] = t
		wb.names = append(wb.names, name)
	}
	return wb, nil
}

// TableNames returns the canonical table names in ingestion order.
func (wb *Workbook) TableNames() []string {
	out := make([]string, len(wb.names))
	copy(out, wb.names)
	return out
}

// Table returns the table stored under its canonical name.
func (wb *Workbook) Table(canonical string) (*Table, bool) {
	t, ok := wb.tables[canonical]
	return t, ok
}

// Resolve maps a user-supplied table name to its canonical form, ignoring
// case and surrounding whitespace.
func (wb *Workbook) Resolve(requested string) (string, error) {
	if name, ok := wb.index[normalizeName(requested)]; ok {
		return name, nil
	}
	return "", &TableNotFoundError{Name: requested}
}

// Lookup resolves requested and returns the matching table.
func (wb *Workbook) Lookup(requested string) (*Table, error) {
	name, err := wb.Resolve(requested)
	if err != nil {
		return nil, err
	}
	return wb.tables[name], nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
