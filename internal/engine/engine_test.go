package engine

import (
	"errors"
	"reflect"
	"testing"
)

func growthWorkbook(t *testing.T) *Workbook {
	t.Helper()
	wb, err := NewWorkbook(
		mustTable(t, "investment measures", []string{"INVESTMENT MEASURES", "Value"},
			[]Cell{Text("NPV"), Float(1200.5)},
		),
		mustTable(t, "growth rates", []string{"GROWTH RATES", "A", "B"},
			[]Cell{Text("Year 1"), Int(5), Int(10)},
			[]Cell{Text("Year 2"), Text("n/a"), Int(7)},
		),
	)
	if err != nil {
		t.Fatal(err)
	}
	return wb
}

func TestEngineQueries(t *testing.T) {
	e := New(nil)
	h := e.Register(growthWorkbook(t))

	tables, err := e.ListTables(h)
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	if !reflect.DeepEqual(tables, []string{"investment measures", "growth rates"}) {
		t.Errorf("Unexpected tables %v", tables)
	}

	name, rows, err := e.ListRows(h, "  Growth Rates ")
	if err != nil {
		t.Fatalf("ListRows failed: %v", err)
	}
	if name != "growth rates" {
		t.Errorf("Expected canonical 'growth rates', got %q", name)
	}
	if !reflect.DeepEqual(rows, []string{"Year 1", "Year 2"}) {
		t.Errorf("Unexpected rows %v", rows)
	}

	name, sum, err := e.SumRow(h, "GROWTH rates", "Year 2")
	if err != nil {
		t.Fatalf("SumRow failed: %v", err)
	}
	if name != "growth rates" || sum.Label != "Year 2" || sum.Sum != 7 {
		t.Errorf("SumRow = %q, %+v", name, sum)
	}
}

func TestEngineErrors(t *testing.T) {
	e := New(NewStore())
	h := e.Register(growthWorkbook(t))

	if _, err := e.ListTables("bogus"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ListTables: expected ErrNotFound, got %v", err)
	}
	if _, _, err := e.ListRows("bogus", "growth rates"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ListRows: expected ErrNotFound, got %v", err)
	}
	if _, _, err := e.SumRow("bogus", "nothing", "nothing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SumRow: expected ErrNotFound, got %v", err)
	}

	if _, _, err := e.ListRows(h, "discount rate"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("ListRows: expected ErrTableNotFound, got %v", err)
	}
	if _, _, err := e.SumRow(h, "growth rates", "Year 9"); !errors.Is(err, ErrRowNotFound) {
		t.Errorf("SumRow: expected ErrRowNotFound, got %v", err)
	}

	// Failed lookups leave the workbook untouched.
	_, sum, err := e.SumRow(h, "growth rates", "Year 1")
	if err != nil || sum.Sum != 15 {
		t.Errorf("Follow-up SumRow = %+v, %v", sum, err)
	}
	if e.Workbooks() != 1 {
		t.Errorf("Expected 1 workbook, got %d", e.Workbooks())
	}
}
