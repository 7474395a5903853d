package main

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"sheetapi/internal/engine"
	"sheetapi/internal/models"

	"github.com/xuri/excelize/v2"
)

func TestInspect(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "growth rates")
	f.SetCellValue("growth rates", "A1", "GROWTH RATES")
	f.SetCellValue("growth rates", "A2", "Year 1")
	f.SetCellValue("growth rates", "B2", 5)
	f.SetCellValue("growth rates", "C2", 10)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	opts := engine.LoadOptions{Sheets: []string{"growth rates"}}

	out, err := inspect(path, opts, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if up, ok := out.(models.UploadResponse); !ok || !reflect.DeepEqual(up.Tables, []string{"growth rates"}) {
		t.Errorf("Unexpected tables output %#v", out)
	}

	out, err = inspect(path, opts, "Growth Rates", "")
	if err != nil {
		t.Fatal(err)
	}
	if rows, ok := out.(models.RowsResponse); !ok || !reflect.DeepEqual(rows.RowNames, []string{"Year 1"}) {
		t.Errorf("Unexpected rows output %#v", out)
	}

	out, err = inspect(path, opts, "growth rates", "Year 1")
	if err != nil {
		t.Fatal(err)
	}
	if sum, ok := out.(models.RowSumResponse); !ok || sum.Sum != 15 {
		t.Errorf("Unexpected sum output %#v", out)
	}

	if _, err := inspect(path, opts, "growth rates", "Year 2"); !errors.Is(err, engine.ErrRowNotFound) {
		t.Errorf("Expected ErrRowNotFound, got %v", err)
	}
	if _, err := inspect(filepath.Join(t.TempDir(), "none.xlsx"), opts, "", ""); err == nil {
		t.Error("Expected error for missing file")
	}
}
