package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sheetapi/internal/engine"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if len(cfg.Ingest.Sheets) != 8 {
		t.Errorf("Expected 8 default sheets, got %d", len(cfg.Ingest.Sheets))
	}
	if !cfg.AccessLogEnabled() {
		t.Error("Expected access log on by default")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetapi.yaml")
	yml := []byte(`
server:
  addr: ":8081"
  access_log: false
ingest:
  sheets: ["growth rates", "discount rate"]
  drop_columns: []
  allow_missing_sheets: true
`)
	if err := os.WriteFile(path, yml, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHEETAPI_MAX_UPLOAD", "8M")
	t.Setenv("SHEETAPI_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":8081" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadSize != "8M" {
		t.Errorf("MaxUploadSize = %q", cfg.Server.MaxUploadSize)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.AccessLogEnabled() {
		t.Error("Expected access log disabled")
	}

	opts := cfg.LoadOptions()
	want := engine.LoadOptions{
		Sheets:             []string{"growth rates", "discount rate"},
		DropColumns:        []string{},
		AllowMissingSheets: true,
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("LoadOptions() = %+v, expected %+v", opts, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Server.MaxUploadSize = "lots"
	cfg.Ingest.Sheets = []string{"Growth Rates", " growth rates "}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	if !errors.Is(err, engine.ErrDuplicateTable) {
		t.Errorf("Expected ErrDuplicateTable in %v", err)
	}

	cfg = Default()
	cfg.Ingest.Sheets = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty sheet list")
	}
}
