// Package config loads server and ingestion settings.
// Priority: defaults < YAML file < environment < command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"sheetapi/internal/engine"

	"github.com/labstack/gommon/bytes"
	"gopkg.in/yaml.v3"
)

// Config holds all settings.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Ingest IngestConfig `yaml:"ingest"`
}

// ServerConfig for the HTTP server.
type ServerConfig struct {
	Addr          string   `yaml:"addr"`
	MaxUploadSize string   `yaml:"max_upload_size"` // e.g., "32M"
	CORSOrigins   []string `yaml:"cors_origins"`
	AccessLog     *bool    `yaml:"access_log"`
}

// IngestConfig controls how uploads become workbooks.
type IngestConfig struct {
	Sheets             []string `yaml:"sheets"`
	DropColumns        []string `yaml:"drop_columns"`
	AllowMissingSheets bool     `yaml:"allow_missing_sheets"`
}

// Default returns the default configuration.
func Default() *Config {
	accessLog := true
	load := engine.DefaultLoadOptions()
	return &Config{
		Server: ServerConfig{
			Addr:          "localhost:9090",
			MaxUploadSize: "32M",
			CORSOrigins:   []string{"*"},
			AccessLog:     &accessLog,
		},
		Ingest: IngestConfig{
			Sheets:      append([]string(nil), load.Sheets...),
			DropColumns: append([]string(nil), load.DropColumns...),
		},
	}
}

// Load reads path (if non-empty) over the defaults and then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		var partial Config
		if err := yaml.Unmarshal(data, &partial); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.merge(&partial)
	}
	cfg.loadEnv()
	return cfg, nil
}

// merge copies non-zero values from src.
func (c *Config) merge(src *Config) {
	if src.Server.Addr != "" {
		c.Server.Addr = src.Server.Addr
	}
	if src.Server.MaxUploadSize != "" {
		c.Server.MaxUploadSize = src.Server.MaxUploadSize
	}
	if len(src.Server.CORSOrigins) > 0 {
		c.Server.CORSOrigins = src.Server.CORSOrigins
	}
	if src.Server.AccessLog != nil {
		c.Server.AccessLog = src.Server.AccessLog
	}

	if len(src.Ingest.Sheets) > 0 {
		c.Ingest.Sheets = src.Ingest.Sheets
	}
	if src.Ingest.DropColumns != nil {
		c.Ingest.DropColumns = src.Ingest.DropColumns
	}
	if src.Ingest.AllowMissingSheets {
		c.Ingest.AllowMissingSheets = true
	}
}

// loadEnv applies SHEETAPI_* environment overrides.
func (c *Config) loadEnv() {
	if v := os.Getenv("SHEETAPI_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SHEETAPI_MAX_UPLOAD"); v != "" {
		c.Server.MaxUploadSize = v
	}
	if v := os.Getenv("SHEETAPI_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("SHEETAPI_SHEETS"); v != "" {
		c.Ingest.Sheets = splitList(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.MaxUploadSize != "" {
		if _, err := bytes.Parse(c.Server.MaxUploadSize); err != nil {
			errs = append(errs, fmt.Errorf("server.max_upload_size %q: %w", c.Server.MaxUploadSize, err))
		}
	}

	if len(c.Ingest.Sheets) == 0 {
		errs = append(errs, errors.New("ingest.sheets must list at least one sheet"))
	}
	seen := make(map[string]string, len(c.Ingest.Sheets))
	for _, s := range c.Ingest.Sheets {
		key := strings.ToLower(strings.TrimSpace(s))
		if prev, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("ingest.sheets: %w", &engine.DuplicateTableError{Name: s, Existing: prev}))
			continue
		}
		seen[key] = s
	}

	return errors.Join(errs...)
}

// LoadOptions converts the ingest section for the engine loader.
func (c *Config) LoadOptions() engine.LoadOptions {
	return engine.LoadOptions{
		Sheets:             c.Ingest.Sheets,
		DropColumns:        c.Ingest.DropColumns,
		AllowMissingSheets: c.Ingest.AllowMissingSheets,
	}
}

// AccessLogEnabled reports whether request logging is on.
func (c *Config) AccessLogEnabled() bool {
	return c.Server.AccessLog == nil || *c.Server.AccessLog
}
