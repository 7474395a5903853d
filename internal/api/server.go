package api

import (
	"sheetapi/internal/engine"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ServerOptions configures the echo instance built by NewServer.
type ServerOptions struct {
	MaxUploadSize string // echo BodyLimit syntax, e.g. "32M"
	CORSOrigins   []string
	Load          engine.LoadOptions
	// AccessLog enables echo's request logger.
	AccessLog bool
}

// NewServer wires middleware and routes around eng.
func NewServer(eng *engine.Engine, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}

	e.Use(middleware.Recover())
	if opts.AccessLog {
		e.Use(middleware.Logger())
	}
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: opts.CORSOrigins}))
	}
	if opts.MaxUploadSize != "" {
		e.Use(middleware.BodyLimit(opts.MaxUploadSize))
	}

	h := NewHandler(eng, opts.Load, e.Logger)
	h.RegisterRoutes(e)
	return e
}
