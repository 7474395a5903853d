package api

import (
	"errors"
	"net/http"
	"time"

	"sheetapi/internal/engine"
	"sheetapi/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/bytes"
	"github.com/labstack/gommon/log"
)

type Handler struct {
	engine *engine.Engine
	opts   engine.LoadOptions
	logger echo.Logger
}

// NewHandler serves queries from e. A nil logger falls back to a gommon
// logger prefixed "api".
func NewHandler(e *engine.Engine, opts engine.LoadOptions, logger echo.Logger) *Handler {
	if logger == nil {
		logger = log.New("api")
	}
	return &Handler{engine: e, opts: opts, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/upload_file", h.UploadFile)
	e.GET("/list_tables", h.ListTables)
	e.GET("/get_rows", h.GetRows)
	e.GET("/row_sum", h.RowSum)
	e.GET("/healthz", h.Health)
}

// --- HANDLERS ---

// UploadFile ingests the multipart "file" field and registers the workbook.
func (h *Handler) UploadFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return detail(c, http.StatusBadRequest, "Field 'file' is required.")
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	t0 := time.Now()
	wb, err := engine.Load(src, h.opts)
	if err != nil {
		return h.fail(c, err)
	}
	id := h.engine.Register(wb)
	tables := wb.TableNames()

	h.logger.Infof("ingested %s (%s) as %s: %d tables in %v", fh.Filename, bytes.Format(fh.Size), id, len(tables), time.Since(t0))

	return c.JSON(http.StatusOK, models.UploadResponse{FileID: id, Tables: tables})
}

func (h *Handler) ListTables(c echo.Context) error {
	id, ok := requiredParam(c, "file_id")
	if !ok {
		return missingParam(c, "file_id")
	}

	tables, err := h.engine.ListTables(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, models.TablesResponse{Tables: tables})
}

func (h *Handler) GetRows(c echo.Context) error {
	id, ok := requiredParam(c, "file_id")
	if !ok {
		return missingParam(c, "file_id")
	}
	table, ok := requiredParam(c, "table_name")
	if !ok {
		return missingParam(c, "table_name")
	}

	name, rows, err := h.engine.ListRows(id, table)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, models.RowsResponse{TableName: name, RowNames: rows})
}

func (h *Handler) RowSum(c echo.Context) error {
	id, ok := requiredParam(c, "file_id")
	if !ok {
		return missingParam(c, "file_id")
	}
	table, ok := requiredParam(c, "table_name")
	if !ok {
		return missingParam(c, "table_name")
	}
	row, ok := requiredParam(c, "row_name")
	if !ok {
		return missingParam(c, "row_name")
	}

	name, res, err := h.engine.SumRow(id, table, row)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, models.RowSumResponse{Table: name, Row: res.Label, Sum: res.Sum})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Workbooks: h.engine.Workbooks()})
}

// fail maps engine errors onto status codes. Unknown errors go to echo's
// error handler as a 500.
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return detail(c, http.StatusNotFound, "Invalid file_id.")
	case errors.Is(err, engine.ErrTableNotFound), errors.Is(err, engine.ErrRowNotFound):
		return detail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrMissingSheet),
		errors.Is(err, engine.ErrDuplicateTable),
		errors.Is(err, engine.ErrInvalidWorkbook):
		h.logger.Warnf("rejected upload: %v", err)
		return detail(c, http.StatusBadRequest, err.Error())
	}
	h.logger.Errorf("request %s failed: %v", c.Request().URL.Path, err)
	return err
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, models.ErrorResponse{Detail: msg})
}

// requiredParam reads a query parameter; present-but-empty counts as given,
// matching how the table and row lookups treat blank names.
func requiredParam(c echo.Context, name string) (string, bool) {
	if _, ok := c.QueryParams()[name]; !ok {
		return "", false
	}
	return c.QueryParam(name), true
}

func missingParam(c echo.Context, name string) error {
	return detail(c, http.StatusBadRequest, "Query parameter '"+name+"' is required.")
}
