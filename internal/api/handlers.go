package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/KaramelBytes/tableprof/internal/report"
)

// Handler serves a finished profiling run as JSON. The run may be attached
// after the routes are live; until then every endpoint answers 503.
type Handler struct {
	mu  sync.RWMutex
	run *report.Run
}

func NewHandler(run *report.Run) *Handler {
	return &Handler{run: run}
}

// SetRun swaps in a (new) run.
func (h *Handler) SetRun(run *report.Run) {
	h.mu.Lock()
	h.run = run
	h.mu.Unlock()
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/run", h.GetRun)
	api.GET("/tables", h.GetTables)
	api.GET("/tables/:name", h.GetTable)
}

func (h *Handler) current() *report.Run {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.run
}

// GetRun returns the whole run manifest.
func (h *Handler) GetRun(c echo.Context) error {
	run := h.current()
	if run == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no run loaded"})
	}
	return c.JSON(http.StatusOK, run)
}

// GetTables lists the profiled table names.
func (h *Handler) GetTables(c echo.Context) error {
	run := h.current()
	if run == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no run loaded"})
	}
	names := make([]string, 0, len(run.Tables))
	for _, t := range run.Tables {
		names = append(names, t.Table)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"run_id": run.ID,
		"tables": names,
		"total":  len(names),
	})
}

// GetTable returns one table's full profile.
func (h *Handler) GetTable(c echo.Context) error {
	run := h.current()
	if run == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no run loaded"})
	}
	name := c.Param("name")
	t, ok := run.Table(name)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown table: " + name})
	}
	return c.JSON(http.StatusOK, t)
}
