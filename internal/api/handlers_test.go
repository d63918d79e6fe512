package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/KaramelBytes/tableprof/internal/dataset"
	"github.com/KaramelBytes/tableprof/internal/profile"
	"github.com/KaramelBytes/tableprof/internal/report"
)

func fptr(v float64) *float64 { return &v }

func testRun(t *testing.T) *report.Run {
	t.Helper()
	ds, err := dataset.New("orders", []*dataset.Column{
		dataset.NewNumericColumn("amount", []*float64{fptr(1), fptr(2), fptr(2), fptr(9)}),
	})
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	res, err := profile.Profile(ds, profile.DefaultOptions())
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	run := report.NewRun()
	run.AddTable(res, "orders.csv", time.Now())
	return run
}

func doRequest(h *Handler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServesRun(t *testing.T) {
	h := NewHandler(testRun(t))
	rec := doRequest(h, "/api/run")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var run report.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(run.Tables) != 1 || run.Tables[0].Table != "orders" {
		t.Fatalf("run = %+v", run)
	}
}

func TestListsTables(t *testing.T) {
	h := NewHandler(testRun(t))
	rec := doRequest(h, "/api/tables")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Tables []string `json:"tables"`
		Total  int      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || body.Tables[0] != "orders" {
		t.Fatalf("body = %+v", body)
	}
}

func TestTableLookup(t *testing.T) {
	h := NewHandler(testRun(t))
	if rec := doRequest(h, "/api/tables/orders"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec := doRequest(h, "/api/tables/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUnavailableUntilRunLoaded(t *testing.T) {
	h := NewHandler(nil)
	if rec := doRequest(h, "/api/run"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	h.SetRun(testRun(t))
	if rec := doRequest(h, "/api/run"); rec.Code != http.StatusOK {
		t.Fatalf("status after load = %d", rec.Code)
	}
}
