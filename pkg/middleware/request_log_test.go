package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"vivero/pkg/logger"
)

func TestRequestLogLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vivero.log")
	cleanup, err := logger.Setup(logger.Config{Path: path})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	e := echo.New()
	e.Use(RequestLog())
	e.GET("/nurseries/:code", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nursery not found")
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nurseries/VIV404", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["msg"] != "http.request" || entry["level"] != "WARN" ||
		entry["route"] != "/nurseries/:code" || entry["path"] != "/nurseries/VIV404" || entry["status"] != float64(404) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}
