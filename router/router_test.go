package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"vivero/database"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.OpenAndMigrate(database.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return Build(db, 1<<20)
}

func do(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	out := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, status, rec.Body.String())
	}
}

func seed(t *testing.T, e *echo.Echo) {
	t.Helper()
	rec, _ := do(t, e, http.MethodPost, "/producers", map[string]any{
		"identity_document": "654321098", "first_name": "Marta", "last_name": "López",
		"phone": "5554321", "email": "marta@example.com",
	})
	expect(t, rec, http.StatusCreated)
	rec, _ = do(t, e, http.MethodPost, "/farms", map[string]any{
		"cadastral_number": "FNC004", "municipality": "Medellín", "producer_document": "654321098",
	})
	expect(t, rec, http.StatusCreated)
	rec, _ = do(t, e, http.MethodPost, "/nurseries", map[string]any{
		"code": "VIV003", "crop_type": "Arroz", "farm_cadastral": "FNC004",
	})
	expect(t, rec, http.StatusCreated)
	rec, _ = do(t, e, http.MethodPost, "/catalog/fungus", map[string]any{
		"registry_id": "ICA123", "product_name": "Fungicida X", "application_frequency": 15,
		"value": "100.00", "withdrawal_period": 7, "fungus_name": "Oídio",
	})
	expect(t, rec, http.StatusCreated)
}

func TestRecordLaborEndToEnd(t *testing.T) {
	e := newServer(t)
	seed(t, e)

	rec, body := do(t, e, http.MethodPost, "/labors", map[string]any{
		"nursery_code": "VIV003", "date": "2024-09-15", "description": "Aplicación de fungicida",
		"products": []map[string]string{{"kind": "fungus", "registry_id": "ICA123"}},
	})
	expect(t, rec, http.StatusCreated)
	id := int(body["labor_id"].(float64))

	rec, body = do(t, e, http.MethodGet, fmt.Sprintf("/labors/%d", id), nil)
	expect(t, rec, http.StatusOK)
	if body["display"] != "Labor Aplicación de fungicida en 2024-09-15" {
		t.Fatalf("display = %v", body["display"])
	}

	rec, _ = do(t, e, http.MethodGet, "/nurseries/VIV003/labors?from=2024-09-01&to=2024-09-30", nil)
	expect(t, rec, http.StatusOK)
	var labors []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &labors)
	if len(labors) != 1 {
		t.Fatalf("labors in range = %d", len(labors))
	}

	rec, _ = do(t, e, http.MethodGet, "/catalog/fungus/ICA123/labors", nil)
	expect(t, rec, http.StatusOK)
	_ = json.Unmarshal(rec.Body.Bytes(), &labors)
	if len(labors) != 1 {
		t.Fatalf("labors of product = %d", len(labors))
	}

	rec, _ = do(t, e, http.MethodDelete, fmt.Sprintf("/labors/%d/products/fungus/ICA123", id), nil)
	expect(t, rec, http.StatusNoContent)
	rec, _ = do(t, e, http.MethodDelete, fmt.Sprintf("/labors/%d", id), nil)
	expect(t, rec, http.StatusNoContent)
	rec, _ = do(t, e, http.MethodGet, fmt.Sprintf("/labors/%d", id), nil)
	expect(t, rec, http.StatusNotFound)
}

func TestErrorMapping(t *testing.T) {
	e := newServer(t)
	seed(t, e)

	rec, body := do(t, e, http.MethodPost, "/producers", map[string]any{
		"identity_document": "654321098", "first_name": "Otra", "last_name": "Persona",
	})
	expect(t, rec, http.StatusBadRequest)
	fields, _ := body["fields"].(map[string]any)
	if _, ok := fields["identity_document"]; !ok {
		t.Fatalf("expected identity_document problem, got %v", body)
	}

	rec, body = do(t, e, http.MethodPost, "/labors", map[string]any{
		"nursery_code": "VIV003", "date": "15-09-2024", "description": "Riego",
	})
	expect(t, rec, http.StatusBadRequest)
	fields, _ = body["fields"].(map[string]any)
	if _, ok := fields["date"]; !ok {
		t.Fatalf("expected date problem, got %v", body)
	}

	rec, _ = do(t, e, http.MethodGet, "/producers/000", nil)
	expect(t, rec, http.StatusNotFound)
	rec, _ = do(t, e, http.MethodGet, "/labors/abc", nil)
	expect(t, rec, http.StatusBadRequest)
	rec, _ = do(t, e, http.MethodGet, "/catalog/pest/ICA123", nil)
	expect(t, rec, http.StatusNotFound)
}

func TestCatalogImportUpload(t *testing.T) {
	e := newServer(t)

	upload := func(name, content string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		_, _ = fw.Write([]byte(content))
		_ = mw.Close()
		req := httptest.NewRequest(http.MethodPost, "/catalog/pest/import", &buf)
		req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	csv := "registry_id,product_name,application_frequency,value,withdrawal_period,pest_name\n" +
		"ICA777,Insecticida Y,21,55.50,14,Gusano cogollero\n"
	rec := upload("plagas.csv", csv)
	expect(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"created":1`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = upload("plagas.csv", "registry_id,product_name,pest_name\nICA778,,Broca\n")
	expect(t, rec, http.StatusBadRequest)

	rec = upload("plagas.json", csv)
	expect(t, rec, http.StatusBadRequest)

	rec = upload("plagas.xlsx", "not a workbook")
	expect(t, rec, http.StatusBadRequest)

	rec, body := do(t, e, http.MethodGet, "/catalog/pest/ICA777", nil)
	expect(t, rec, http.StatusOK)
	if body["display"] != "Insecticida Y (ICA777)" {
		t.Fatalf("display = %v", body["display"])
	}
}

func TestHealth(t *testing.T) {
	e := newServer(t)
	seed(t, e)
	rec, body := do(t, e, http.MethodGet, "/health", nil)
	expect(t, rec, http.StatusOK)
	tables, _ := body["tables"].(map[string]any)
	if tables["producers"] != float64(1) || tables["fungus_control_products"] != float64(1) {
		t.Fatalf("unexpected tables: %v", tables)
	}
}

func TestUnknownReferencesAreValidationErrors(t *testing.T) {
	e := newServer(t)
	seed(t, e)

	cases := []struct {
		path  string
		body  map[string]any
		field string
	}{
		{"/farms", map[string]any{"cadastral_number": "FNC010", "municipality": "Cali", "producer_document": "000"}, "producer_document"},
		{"/nurseries", map[string]any{"code": "VIV010", "crop_type": "Maíz", "farm_cadastral": "FNC999"}, "farm_cadastral"},
		{"/labors", map[string]any{"nursery_code": "VIV999", "date": "2024-09-15", "description": "Riego"}, "nursery_code"},
	}
	for _, tc := range cases {
		rec, body := do(t, e, http.MethodPost, tc.path, tc.body)
		expect(t, rec, http.StatusBadRequest)
		fields, _ := body["fields"].(map[string]any)
		if _, ok := fields[tc.field]; !ok {
			t.Errorf("POST %s: expected %s problem, got %v", tc.path, tc.field, body)
		}
	}
}
