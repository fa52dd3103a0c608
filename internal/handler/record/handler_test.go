package record

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zhouzirui/fpo-database/backend/internal/metrics"
	"github.com/zhouzirui/fpo-database/backend/internal/model/record"
)

var sevenDirectors = []record.Director{
	{DIN: "03091543", Name: "Vilas Shinde", Designation: "Managing Director", AppointmentDate: "2010-09-20"},
	{DIN: "05208932", Name: "Sunita Pawar", Designation: "Director", AppointmentDate: "2012-03-12"},
}

func fixtureRecords() []record.Record {
	items := make([]record.Record, 0, 25)
	for i := 1; i <= 25; i++ {
		items = append(items, record.Record{
			ID:                 i,
			NumberOfMembers:    i * 3,
			CompanyName:        fmt.Sprintf("FPO %02d", i),
			RegisteredAddress:  "Nashik",
			CIN:                fmt.Sprintf("U01400MH2019PTC%06d", i),
			ActiveCompliance:   "ACTIVE compliant",
			ROCCode:            "RoC-Mumbai",
			RegistrationNumber: 300000 + i,
			Directors:          []record.Director{},
		})
	}
	items[6].Directors = sevenDirectors
	return items
}

func setupRouter() (*chi.Mux, []record.Record, *metrics.Metrics) {
	items := fixtureRecords()
	m := metrics.New()
	handler := New(record.NewMemoryStore(items, "fixture"), m)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, items, m
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodePage(t *testing.T, resp *httptest.ResponseRecorder) record.Page {
	t.Helper()
	var page record.Page
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}

func TestListRecordsDefaults(t *testing.T) {
	r, items, _ := setupRouter()

	resp := get(r, "/records")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	page := decodePage(t, resp)
	if page.Page != 1 || page.PerPage != 12 || page.TotalPages != 3 {
		t.Fatalf("unexpected metadata: %+v", page)
	}
	if !reflect.DeepEqual(page.Records, items[0:12]) {
		t.Fatalf("unexpected records window")
	}
}

func TestListRecordsLastPage(t *testing.T) {
	r, items, _ := setupRouter()

	page := decodePage(t, get(r, "/records?page=3&per_page=12"))
	if len(page.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(page.Records))
	}
	if page.Records[0].ID != items[24].ID {
		t.Fatalf("expected record %d, got %d", items[24].ID, page.Records[0].ID)
	}
}

func TestListRecordsBeyondLastPage(t *testing.T) {
	r, _, _ := setupRouter()

	resp := get(r, "/records?page=10")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(raw["records"]) != "[]" {
		t.Fatalf("expected empty records array, got %s", raw["records"])
	}
	if string(raw["total_pages"]) != "3" {
		t.Fatalf("expected total_pages 3, got %s", raw["total_pages"])
	}
}

func TestListRecordsEmptyParamsUseDefaults(t *testing.T) {
	r, _, _ := setupRouter()

	page := decodePage(t, get(r, "/records?page=&per_page="))
	if page.Page != 1 || page.PerPage != 12 {
		t.Fatalf("unexpected metadata: %+v", page)
	}
}

func TestListRecordsRejectsBadPagination(t *testing.T) {
	r, _, _ := setupRouter()

	for _, path := range []string{
		"/records?per_page=0",
		"/records?per_page=-3",
		"/records?page=0",
		"/records?page=-1",
		"/records?page=abc",
		"/records?per_page=1.5",
	} {
		resp := get(r, path)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, resp.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil || body["detail"] == "" {
			t.Fatalf("%s: expected detail message, got %s", path, resp.Body.String())
		}
	}
}

func TestGetRecordByID(t *testing.T) {
	r, items, m := setupRouter()

	resp := get(r, "/records/7")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got record.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if !reflect.DeepEqual(got, items[6]) {
		t.Fatalf("unexpected record: %+v", got)
	}
	if v := testutil.ToFloat64(m.RecordLookups.WithLabelValues("found")); v != 1 {
		t.Fatalf("expected 1 found lookup, got %v", v)
	}
}

func TestGetRecordJSONShape(t *testing.T) {
	r, _, _ := setupRouter()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(get(r, "/records/7").Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{
		"data_id", "data_number_of_members", "data_company_name", "data_registered_address",
		"data_cin", "data_active_compliance", "data_roc_code", "data_registration_number", "data_directors",
	} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing key %q in %v", key, raw)
		}
	}
	if len(raw) != 9 {
		t.Fatalf("expected 9 keys, got %d", len(raw))
	}
}

func TestGetRecordNotFound(t *testing.T) {
	r, _, m := setupRouter()

	resp := get(r, "/records/999999")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "Record not found" {
		t.Fatalf("unexpected body: %v", body)
	}
	if v := testutil.ToFloat64(m.RecordLookups.WithLabelValues("not_found")); v != 1 {
		t.Fatalf("expected 1 not_found lookup, got %v", v)
	}
}

func TestGetRecordInvalidID(t *testing.T) {
	r, _, _ := setupRouter()

	resp := get(r, "/records/seven")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetDirectors(t *testing.T) {
	r, _, _ := setupRouter()

	resp := get(r, "/directors/7")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got []record.Director
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode directors: %v", err)
	}
	if !reflect.DeepEqual(got, sevenDirectors) {
		t.Fatalf("unexpected directors: %+v", got)
	}
}

func TestGetDirectorsEmpty(t *testing.T) {
	r, _, _ := setupRouter()

	resp := get(r, "/directors/8")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestGetDirectorsNotFound(t *testing.T) {
	r, _, _ := setupRouter()

	resp := get(r, "/directors/999999")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestNilMetricsHandler(t *testing.T) {
	handler := New(record.NewMemoryStore(fixtureRecords(), "fixture"), nil)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	if resp := get(r, "/records/1"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
