package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestSpecialAPI_ListIsPublic(t *testing.T) {
	e, repo := newTestServer(t)
	seedSpecial(t, repo, "KMS001", "Front Brake Disc", 120)

	req := httptest.NewRequest(http.MethodGet, "/api/specials", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/specials status = %d, want 200", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["success"] != true {
		t.Error("success flag missing")
	}
	data, ok := resp["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v, want one record", resp["data"])
	}
	pg, ok := resp["pagination"].(map[string]interface{})
	if !ok {
		t.Fatal("pagination block missing")
	}
	if pg["totalCount"].(float64) != 1 || pg["page"].(float64) != 1 {
		t.Errorf("pagination = %v", pg)
	}
}

func TestSpecialAPI_ListQueryAndSort(t *testing.T) {
	e, repo := newTestServer(t)
	seedSpecial(t, repo, "A", "Part A", 100)
	seedSpecial(t, repo, "B", "Part B", 50)
	seedSpecial(t, repo, "C", "Part C", 75)

	req := httptest.NewRequest(http.MethodGet,
		"/api/specials?sortBy=selling_price&sortOrder=asc&page=1&limit=2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp struct {
		Data []struct {
			SellingPrice float64 `json:"selling_price"`
		} `json:"data"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[0].SellingPrice != 50 || resp.Data[1].SellingPrice != 75 {
		t.Errorf("sorted page = %+v", resp.Data)
	}
	if resp.Pagination.TotalPages != 2 {
		t.Errorf("totalPages = %d", resp.Pagination.TotalPages)
	}
}

func TestSpecialAPI_ListFilters(t *testing.T) {
	e, repo := newTestServer(t)
	s := seedSpecial(t, repo, "A", "Part A", 10)
	seedSpecial(t, repo, "B", "Part B", 10)
	s.Condition = "USED"
	if _, err := repo.Update(s); err != nil {
		t.Fatal(err)
	}

	filters := url.QueryEscape(`{"condition":["USED"]}`)
	req := httptest.NewRequest(http.MethodGet, "/api/specials?filters="+filters, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp struct {
		Data []struct {
			SystemNumber string `json:"system_number"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].SystemNumber != "A" {
		t.Errorf("filtered data = %+v", resp.Data)
	}

	// malformed filters are ignored, not an error
	req = httptest.NewRequest(http.MethodGet, "/api/specials?filters="+url.QueryEscape("{broken"), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("malformed filters status = %d, want 200", rec.Code)
	}
}

func TestSpecialAPI_GetByID(t *testing.T) {
	e, repo := newTestServer(t)
	s := seedSpecial(t, repo, "KMS001", "Front Brake Disc", 120)

	req := httptest.NewRequest(http.MethodGet, "/api/specials/"+s.ID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/specials/nope", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestSpecialAPI_MutationsRequireToken(t *testing.T) {
	e, _ := newTestServer(t)

	body := bytes.NewReader([]byte(`{"system_number":"X","part_name":"Y","selling_price":"1","wholesale_price":"1"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/specials", body)
	req.Header.Set(echoContentType, echoJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated POST status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/specials/some-id", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated DELETE status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/specials", nil)
	req.Header.Set("X-Admin-Token", "wrong-token")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", rec.Code)
	}
}

func TestSpecialAPI_CreateUpdateDelete(t *testing.T) {
	e, _ := newTestServer(t)

	payload := map[string]interface{}{
		"system_number":   "KMS500",
		"part_name":       "Timing Belt",
		"selling_price":   "45.50",
		"wholesale_price": "30",
		"condition":       "new",
	}
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/specials", bytes.NewReader(raw))
	req.Header.Set(echoContentType, echoJSON)
	req.Header.Set("X-Admin-Token", testToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data struct {
			ID           string  `json:"id"`
			SellingPrice float64 `json:"selling_price"`
			Condition    string  `json:"condition"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.SellingPrice != 45.5 || created.Data.Condition != "NEW" {
		t.Errorf("created record = %+v", created.Data)
	}

	// duplicate system_number is rejected
	req = httptest.NewRequest(http.MethodPost, "/api/specials", bytes.NewReader(raw))
	req.Header.Set(echoContentType, echoJSON)
	req.Header.Set("X-Admin-Token", testToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate create status = %d, want 409", rec.Code)
	}

	// update
	payload["selling_price"] = "60"
	raw, _ = json.Marshal(payload)
	req = httptest.NewRequest(http.MethodPut, "/api/specials/"+created.Data.ID, bytes.NewReader(raw))
	req.Header.Set(echoContentType, echoJSON)
	req.Header.Set("X-Admin-Token", testToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	// delete
	req = httptest.NewRequest(http.MethodDelete, "/api/specials/"+created.Data.ID, nil)
	req.Header.Set("X-Admin-Token", testToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
}

func TestSpecialAPI_CreateValidation(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/specials",
		bytes.NewReader([]byte(`{"part_name":"No System Number","selling_price":"1","wholesale_price":"1"}`)))
	req.Header.Set(echoContentType, echoJSON)
	req.Header.Set("X-Admin-Token", testToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d, want 400", rec.Code)
	}
	var resp struct {
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0] != "System number is required" {
		t.Errorf("errors = %v", resp.Errors)
	}
}

func TestSpecialAPI_ListCacheInvalidatedByMutation(t *testing.T) {
	e, repo := newTestServer(t)
	seedSpecial(t, repo, "A", "Part A", 10)

	list := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/specials", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		var resp struct {
			Pagination struct {
				TotalCount int `json:"totalCount"`
			} `json:"pagination"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp.Pagination.TotalCount
	}

	if got := list(); got != 1 {
		t.Fatalf("initial count = %d", got)
	}
	// prime the cache, then mutate through the API
	list()
	req := httptest.NewRequest(http.MethodPost, "/api/specials",
		bytes.NewReader([]byte(`{"system_number":"B","part_name":"Part B","selling_price":"1","wholesale_price":"1"}`)))
	req.Header.Set(echoContentType, echoJSON)
	req.Header.Set("X-Admin-Token", testToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	if got := list(); got != 2 {
		t.Errorf("count after create = %d, want 2 (stale cache?)", got)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e, repo := newTestServer(t)
	seedSpecial(t, repo, "A", "Part A", 10)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	var resp struct {
		Status   string `json:"status"`
		Database struct {
			Connection  string `json:"connection"`
			RecordCount int    `json:"recordCount"`
		} `json:"database"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" || resp.Database.Connection != "ok" || resp.Database.RecordCount != 1 {
		t.Errorf("health = %+v", resp)
	}
}
