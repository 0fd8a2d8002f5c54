package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/cargotrack/internal/app"
	"github.com/erazemk/cargotrack/internal/listing"
	"github.com/erazemk/cargotrack/internal/model"
	"github.com/erazemk/cargotrack/internal/screen"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T, backend string) (*httptest.Server, string) {
	t.Helper()
	a, err := app.New(context.Background(), app.Config{Backend: backend, PageSize: listing.DefaultPageSize})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	root := chi.NewRouter()
	root.Use(RequestID)
	root.Use(Recoverer)
	root.Mount("/api", NewRouter(a, testSecret))
	server := httptest.NewServer(root)
	t.Cleanup(server.Close)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp loginResponse
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.Token == "" {
		t.Fatal("empty token from login")
	}
	return server, loginResp.Token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do sends an authenticated request, checks the status and decodes the body
// into out when out is non-nil.
func do(t *testing.T, server *httptest.Server, token, method, path string, body any, want int, out any) {
	t.Helper()
	req, err := authRequest(method, server.URL+path, token, body)
	if err != nil {
		t.Fatalf("building %s %s: %v", method, path, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		var e errorResponse
		json.NewDecoder(resp.Body).Decode(&e)
		t.Fatalf("%s %s: expected %d, got %d (%s %s)", method, path, want, resp.StatusCode, e.Code, e.Error)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s: %v", method, path, err)
		}
	}
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t, app.BackendMemory)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"any credentials", map[string]string{"username": "siti", "password": "x"}, http.StatusOK},
		{"missing password", map[string]string{"username": "siti"}, http.StatusBadRequest},
		{"missing username", map[string]string{"password": "x"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	server, _ := setupTestServer(t, app.BackendMemory)

	for _, path := range []string{"/api/items", "/api/customers", "/api/reports", "/api/profile"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}

	req, _ := authRequest(http.MethodGet, server.URL+"/api/items", "not-a-token", nil)
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("invalid token: expected 401, got %d", resp.StatusCode)
	}
}

func TestHealthIsPublic(t *testing.T) {
	server, _ := setupTestServer(t, app.BackendMemory)
	resp, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestItemsAPIFlow(t *testing.T) {
	for _, backend := range []string{app.BackendMemory, app.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			server, token := setupTestServer(t, backend)

			var page listing.Page[model.Item]
			do(t, server, token, http.MethodGet, "/api/items", nil, http.StatusOK, &page)
			if page.Total != 6 || page.TotalPages != 2 || len(page.Records) != 4 {
				t.Fatalf("initial page: total=%d pages=%d records=%d", page.Total, page.TotalPages, len(page.Records))
			}

			do(t, server, token, http.MethodPost, "/api/items/form", nil, http.StatusOK, nil)
			do(t, server, token, http.MethodPut, "/api/items/form", model.Item{
				Code: "CRG-007-2024", Name: "Test Item", Status: model.ItemStatusInWarehouse,
				Customer: "Test Customer", Weight: "10 kg", Destination: "Jakarta",
			}, http.StatusOK, nil)

			var created model.Item
			do(t, server, token, http.MethodPost, "/api/items/form/submit", nil, http.StatusCreated, &created)
			if created.ID != 7 {
				t.Errorf("expected id 7, got %d", created.ID)
			}
			if created.Date == "" {
				t.Error("expected date to be filled")
			}

			do(t, server, token, http.MethodPut, "/api/items/filter", filterRequest{Search: "007"}, http.StatusOK, &page)
			if page.Filtered != 1 || page.Records[0].Code != "CRG-007-2024" {
				t.Errorf("search 007: filtered=%d", page.Filtered)
			}

			do(t, server, token, http.MethodDelete, "/api/items/filter", nil, http.StatusOK, &page)
			if page.Page != 1 || page.Filtered != 7 {
				t.Errorf("cleared filter: page=%d filtered=%d", page.Page, page.Filtered)
			}
			for i, it := range page.Records {
				if it.ID != int64(i+1) {
					t.Errorf("record %d has id %d", i, it.ID)
				}
			}
		})
	}
}

func TestPageNavigation(t *testing.T) {
	server, token := setupTestServer(t, app.BackendMemory)

	var page listing.Page[model.Customer]
	do(t, server, token, http.MethodPut, "/api/customers/page", pageRequest{Page: 2}, http.StatusOK, &page)
	if page.Page != 2 || len(page.Records) != 2 {
		t.Errorf("page 2: page=%d records=%d", page.Page, len(page.Records))
	}
	do(t, server, token, http.MethodPut, "/api/customers/page", pageRequest{Page: 3}, http.StatusBadRequest, nil)
	do(t, server, token, http.MethodPut, "/api/customers/page", pageRequest{Page: 0}, http.StatusBadRequest, nil)
}

func TestSubmitValidation(t *testing.T) {
	server, token := setupTestServer(t, app.BackendMemory)

	do(t, server, token, http.MethodPost, "/api/customers/form/submit", nil, http.StatusConflict, nil)

	do(t, server, token, http.MethodPost, "/api/customers/form", nil, http.StatusOK, nil)
	do(t, server, token, http.MethodPut, "/api/customers/form", model.Customer{Name: "Only Name"}, http.StatusOK, nil)

	var e errorResponse
	do(t, server, token, http.MethodPost, "/api/customers/form/submit", nil, http.StatusUnprocessableEntity, &e)
	if e.Code != "VALIDATION_FAILED" || e.Fields == nil {
		t.Fatalf("unexpected error body: %+v", e)
	}
	for _, f := range []string{"company", "email", "phone", "address"} {
		found := false
		for _, got := range e.Fields.Fields {
			if got == f {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q among missing fields %v", f, e.Fields.Fields)
		}
	}

	var state screen.FormState[model.Customer]
	do(t, server, token, http.MethodGet, "/api/customers/form", nil, http.StatusOK, &state)
	if state.Mode != "creating" {
		t.Errorf("form should stay open after a failed submit, mode=%s", state.Mode)
	}
}

func TestEditFlow(t *testing.T) {
	server, token := setupTestServer(t, app.BackendMemory)

	var state screen.FormState[model.Customer]
	do(t, server, token, http.MethodPost, "/api/customers/2/form", nil, http.StatusOK, &state)
	if state.EditID != 2 || state.Fields.Name != "Siti Nurhaliza" {
		t.Fatalf("unexpected form state: %+v", state)
	}

	fields := state.Fields
	fields.ID = 99
	fields.Status = model.CustomerStatusInactive
	do(t, server, token, http.MethodPut, "/api/customers/form", fields, http.StatusOK, nil)
	do(t, server, token, http.MethodPost, "/api/customers/form/submit", nil, http.StatusOK, nil)

	var c model.Customer
	do(t, server, token, http.MethodGet, "/api/customers/2", nil, http.StatusOK, &c)
	if c.Status != model.CustomerStatusInactive {
		t.Errorf("expected inactive, got %s", c.Status)
	}
	do(t, server, token, http.MethodGet, "/api/customers/99", nil, http.StatusNotFound, nil)
}

func TestDeleteFlow(t *testing.T) {
	server, token := setupTestServer(t, app.BackendMemory)

	do(t, server, token, http.MethodPost, "/api/items/delete/confirm", nil, http.StatusConflict, nil)
	do(t, server, token, http.MethodPost, "/api/items/42/delete", nil, http.StatusNotFound, nil)

	do(t, server, token, http.MethodPost, "/api/items/3/delete", nil, http.StatusOK, nil)
	do(t, server, token, http.MethodPost, "/api/items/delete/cancel", nil, http.StatusOK, nil)
	do(t, server, token, http.MethodGet, "/api/items/delete", nil, http.StatusConflict, nil)
	do(t, server, token, http.MethodGet, "/api/items/3", nil, http.StatusOK, nil)

	do(t, server, token, http.MethodPost, "/api/items/3/delete", nil, http.StatusOK, nil)
	var page listing.Page[model.Item]
	do(t, server, token, http.MethodPost, "/api/items/delete/confirm", nil, http.StatusOK, &page)
	if page.Total != 5 {
		t.Errorf("expected 5 items after delete, got %d", page.Total)
	}
	do(t, server, token, http.MethodGet, "/api/items/3", nil, http.StatusNotFound, nil)
}

func TestReportsAndProfile(t *testing.T) {
	server, token := setupTestServer(t, app.BackendMemory)

	var summary struct {
		Items struct {
			Total        int    `json:"total"`
			DeliveryRate string `json:"delivery_rate"`
		} `json:"items"`
		Customers struct {
			TotalOrders int `json:"total_orders"`
		} `json:"customers"`
	}
	do(t, server, token, http.MethodGet, "/api/reports", nil, http.StatusOK, &summary)
	if summary.Items.Total != 6 {
		t.Errorf("expected 6 items, got %d", summary.Items.Total)
	}
	if summary.Items.DeliveryRate != "16.7" {
		t.Errorf("expected delivery rate 16.7, got %s", summary.Items.DeliveryRate)
	}
	if summary.Customers.TotalOrders != 226 {
		t.Errorf("expected 226 orders, got %d", summary.Customers.TotalOrders)
	}

	var profile profileResponse
	do(t, server, token, http.MethodGet, "/api/profile", nil, http.StatusOK, &profile)
	if profile.Username != "admin" || profile.Items != 6 || profile.Customers != 6 {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestSchemaEndpoint(t *testing.T) {
	server, token := setupTestServer(t, app.BackendMemory)

	var schema struct {
		Required []string `json:"required"`
	}
	do(t, server, token, http.MethodGet, "/api/items/schema", nil, http.StatusOK, &schema)
	if len(schema.Required) != 6 {
		t.Errorf("expected 6 required item fields, got %v", schema.Required)
	}
}

func TestPhotoUpload(t *testing.T) {
	server, token := setupTestServer(t, app.BackendMemory)

	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	png.Encode(&pngBuf, img)

	upload := func(id string) *http.Response {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, _ := mw.CreateFormFile("photo", "photo.png")
		fw.Write(pngBuf.Bytes())
		mw.Close()

		req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/items/"+id+"/photo", &body)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp
	}

	if resp := upload("42"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown item: expected 404, got %d", resp.StatusCode)
	}
	resp := upload("1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d", resp.StatusCode)
	}
	etag := resp.Header.Get("ETag")

	req, _ := authRequest(http.MethodGet, server.URL+"/api/items/1/photo", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/jpeg" {
		t.Fatalf("get photo: status=%d type=%s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	req.Header.Set("If-None-Match", etag)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("expected 304 for matching ETag, got %d", resp.StatusCode)
	}

	// Deleting the item drops its photo.
	do(t, server, token, http.MethodPost, "/api/items/1/delete", nil, http.StatusOK, nil)
	do(t, server, token, http.MethodPost, "/api/items/delete/confirm", nil, http.StatusOK, nil)
	do(t, server, token, http.MethodGet, "/api/items/1/photo", nil, http.StatusNotFound, nil)
}
