package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"github.com/mlakar/wishbox/internal/assets"
	"github.com/mlakar/wishbox/internal/db"
	"github.com/mlakar/wishbox/internal/model"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)

	manifest, err := assets.Build(fstest.MapFS{
		"index.html": {Data: []byte("<!DOCTYPE html><title>wishbox</title>")},
		"app.js":     {Data: []byte("console.log('wishbox');")},
	}, "index.html")
	if err != nil {
		t.Fatalf("building test manifest: %v", err)
	}

	server := httptest.NewServer(NewRouter(database, manifest, zap.NewNop()))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func createItem(t *testing.T, server *httptest.Server, body string) int64 {
	t.Helper()
	resp := doJSON(t, http.MethodPost, server.URL+"/items", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create failed: %d", resp.StatusCode)
	}

	var result struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if !result.Success || result.ID == 0 {
		t.Fatalf("unexpected create response: %+v", result)
	}
	return result.ID
}

func listItems(t *testing.T, server *httptest.Server) []model.Item {
	t.Helper()
	resp, err := http.Get(server.URL + "/items")
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list failed: %d", resp.StatusCode)
	}

	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	return items
}

func TestCreateAndListItems(t *testing.T) {
	server := setupTestServer(t)

	id := createItem(t, server, `{"name":"Lego set","price":49.9,"url":"example.com/lego"}`)

	items := listItems(t, server)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.ID != id || got.Name != "Lego set" || got.Price != 49.9 {
		t.Errorf("unexpected item: %+v", got)
	}
	if got.URL != "https://example.com/lego" {
		t.Errorf("expected normalized URL, got %q", got.URL)
	}
	if got.Category != model.CategoryUncategorized || got.Priority != 0 {
		t.Errorf("expected defaults, got category %q priority %d", got.Category, got.Priority)
	}
}

func TestListItemsEmpty(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/items")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestCreateItemValidation(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"missing name", `{"price":1,"url":"example.com"}`},
		{"missing price", `{"name":"x","url":"example.com"}`},
		{"price not a number", `{"name":"x","price":"cheap","url":"example.com"}`},
		{"priority not a number", `{"name":"x","price":1,"url":"example.com","priority":"first"}`},
		{"unknown category", `{"name":"x","price":1,"url":"example.com","category":"misc"}`},
	}
	for _, tt := range tests {
		resp := doJSON(t, http.MethodPost, server.URL+"/items", tt.body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, resp.StatusCode)
		}
	}

	if items := listItems(t, server); len(items) != 0 {
		t.Errorf("failed creates left rows behind: %+v", items)
	}
}

func TestUpdateItem(t *testing.T) {
	server := setupTestServer(t)
	id := createItem(t, server, `{"name":"Mug","price":12.5,"url":"example.com/mug","imageKey":"mug-img","category":"home"}`)

	resp := doJSON(t, http.MethodPut, server.URL+"/items/1", `{"name":"Big Mug"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != `{"success":true}` {
		t.Errorf("unexpected response body: %q", body)
	}

	items := listItems(t, server)
	if items[0].ID != id || items[0].Name != "Big Mug" {
		t.Errorf("expected updated name, got %+v", items[0])
	}
	if items[0].Price != 12.5 || items[0].ImageKey != "mug-img" {
		t.Errorf("unrelated fields changed: %+v", items[0])
	}
}

func TestUpdateItemEmptyBody(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, `{"name":"Static","price":1,"url":"example.com"}`)
	before := listItems(t, server)

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/items/1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("empty PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for empty body, got %d", resp.StatusCode)
	}

	after := listItems(t, server)
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("empty body mutated the item: before %+v, after %+v", before[0], after[0])
	}
}

func TestUpdateItemClearsImageKey(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, `{"name":"Pic","price":1,"url":"example.com","imageKey":"pic-1"}`)

	// Explicit empty string clears the key; an absent field would not.
	resp := doJSON(t, http.MethodPut, server.URL+"/items/1", `{"imageKey":""}`)
	resp.Body.Close()

	items := listItems(t, server)
	if items[0].ImageKey != "" {
		t.Errorf("expected cleared image key, got %q", items[0].ImageKey)
	}
	if items[0].Name != "Pic" {
		t.Errorf("name changed: %q", items[0].Name)
	}
}

func TestUpdateItemMissingID(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPut, server.URL+"/items/99", `{"name":"ghost"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for missing id, got %d", resp.StatusCode)
	}

	if items := listItems(t, server); len(items) != 0 {
		t.Errorf("update created a row: %+v", items)
	}
}

func TestDeleteItem(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, `{"name":"Doomed","price":1,"url":"example.com"}`)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/items/1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != `{"success":true}` {
		t.Errorf("unexpected response body: %q", body)
	}

	if items := listItems(t, server); len(items) != 0 {
		t.Errorf("expected empty list after delete, got %+v", items)
	}

	// Deleting again still succeeds.
	req, _ = http.NewRequest(http.MethodDelete, server.URL+"/items/1", nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for repeat delete, got %d", resp.StatusCode)
	}
}

func TestUploadAndGetImage(t *testing.T) {
	server := setupTestServer(t)

	data := []byte("png bytes")
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/upload/photo-1", bytes.NewReader(data))
	req.Header.Set("Content-Type", "image/png")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	var uploadResp struct {
		Success bool   `json:"success"`
		Key     string `json:"key"`
	}
	json.NewDecoder(resp.Body).Decode(&uploadResp)
	resp.Body.Close()
	if !uploadResp.Success || uploadResp.Key != "photo-1" {
		t.Fatalf("unexpected upload response: %+v", uploadResp)
	}

	resp, err = http.Get(server.URL + "/image/photo-1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(body, data) {
		t.Errorf("expected blob bytes back, got %q", body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected stored content type, got %q", ct)
	}

	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req, _ = http.NewRequest(http.MethodGet, server.URL+"/image/photo-1", nil)
	req.Header.Set("If-None-Match", etag)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("expected 304 for matching etag, got %d", resp.StatusCode)
	}
}

func TestGetImageMissing(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/image/nope")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing image, got %d", resp.StatusCode)
	}
}

func TestStaticFallback(t *testing.T) {
	server := setupTestServer(t)

	// Exact asset match.
	resp, _ := http.Get(server.URL + "/app.js")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "wishbox") {
		t.Errorf("expected app.js content, got %q", body)
	}

	// Unknown path falls back to the entry document.
	resp, _ = http.Get(server.URL + "/some/client/route")
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<title>wishbox</title>") {
		t.Errorf("expected SPA fallback, got %d: %q", resp.StatusCode, body)
	}
}
