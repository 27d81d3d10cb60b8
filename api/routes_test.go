package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/api"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/config"
	dbpkg "github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/db"
)

func newTestServer(t *testing.T) *mux.Router {
	t.Helper()
	ctx := context.Background()

	d, err := dbpkg.New(ctx, "file::memory:?cache=shared", nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Bootstrap(ctx, d); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		TokenScheme:   "legacy",
		JWTSecret:     "testsecret",
		TokenDuration: time.Hour,
		MaxBodyBytes:  50 << 20,
		Environment:   "test",
	}
	return api.SetupRoutes(cfg, "test", "now", d)
}

// Full walk through the documented surface against a real store.
func TestServerScenario(t *testing.T) {
	r := newTestServer(t)

	// first signup gets id 1 and the matching legacy token
	w := doJSON(t, r, http.MethodPost, "/signup", map[string]string{"email": "a@x.com", "password": "p1", "name": "A"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d (body %s)", w.Code, w.Body.String())
	}
	if tok := decodeBody(t, w)["token"]; tok != "token-1" {
		t.Fatalf("token = %v, want token-1", tok)
	}

	// wrong password is a 401 with the shared message
	w = doJSON(t, r, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login status = %d", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "Invalid email or password" {
		t.Fatalf("error = %v", msg)
	}

	// duplicate signup, case and whitespace variants included
	w = doJSON(t, r, http.MethodPost, "/signup", map[string]string{"email": " A@X.com ", "password": "p2", "name": "A2"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup status = %d (body %s)", w.Code, w.Body.String())
	}

	// save a lidar inspection
	w = doJSON(t, r, http.MethodPost, "/inspections/lidar", map[string]any{"data": map[string]any{"bridgeNo": "B1"}}, "Bearer token-1")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body %s)", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	if created["status"] != "completed" {
		t.Fatalf("status = %v", created["status"])
	}

	// it comes back filtered, upper-cased, and intact
	w = doJSON(t, r, http.MethodGet, "/inspections?type=lidar", nil, "Bearer token-1")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d (body %s)", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("list length = %d, want 1", len(data))
	}
	entry := data[0].(map[string]any)
	if entry["reportType"] != "LIDAR" {
		t.Fatalf("reportType = %v", entry["reportType"])
	}
	if doc := entry["data"].(map[string]any); doc["bridgeNo"] != "B1" {
		t.Fatalf("data = %v", doc)
	}

	// a second user sees an empty list and cannot touch the record
	w = doJSON(t, r, http.MethodPost, "/signup", map[string]string{"email": "b@x.com", "password": "p2", "name": "B"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("second signup status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/inspections", nil, "token-2")
	if w.Code != http.StatusOK {
		t.Fatalf("empty list status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true || len(body["data"].([]any)) != 0 {
		t.Fatalf("empty list body = %s", w.Body.String())
	}

	id := entry["id"].(float64)
	w = doJSON(t, r, http.MethodPut, "/inspections/1",
		map[string]any{"type": "sar", "data": map[string]any{"hijack": true}}, "token-2")
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign update status = %d, want 404 (id %v)", w.Code, id)
	}
	w = doJSON(t, r, http.MethodDelete, "/inspections/1", nil, "token-2")
	if w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", w.Code)
	}

	// the owner updates and deletes it
	w = doJSON(t, r, http.MethodPut, "/inspections/1",
		map[string]any{"type": "sar", "data": map[string]any{"bridgeNo": "B1", "rev": 2}, "status": "draft"}, "token-1")
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d (body %s)", w.Code, w.Body.String())
	}
	if upd := decodeBody(t, w); upd["reportType"] != "SAR" || upd["status"] != "draft" {
		t.Fatalf("update body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/inspections/1", nil, "token-1")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d (body %s)", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodDelete, "/inspections/1", nil, "token-1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestServerAliasesAndHealth(t *testing.T) {
	r := newTestServer(t)

	// the /api aliases serve the same handlers the frontend calls
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", map[string]string{"email": "a@x.com", "password": "p1", "name": "A"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("alias signup status = %d (body %s)", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "p1"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("alias login status = %d (body %s)", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d (body %s)", w.Code, w.Body.String())
	}
	health := decodeBody(t, w)
	if health["status"] != "OK" || health["database"] != "Connected" || health["users"] != float64(1) {
		t.Fatalf("health body = %s", w.Body.String())
	}

	// unauthenticated inspection access is rejected on the alias too
	w = doJSON(t, r, http.MethodGet, "/api/inspections", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("alias list status = %d, want 401", w.Code)
	}
}
