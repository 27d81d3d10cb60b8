package api_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/api"
)

func setupDist(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	return dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSPAHandler(t *testing.T) {
	h := api.NewSPAHandler(setupDist(t))

	t.Run("ServesAsset", func(t *testing.T) {
		w := get(t, h, "/app.js")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "console.log") {
			t.Fatalf("status %d body %q", w.Code, w.Body.String())
		}
	})

	t.Run("FallsBackToIndex", func(t *testing.T) {
		for _, p := range []string{"/", "/reports/42", "/login-page"} {
			w := get(t, h, p)
			if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "app") {
				t.Fatalf("%s: status %d body %q", p, w.Code, w.Body.String())
			}
		}
	})

	t.Run("MissingAssetIs404", func(t *testing.T) {
		w := get(t, h, "/missing.png")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("APIPathNeverFallsBack", func(t *testing.T) {
		w := get(t, h, "/api/unknown")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"success":false`) {
			t.Fatalf("expected JSON envelope, got %q", w.Body.String())
		}
	})

	t.Run("TraversalStaysInsideDist", func(t *testing.T) {
		w := get(t, h, "/../../etc/passwd")
		if w.Code == http.StatusOK && strings.Contains(w.Body.String(), "root:") {
			t.Fatalf("path traversal escaped the dist directory")
		}
	})
}

func TestSPAHandlerWithoutDist(t *testing.T) {
	h := api.NewSPAHandler("")

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Frontend build not found") {
		t.Fatalf("body = %q", w.Body.String())
	}

	if w := get(t, h, "/anything"); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
