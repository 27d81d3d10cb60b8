package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPAHandler serves the separately built frontend. Paths that name an
// existing file are served as-is; extensionless paths fall back to index.html
// so client-side routing works. API paths never reach the fallback.
type SPAHandler struct {
	distDir string
}

func NewSPAHandler(distDir string) *SPAHandler {
	return &SPAHandler{distDir: distDir}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	if h.distDir == "" {
		if r.URL.Path == "/" {
			writeJSON(w, map[string]any{
				"success": false,
				"message": "Frontend build not found. Set FRONTEND_DIST to the built frontend directory.",
			}, http.StatusOK)
			return
		}
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	clean := filepath.Clean("/" + r.URL.Path)
	full := filepath.Join(h.distDir, clean)
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		http.ServeFile(w, r, full)
		return
	}

	// a dotted path that doesn't exist is a missing asset, not a route
	if strings.Contains(path.Base(clean), ".") {
		writeError(w, "Not found", http.StatusNotFound)
		return
	}

	index := filepath.Join(h.distDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		writeError(w, "Frontend build not found. Run the frontend build and set FRONTEND_DIST.", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, index)
}
