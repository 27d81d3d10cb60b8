package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/auth"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/config"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/db"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/repository/sqlstore"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddlewareWithOrigins(cfg.CORSOrigins))
	r.Use(RecoveryMiddleware)
	r.Use(BodyLimitMiddleware(cfg.MaxBodyBytes))

	SetVerboseErrors(!cfg.IsProduction())

	// Repository
	store := sqlstore.New(conn, nil)

	scheme := auth.SchemeFor(cfg.TokenScheme, cfg.JWTSecret, cfg.TokenDuration)

	// Create handlers
	systemHandler := NewSystemHandler(store, cfg.Environment)
	authHandler := NewAuthHandler(store, scheme)
	inspectionsHandler := NewInspectionsHandler(store)

	// answer CORS preflight for any path before route matching gets strict
	r.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	// Register the surface twice: at the root and under /api, which is what
	// the deployed frontend calls.
	registerAPI(r, systemHandler, authHandler, inspectionsHandler, scheme, version, buildTime)
	registerAPI(r.PathPrefix("/api").Subrouter(), systemHandler, authHandler, inspectionsHandler, scheme, version, buildTime)

	// Static frontend with SPA fallback for everything that isn't an API route
	r.PathPrefix("/").Methods("GET").Handler(NewSPAHandler(cfg.FrontendDist))

	return r
}

func registerAPI(r *mux.Router, system *SystemHandler, authH *AuthHandler, inspections *InspectionsHandler, scheme auth.Scheme, version, buildTime string) {
	// Open endpoints
	r.HandleFunc("/health", system.HealthHandler).Methods("GET")
	r.HandleFunc("/version", system.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/signup", authH.Signup).Methods("POST")
	r.HandleFunc("/login", authH.Login).Methods("POST")
	// old route names the deployed frontend still uses
	r.HandleFunc("/auth/signup", authH.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authH.Login).Methods("POST")

	// Protected routes: every inspection request is owner-scoped
	protected := r.PathPrefix("/inspections").Subrouter()
	protected.Use(AuthMiddleware(scheme))
	protected.HandleFunc("/lidar", inspections.CreateLidar).Methods("POST")
	protected.HandleFunc("/sar", inspections.CreateSAR).Methods("POST")
	protected.HandleFunc("", inspections.List).Methods("GET")
	protected.HandleFunc("/{id}", inspections.Update).Methods("PUT")
	protected.HandleFunc("/{id}", inspections.Delete).Methods("DELETE")
}
