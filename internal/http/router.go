package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pagecore/internal/config"
	"pagecore/internal/http/handlers"
	middlewarex "pagecore/internal/http/middleware"
	"pagecore/internal/services/listing"
	tenantsvc "pagecore/internal/services/tenant"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config         config.Cfg
	TenantService  *tenantsvc.Service
	ListingService *listing.Service
}

// NewRouter creates the HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	})

	// Admin routes (protected by admin token)
	r.Route("/admin", func(r chi.Router) {
		r.Post("/onboard", handlers.OnboardTenant(deps.TenantService, deps.Config))
	})

	// API routes (protected by API key auth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.APIKeyAuth(deps.TenantService))

		r.Get("/records", handlers.ListRecords(deps.ListingService))
		r.Post("/records", handlers.CreateRecord(deps.ListingService))
	})

	return r
}
