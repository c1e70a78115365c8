package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pagecore/internal/config"
	tenantsvc "pagecore/internal/services/tenant"
)

// OnboardTenant handles tenant onboarding using the tenant service
func OnboardTenant(tenants *tenantsvc.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Admin guard
		adminToken := r.Header.Get("X-Admin-Token")
		if cfg.Sec.AdminToken == "" || adminToken != cfg.Sec.AdminToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req tenantsvc.OnboardingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		resp, err := tenants.OnboardTenant(r.Context(), req)
		if err != nil {
			var ve *tenantsvc.ValidationError
			if errors.As(err, &ve) {
				http.Error(w, ve.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "onboarding failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
