package middlewarex

import (
	"net/http"
	"strings"

	tenantsvc "pagecore/internal/services/tenant"
)

func APIKeyAuth(tenants *tenantsvc.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			key := strings.TrimPrefix(auth, "Bearer ")

			ten, err := tenants.GetTenantByAPIKey(r.Context(), key)
			if err != nil || ten == nil {
				http.Error(w, "invalid key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), ten.ID)))
		})
	}
}
