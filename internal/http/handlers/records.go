package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	middlewarex "pagecore/internal/http/middleware"
	"pagecore/internal/pagination"
	"pagecore/internal/services/listing"
)

// ListRecords handles the paginated record listing call. Query parameters:
// collection (required), kind, page_size, page_token, skip.
func ListRecords(svc *listing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middlewarex.TenantID(r.Context())
		if !ok {
			http.Error(w, "tenant not found", http.StatusUnauthorized)
			return
		}

		q, err := parseListQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		page, err := svc.ListRecords(r.Context(), tenantID, q)
		if err != nil {
			writeListError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}
}

// CreateRecord handles record creation
func CreateRecord(svc *listing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middlewarex.TenantID(r.Context())
		if !ok {
			http.Error(w, "tenant not found", http.StatusUnauthorized)
			return
		}

		var in listing.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		rec, err := svc.CreateRecord(r.Context(), tenantID, in)
		if err != nil {
			writeListError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// parseListQuery parses query parameters into a listing query. Values that
// are not integers at all are rejected here; negative integers flow through
// so the validator owns that rejection.
func parseListQuery(r *http.Request) (listing.Query, error) {
	q := listing.Query{
		Collection: r.URL.Query().Get("collection"),
		Kind:       r.URL.Query().Get("kind"),
		PageToken:  r.URL.Query().Get("page_token"),
	}

	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return q, errors.New("page_size must be an integer")
		}
		q.PageSize = int32(n)
	}

	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return q, errors.New("skip must be an integer")
		}
		q.Skip = int32(n)
	}

	return q, nil
}

func writeListError(w http.ResponseWriter, err error) {
	if pagination.IsInvalidArgument(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}
