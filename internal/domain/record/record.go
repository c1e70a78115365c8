package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is a generic stored resource within a tenant's collection. The
// pagination core treats records as opaque items; only the repository layer
// interprets these fields.
type Record struct {
	ID         int64             `json:"id"`
	TenantID   int64             `json:"-"`
	Collection string            `json:"collection"`
	Kind       string            `json:"kind,omitempty"`
	Title      string            `json:"title"`
	Labels     map[string]string `json:"labels,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// New creates a record with validation.
func New(tenantID int64, collection, kind, title string, labels map[string]string) (*Record, error) {
	if tenantID <= 0 {
		return nil, fmt.Errorf("invalid tenant ID: %d", tenantID)
	}

	collection = strings.TrimSpace(collection)
	if collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	if len(collection) > 64 {
		return nil, fmt.Errorf("collection name too long: %d characters", len(collection))
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	now := time.Now()
	return &Record{
		TenantID:   tenantID,
		Collection: collection,
		Kind:       strings.TrimSpace(kind),
		Title:      title,
		Labels:     labels,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

const scopePrefix = "tenants/"

// ScopeName formats a tenant's listing scope, e.g. "tenants/42". The scope
// is folded into token fingerprints so cursors never cross tenants.
func ScopeName(tenantID int64) string {
	return scopePrefix + strconv.FormatInt(tenantID, 10)
}

// ParseScope reverses ScopeName.
func ParseScope(parent string) (int64, error) {
	raw, ok := strings.CutPrefix(parent, scopePrefix)
	if !ok {
		return 0, fmt.Errorf("invalid scope %q", parent)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid scope %q", parent)
	}
	return id, nil
}
