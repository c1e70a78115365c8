package tenant

import (
	"fmt"
	"strings"
)

// Tenant represents an API consumer. All listed records belong to exactly
// one tenant, and page tokens are fingerprinted to the tenant's scope.
type Tenant struct {
	ID     int64
	Name   string
	Status Status
}

// Status represents tenant status
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// APIKey represents a tenant API key
type APIKey struct {
	ID       int64
	TenantID int64
	Name     string
	KeyHash  string
	IsActive bool
}

// NewTenant creates a new tenant with validation
func NewTenant(name string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}

	if len(name) < 2 || len(name) > 100 {
		return nil, fmt.Errorf("tenant name must be between 2 and 100 characters")
	}

	return &Tenant{
		Name:   name,
		Status: StatusActive,
	}, nil
}

// NewAPIKey creates a new API key with validation
func NewAPIKey(tenantID int64, name, keyHash string) (*APIKey, error) {
	if tenantID <= 0 {
		return nil, fmt.Errorf("invalid tenant ID: %d", tenantID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "default"
	}

	if keyHash == "" {
		return nil, fmt.Errorf("key hash is required")
	}

	return &APIKey{
		TenantID: tenantID,
		Name:     name,
		KeyHash:  keyHash,
		IsActive: true,
	}, nil
}

// IsActive checks if tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() {
	t.Status = StatusSuspended
}

// Activate reactivates a suspended tenant
func (t *Tenant) Activate() {
	t.Status = StatusActive
}

// IsValidForTenant checks if API key is valid for this tenant
func (a *APIKey) IsValidForTenant(tenantID int64) bool {
	return a.TenantID == tenantID && a.IsActive
}
