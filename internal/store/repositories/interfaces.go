package repositories

import (
	"context"

	"pagecore/internal/domain/record"
	"pagecore/internal/domain/tenant"
)

// RecordRepository defines the contract for record data access. The
// pagination window query lives on the same repository but is consumed
// through the pagination.Lister interface.
type RecordRepository interface {
	Save(ctx context.Context, rec *record.Record) error
	FindByID(ctx context.Context, tenantID, id int64) (*record.Record, error)
}

// TenantRepository defines the contract for tenant data access
type TenantRepository interface {
	Save(ctx context.Context, t *tenant.Tenant) error
	FindByID(ctx context.Context, id int64) (*tenant.Tenant, error)
	FindByAPIKeyHash(ctx context.Context, keyHash string) (*tenant.Tenant, error)
	SaveAPIKey(ctx context.Context, apiKey *tenant.APIKey) error
	FindAPIKeyByHash(ctx context.Context, keyHash string) (*tenant.APIKey, error)
}
