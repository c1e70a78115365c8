package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecore/internal/domain/tenant"
)

// tenantRepository implements TenantRepository with pure data access
type tenantRepository struct {
	db *pgxpool.Pool
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *pgxpool.Pool) *tenantRepository {
	return &tenantRepository{db: db}
}

// Save saves a tenant (insert or update)
func (r *tenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	if t.ID == 0 {
		return r.insert(ctx, t)
	}
	return r.update(ctx, t)
}

// FindByID finds a tenant by ID
func (r *tenantRepository) FindByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, status
		FROM tenants
		WHERE id = $1`, id)

	return r.scanTenant(row)
}

// FindByAPIKeyHash finds an active tenant by API key hash
func (r *tenantRepository) FindByAPIKeyHash(ctx context.Context, keyHash string) (*tenant.Tenant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT t.id, t.name, t.status
		FROM tenants t
		JOIN tenant_api_keys ak ON t.id = ak.tenant_id
		WHERE ak.key_hash = $1 AND ak.is_active AND t.status = 'active'`, keyHash)

	return r.scanTenant(row)
}

// SaveAPIKey saves an API key record
func (r *tenantRepository) SaveAPIKey(ctx context.Context, apiKey *tenant.APIKey) error {
	if apiKey.ID == 0 {
		return r.insertAPIKey(ctx, apiKey)
	}
	return r.updateAPIKey(ctx, apiKey)
}

// FindAPIKeyByHash finds an API key by hash
func (r *tenantRepository) FindAPIKeyByHash(ctx context.Context, keyHash string) (*tenant.APIKey, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, tenant_id, name, key_hash, is_active
		FROM tenant_api_keys
		WHERE key_hash = $1`, keyHash)

	return r.scanAPIKey(row)
}

func (r *tenantRepository) insert(ctx context.Context, t *tenant.Tenant) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO tenants (name, status)
		VALUES ($1, $2)
		RETURNING id`,
		t.Name, string(t.Status)).Scan(&t.ID)
}

func (r *tenantRepository) update(ctx context.Context, t *tenant.Tenant) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tenants
		SET name = $1, status = $2
		WHERE id = $3`,
		t.Name, string(t.Status), t.ID)

	return err
}

func (r *tenantRepository) insertAPIKey(ctx context.Context, apiKey *tenant.APIKey) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO tenant_api_keys (tenant_id, name, key_hash, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		apiKey.TenantID, apiKey.Name, apiKey.KeyHash, apiKey.IsActive).Scan(&apiKey.ID)
}

func (r *tenantRepository) updateAPIKey(ctx context.Context, apiKey *tenant.APIKey) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tenant_api_keys
		SET name = $1, is_active = $2
		WHERE id = $3`,
		apiKey.Name, apiKey.IsActive, apiKey.ID)

	return err
}

// scanTenant scans a single row into a tenant domain object
func (r *tenantRepository) scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var status string

	if err := row.Scan(&t.ID, &t.Name, &status); err != nil {
		return nil, err
	}

	t.Status = tenant.Status(status)
	return &t, nil
}

// scanAPIKey scans a single row into an API key domain object
func (r *tenantRepository) scanAPIKey(row pgx.Row) (*tenant.APIKey, error) {
	var apiKey tenant.APIKey

	err := row.Scan(
		&apiKey.ID, &apiKey.TenantID, &apiKey.Name, &apiKey.KeyHash, &apiKey.IsActive)
	if err != nil {
		return nil, err
	}

	return &apiKey, nil
}
