package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecore/internal/domain/record"
	"pagecore/internal/pagination"
)

// countBudget bounds the exact COUNT(*) attempt before falling back to the
// planner's table estimate.
const countBudget = 250 * time.Millisecond

// recordRepository implements RecordRepository and the pagination Lister
// capability over the records table.
type recordRepository struct {
	db *pgxpool.Pool
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *pgxpool.Pool) *recordRepository {
	return &recordRepository{db: db}
}

// Save inserts a new record
func (r *recordRepository) Save(ctx context.Context, rec *record.Record) error {
	labels, err := json.Marshal(rec.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO records (tenant_id, collection, kind, title, labels, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		rec.TenantID, rec.Collection, rec.Kind, rec.Title, labels, rec.CreatedAt, rec.UpdatedAt).Scan(&rec.ID)
}

// FindByID finds a record by ID within a tenant
func (r *recordRepository) FindByID(ctx context.Context, tenantID, id int64) (*record.Record, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, tenant_id, collection, kind, title, labels, created_at, updated_at
		FROM records
		WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	return r.scanRecord(row)
}

// Window fetches one page worth of records starting at offset, in newest-first
// order. One extra row is requested to learn whether more items exist. The
// caller's ctx deadline is the Lister latency budget; blowing it takes the
// degraded path upstream.
func (r *recordRepository) Window(ctx context.Context, parent string, f pagination.Filter, offset int64, limit int32) (*pagination.Window[*record.Record], error) {
	tenantID, err := record.ParseScope(parent)
	if err != nil {
		return nil, err
	}

	q := `
		SELECT id, tenant_id, collection, kind, title, labels, created_at, updated_at
		FROM records
		WHERE tenant_id = $1 AND collection = $2`
	args := []any{tenantID, f.Collection}
	if f.Kind != "" {
		q += ` AND kind = $3`
		args = append(args, f.Kind)
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`, limit+1, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*record.Record
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hasMore := len(records) > int(limit)
	if hasMore {
		records = records[:limit]
	}

	total, isEstimate := r.total(ctx, tenantID, f)

	return &pagination.Window[*record.Record]{
		Items:           records,
		HasMore:         hasMore,
		Total:           total,
		TotalIsEstimate: isEstimate,
	}, nil
}

// total attempts an exact count under a small budget and falls back to the
// planner's per-table row estimate for very large collections. The fallback
// ignores filters, which is why it is flagged as an estimate.
func (r *recordRepository) total(ctx context.Context, tenantID int64, f pagination.Filter) (*int64, bool) {
	cctx, cancel := context.WithTimeout(ctx, countBudget)
	defer cancel()

	q := `SELECT COUNT(*) FROM records WHERE tenant_id = $1 AND collection = $2`
	args := []any{tenantID, f.Collection}
	if f.Kind != "" {
		q += ` AND kind = $3`
		args = append(args, f.Kind)
	}

	var n int64
	if err := r.db.QueryRow(cctx, q, args...).Scan(&n); err == nil {
		return &n, false
	}

	var estimate float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(reltuples, 0) FROM pg_class WHERE relname = 'records'`).Scan(&estimate)
	if err != nil {
		return nil, false
	}
	n = int64(estimate)
	return &n, true
}

// scanRecord scans a single row into a record domain object
func (r *recordRepository) scanRecord(row pgx.Row) (*record.Record, error) {
	var rec record.Record
	var kind sql.NullString
	var labels []byte

	err := row.Scan(
		&rec.ID, &rec.TenantID, &rec.Collection, &kind, &rec.Title,
		&labels, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if kind.Valid {
		rec.Kind = kind.String
	}
	if len(labels) > 0 {
		if err := json.Unmarshal(labels, &rec.Labels); err != nil {
			return nil, fmt.Errorf("unmarshal labels: %w", err)
		}
	}

	return &rec, nil
}
