package listing

import (
	"context"
	"strings"
	"time"

	"pagecore/internal/domain/record"
	"pagecore/internal/pagination"
	"pagecore/internal/store/repositories"
)

// Query is the caller-facing shape of a record list call.
type Query struct {
	Collection string
	Kind       string
	PageSize   int32
	PageToken  string
	Skip       int32
}

// CreateRequest is the caller-facing shape of record creation.
type CreateRequest struct {
	Collection string            `json:"collection"`
	Kind       string            `json:"kind,omitempty"`
	Title      string            `json:"title"`
	Labels     map[string]string `json:"labels,omitempty"`
}

// Options configures the listing service.
type Options struct {
	Codec   *pagination.Codec
	Lister  pagination.Lister[*record.Record]
	Records repositories.RecordRepository

	// Zero values select the pagination package defaults.
	DefaultPageSize int32
	MaxPageSize     int32
	ListerTimeout   time.Duration
}

// Service runs the pagination pipeline for record listing: validate the
// request, resolve the start position, assemble the page and its token.
type Service struct {
	validator *pagination.Validator
	resolver  *pagination.Resolver[*record.Record]
	assembler *pagination.Assembler[*record.Record]
	records   repositories.RecordRepository
}

// NewService creates a listing service
func NewService(opts Options) *Service {
	return &Service{
		validator: pagination.NewValidator(opts.Codec, opts.DefaultPageSize, opts.MaxPageSize),
		resolver:  pagination.NewResolver(opts.Lister, opts.ListerTimeout),
		assembler: pagination.NewAssembler[*record.Record](opts.Codec),
		records:   opts.Records,
	}
}

// ListRecords returns one page of a tenant's records. Invalid arguments are
// rejected before any backend work; backend slowness surfaces as a degraded
// success, never an error.
func (s *Service) ListRecords(ctx context.Context, tenantID int64, q Query) (*pagination.Page[*record.Record], error) {
	if strings.TrimSpace(q.Collection) == "" {
		return nil, &pagination.InvalidArgumentError{Field: "collection", Reason: "collection is required"}
	}

	req := pagination.ListRequest{
		Parent:    record.ScopeName(tenantID),
		PageSize:  q.PageSize,
		PageToken: q.PageToken,
		Skip:      q.Skip,
		Filter:    pagination.Filter{Collection: q.Collection, Kind: q.Kind},
	}

	nr, err := s.validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := s.resolver.Resolve(ctx, nr)
	if err != nil {
		return nil, &ServiceError{Op: "list_records", Err: err}
	}

	page, err := s.assembler.Assemble(ctx, nr, res)
	if err != nil {
		return nil, &ServiceError{Op: "list_records", Err: err}
	}
	return page, nil
}

// CreateRecord stores a new record for the tenant.
func (s *Service) CreateRecord(ctx context.Context, tenantID int64, in CreateRequest) (*record.Record, error) {
	rec, err := record.New(tenantID, in.Collection, in.Kind, in.Title, in.Labels)
	if err != nil {
		return nil, &pagination.InvalidArgumentError{Field: "record", Reason: err.Error()}
	}

	if err := s.records.Save(ctx, rec); err != nil {
		return nil, &ServiceError{Op: "create_record", Err: err}
	}
	return rec, nil
}

// ServiceError represents a listing service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "listing service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
