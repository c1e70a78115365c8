package listing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagecore/internal/domain/record"
	"pagecore/internal/pagination"
)

// fakeLister serves windows over an in-memory slice and counts invocations.
type fakeLister struct {
	items []*record.Record
	err   error
	calls int
}

func (f *fakeLister) Window(_ context.Context, _ string, _ pagination.Filter, offset int64, limit int32) (*pagination.Window[*record.Record], error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	total := int64(len(f.items))
	if offset >= total {
		return &pagination.Window[*record.Record]{Total: &total}, nil
	}

	end := offset + int64(limit)
	hasMore := end < total
	if end > total {
		end = total
	}
	return &pagination.Window[*record.Record]{
		Items:   f.items[offset:end],
		HasMore: hasMore,
		Total:   &total,
	}, nil
}

type fakeRecords struct {
	saved  []*record.Record
	nextID int64
}

func (f *fakeRecords) Save(_ context.Context, rec *record.Record) error {
	f.nextID++
	rec.ID = f.nextID
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeRecords) FindByID(_ context.Context, tenantID, id int64) (*record.Record, error) {
	for _, rec := range f.saved {
		if rec.TenantID == tenantID && rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func seedRecords(n int) []*record.Record {
	items := make([]*record.Record, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, &record.Record{
			ID:         int64(i + 1),
			TenantID:   1,
			Collection: "invoices",
			Title:      fmt.Sprintf("invoice %d", i+1),
		})
	}
	return items
}

func newTestService(t *testing.T, lister pagination.Lister[*record.Record]) (*Service, *pagination.Codec) {
	t.Helper()
	codec, err := pagination.NewCodec(pagination.CodecOptions{Key: []byte("0123456789abcdef0123456789abcdef")})
	require.NoError(t, err)
	return NewService(Options{Codec: codec, Lister: lister, Records: &fakeRecords{}}), codec
}

func TestListRecordsWalksWholeCollection(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{items: seedRecords(25)}
	svc, _ := newTestService(t, lister)

	var seen []int64
	token := ""
	pages := 0
	for {
		page, err := svc.ListRecords(ctx, 1, Query{Collection: "invoices", PageSize: 10, PageToken: token})
		require.NoError(t, err)
		pages++
		for _, rec := range page.Items {
			seen = append(seen, rec.ID)
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	assert.Equal(t, 3, pages)
	require.Len(t, seen, 25)
	// No duplicates, no gaps, Lister order preserved.
	for i, id := range seen {
		assert.Equal(t, int64(i+1), id)
	}
}

func TestListRecordsInvalidArgumentsSkipBackend(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{items: seedRecords(5)}
	svc, _ := newTestService(t, lister)

	cases := []Query{
		{Collection: "invoices", PageSize: -1},
		{Collection: "invoices", Skip: -1},
		{Collection: "invoices", PageToken: "bogus"},
		{}, // missing collection
	}
	for _, q := range cases {
		_, err := svc.ListRecords(ctx, 1, q)
		require.Error(t, err, "query %+v", q)
		assert.True(t, pagination.IsInvalidArgument(err), "query %+v", q)
	}
	assert.Equal(t, 0, lister.calls, "rejected requests must not reach the Lister")
}

func TestListRecordsDefaultAndClampedPageSize(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{items: seedRecords(60)}
	svc, _ := newTestService(t, lister)

	page, err := svc.ListRecords(ctx, 1, Query{Collection: "invoices"})
	require.NoError(t, err)
	assert.Len(t, page.Items, int(pagination.DefaultPageSize))

	lister2 := &fakeLister{items: seedRecords(60)}
	svc2, _ := newTestService(t, lister2)
	page, err = svc2.ListRecords(ctx, 1, Query{Collection: "invoices", PageSize: 100000})
	require.NoError(t, err)
	assert.Len(t, page.Items, 60)
}

func TestListRecordsSkipFromToken(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{items: seedRecords(100)}
	svc, _ := newTestService(t, lister)

	// First page of 10 leaves the cursor at offset 10.
	page, err := svc.ListRecords(ctx, 1, Query{Collection: "invoices", PageSize: 10})
	require.NoError(t, err)
	require.NotEmpty(t, page.NextPageToken)

	// Resuming with skip=5 bypasses five more records.
	page, err = svc.ListRecords(ctx, 1, Query{Collection: "invoices", PageSize: 10, PageToken: page.NextPageToken, Skip: 5})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, int64(16), page.Items[0].ID)
}

func TestListRecordsDegradedBackend(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{err: pagination.ErrUnresolved}
	svc, codec := newTestService(t, lister)

	page, err := svc.ListRecords(ctx, 1, Query{Collection: "invoices", Skip: 500000})
	require.NoError(t, err, "backend slowness must not become a caller error")
	assert.Empty(t, page.Items)
	require.NotEmpty(t, page.NextPageToken)

	p, err := codec.Decode(ctx, page.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), p.Offset)
}

func TestListRecordsExhaustedSkip(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{items: seedRecords(5)}
	svc, _ := newTestService(t, lister)

	page, err := svc.ListRecords(ctx, 1, Query{Collection: "invoices", Skip: 9999})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextPageToken)
}

func TestListRecordsRejectsFilterDrift(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{items: seedRecords(20)}
	svc, _ := newTestService(t, lister)

	page, err := svc.ListRecords(ctx, 1, Query{Collection: "invoices", PageSize: 10})
	require.NoError(t, err)
	require.NotEmpty(t, page.NextPageToken)

	_, err = svc.ListRecords(ctx, 1, Query{Collection: "invoices", Kind: "paid", PageToken: page.NextPageToken})
	require.Error(t, err)
	assert.True(t, pagination.IsInvalidArgument(err))

	// Tokens are also scoped to the issuing tenant.
	_, err = svc.ListRecords(ctx, 2, Query{Collection: "invoices", PageToken: page.NextPageToken})
	require.Error(t, err)
	assert.True(t, pagination.IsInvalidArgument(err))
}

func TestCreateRecord(t *testing.T) {
	ctx := context.Background()
	records := &fakeRecords{}
	codec, err := pagination.NewCodec(pagination.CodecOptions{Key: []byte("0123456789abcdef0123456789abcdef")})
	require.NoError(t, err)
	svc := NewService(Options{Codec: codec, Lister: &fakeLister{}, Records: records})

	rec, err := svc.CreateRecord(ctx, 1, CreateRequest{Collection: "invoices", Title: "March"})
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.Len(t, records.saved, 1)

	_, err = svc.CreateRecord(ctx, 1, CreateRequest{Title: "no collection"})
	require.Error(t, err)
	assert.True(t, pagination.IsInvalidArgument(err))
}
