package pagination

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleFulfilledWithMore(t *testing.T) {
	ctx := context.Background()
	codec := testCodec(t, CodecOptions{})
	a := NewAssembler[string](codec)

	nr := &NormalizedRequest{PageSize: 3, Fingerprint: "fp"}
	res := &Resolution[string]{
		State:  StateFulfilled,
		Offset: 10,
		Window: &Window[string]{Items: []string{"a", "b", "c"}, HasMore: true},
	}

	page, err := a.Assemble(ctx, nr, res)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, page.Items)
	require.NotEmpty(t, page.NextPageToken)

	// The token advances the cursor past the last returned item.
	p, err := codec.Decode(ctx, page.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, int64(13), p.Offset)
	assert.Equal(t, "fp", p.Fingerprint)
}

func TestAssembleLastPageOmitsToken(t *testing.T) {
	ctx := context.Background()
	a := NewAssembler[string](testCodec(t, CodecOptions{}))

	total := int64(13)
	res := &Resolution[string]{
		State:  StateFulfilled,
		Offset: 10,
		Window: &Window[string]{Items: []string{"x"}, HasMore: false, Total: &total},
	}

	page, err := a.Assemble(ctx, &NormalizedRequest{PageSize: 3}, res)
	require.NoError(t, err)
	assert.Empty(t, page.NextPageToken)
	require.NotNil(t, page.TotalSize)
	assert.Equal(t, total, *page.TotalSize)
}

func TestAssembleTotalEstimatePassthrough(t *testing.T) {
	ctx := context.Background()
	a := NewAssembler[string](testCodec(t, CodecOptions{}))

	total := int64(1_000_000)
	res := &Resolution[string]{
		State:  StateFulfilled,
		Offset: 0,
		Window: &Window[string]{Items: []string{"x"}, HasMore: true, Total: &total, TotalIsEstimate: true},
	}

	page, err := a.Assemble(ctx, &NormalizedRequest{PageSize: 1, Fingerprint: "fp"}, res)
	require.NoError(t, err)
	assert.True(t, page.TotalSizeIsEstimate)
}

func TestAssembleExhausted(t *testing.T) {
	ctx := context.Background()
	a := NewAssembler[string](testCodec(t, CodecOptions{}))

	page, err := a.Assemble(ctx, &NormalizedRequest{PageSize: 3}, &Resolution[string]{State: StateExhausted, Offset: 9999})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextPageToken)
}

func TestAssembleDegradedRetargetsSameOffset(t *testing.T) {
	ctx := context.Background()
	codec := testCodec(t, CodecOptions{})
	a := NewAssembler[string](codec)

	nr := &NormalizedRequest{PageSize: 3, Fingerprint: "fp"}
	page, err := a.Assemble(ctx, nr, &Resolution[string]{State: StateDegraded, Offset: 1_000_000})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	require.NotEmpty(t, page.NextPageToken)

	p, err := codec.Decode(ctx, page.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), p.Offset)
	assert.Equal(t, "fp", p.Fingerprint)
}
