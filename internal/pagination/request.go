package pagination

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

const (
	// DefaultPageSize is substituted when the caller sends no page_size.
	DefaultPageSize int32 = 50

	// MaxPageSize caps a page. Larger requests are clamped, never rejected.
	MaxPageSize int32 = 1000
)

// ListRequest is the raw, untrusted shape of a list call.
type ListRequest struct {
	Parent    string
	PageSize  int32
	PageToken string
	Skip      int32
	Filter    Filter
}

// NormalizedRequest is a ListRequest that passed validation: page size
// defaulted and clamped, token decoded, fingerprint computed.
type NormalizedRequest struct {
	Parent      string
	PageSize    int32
	Skip        int32
	Filter      Filter
	Fingerprint string

	// Offset is the cursor position carried by the page token, zero when
	// the request starts from the beginning.
	Offset int64
}

// Validator checks and normalizes list requests. It is a pure function of
// its inputs and performs no backend work.
type Validator struct {
	codec       *Codec
	defaultSize int32
	maxSize     int32
}

// NewValidator creates a validator. Zero sizes select the package defaults.
func NewValidator(codec *Codec, defaultSize, maxSize int32) *Validator {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	return &Validator{codec: codec, defaultSize: defaultSize, maxSize: maxSize}
}

func (v *Validator) Validate(ctx context.Context, req ListRequest) (*NormalizedRequest, error) {
	if req.PageSize < 0 {
		return nil, &InvalidArgumentError{Field: "page_size", Reason: "must not be negative"}
	}
	if req.Skip < 0 {
		return nil, &InvalidArgumentError{Field: "skip", Reason: "must not be negative"}
	}

	size := req.PageSize
	if size == 0 {
		size = v.defaultSize
	}
	if size > v.maxSize {
		size = v.maxSize
	}

	nr := &NormalizedRequest{
		Parent:      req.Parent,
		PageSize:    size,
		Skip:        req.Skip,
		Filter:      req.Filter,
		Fingerprint: Fingerprint(req.Parent, req.Filter),
	}

	if req.PageToken != "" {
		p, err := v.codec.Decode(ctx, req.PageToken)
		if err != nil {
			return nil, &InvalidArgumentError{Field: "page_token", Reason: ErrInvalidToken.Error()}
		}
		if p.Fingerprint != nr.Fingerprint {
			return nil, &InvalidArgumentError{Field: "page_token", Reason: "token does not match request parameters"}
		}
		nr.Offset = p.Offset
	}

	return nr, nil
}

// Fingerprint derives the consistency check value for a parent scope and
// filter. A token is valid only under the exact fingerprint it was issued
// for; any drift between pages reads as an invalid argument.
func Fingerprint(parent string, f Filter) string {
	h := sha256.New()
	h.Write([]byte(parent))
	h.Write([]byte{0})
	h.Write([]byte(f.Collection))
	h.Write([]byte{0})
	h.Write([]byte(f.Kind))
	return hex.EncodeToString(h.Sum(nil))
}
