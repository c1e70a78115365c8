package pagination

import "context"

// Page is the caller-facing result of a list call. An empty NextPageToken is
// the only end-of-collection signal; a short or empty page with a token set
// just means the caller should keep going.
type Page[T any] struct {
	Items               []T    `json:"items"`
	NextPageToken       string `json:"next_page_token,omitempty"`
	TotalSize           *int64 `json:"total_size,omitempty"`
	TotalSizeIsEstimate bool   `json:"total_size_is_estimate,omitempty"`
}

// Assembler turns a resolution into a response page and issues the next
// continuation token. Item order is whatever the Lister produced; the
// assembler never re-sorts.
type Assembler[T any] struct {
	codec *Codec
}

func NewAssembler[T any](codec *Codec) *Assembler[T] {
	return &Assembler[T]{codec: codec}
}

func (a *Assembler[T]) Assemble(ctx context.Context, nr *NormalizedRequest, res *Resolution[T]) (*Page[T], error) {
	switch res.State {
	case StateExhausted:
		return &Page[T]{Items: make([]T, 0)}, nil

	case StateDegraded:
		// The placeholder is an ordinary continuation token retargeting
		// the offset that could not be resolved; the next call retries it.
		token, err := a.codec.Encode(ctx, Payload{
			Offset:      res.Offset,
			Fingerprint: nr.Fingerprint,
		})
		if err != nil {
			return nil, err
		}
		return &Page[T]{Items: make([]T, 0), NextPageToken: token}, nil

	default:
		w := res.Window
		page := &Page[T]{
			Items:               w.Items,
			TotalSize:           w.Total,
			TotalSizeIsEstimate: w.TotalIsEstimate,
		}
		if page.Items == nil {
			page.Items = make([]T, 0)
		}
		if w.HasMore {
			token, err := a.codec.Encode(ctx, Payload{
				Offset:      res.Offset + int64(len(w.Items)),
				Fingerprint: nr.Fingerprint,
			})
			if err != nil {
				return nil, err
			}
			page.NextPageToken = token
		}
		return page, nil
	}
}
