package pagination

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"k8s.io/utils/clock"

	"pagecore/internal/cursorstore"
)

// tokenVersion tags the payload schema. It lives inside the ciphertext so
// the schema can evolve without the wire format betraying it; tokens of an
// older version decode-reject the same way expired ones do.
const tokenVersion = 1

// gcmNonceSize is the recommended nonce size for AES-GCM.
const gcmNonceSize = 12

// defaultInlineLimit is the serialized payload size above which continuation
// state is parked in the cursor store instead of riding inside the token.
const defaultInlineLimit = 512

// Payload is the continuation state a page token carries. The encoded token
// is opaque to the holder; none of these fields are part of the API contract.
type Payload struct {
	Version     int    `json:"v"`
	Offset      int64  `json:"o"`
	Fingerprint string `json:"f"`
	IssuedAt    int64  `json:"iat"`
	StoreKey    string `json:"sk,omitempty"`
}

// CodecOptions configures a Codec.
type CodecOptions struct {
	// Key is the AES key: 16, 24 or 32 bytes.
	Key []byte

	// TTL bounds how long an issued token stays decodable. Zero selects
	// cursorstore.DefaultTTL.
	TTL time.Duration

	// Store, when set, backs payloads whose serialized size exceeds
	// InlineLimit. The token then carries only an opaque store key.
	Store cursorstore.Store

	// Clock defaults to the real clock. Injected for TTL tests.
	Clock clock.PassiveClock

	// InlineLimit overrides the store spill threshold. Zero selects the
	// default; negative forces every payload through the store.
	InlineLimit int
}

// Codec encrypts continuation state into URL-safe opaque strings and back.
// Tokens are tamper-evident (AES-GCM) and expire after the configured TTL.
// A token carries no authorization; the backend re-checks the caller's own
// scope on every call.
type Codec struct {
	aead        cipher.AEAD
	ttl         time.Duration
	store       cursorstore.Store
	clk         clock.PassiveClock
	inlineLimit int
}

func NewCodec(opts CodecOptions) (*Codec, error) {
	block, err := aes.NewCipher(opts.Key)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = cursorstore.DefaultTTL
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	inlineLimit := opts.InlineLimit
	if inlineLimit == 0 {
		inlineLimit = defaultInlineLimit
	}

	return &Codec{
		aead:        aead,
		ttl:         ttl,
		store:       opts.Store,
		clk:         clk,
		inlineLimit: inlineLimit,
	}, nil
}

// Encode serializes and encrypts p. Version and IssuedAt are stamped when
// unset. When a store is configured and the payload is oversized, the state
// is written to the store and the token carries only the store key.
func (c *Codec) Encode(ctx context.Context, p Payload) (string, error) {
	if p.Version == 0 {
		p.Version = tokenVersion
	}
	if p.IssuedAt == 0 {
		p.IssuedAt = c.clk.Now().Unix()
	}

	plaintext, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode page token: %w", err)
	}

	if c.store != nil && len(plaintext) > c.inlineLimit {
		key, err := newStoreKey()
		if err != nil {
			return "", err
		}
		if err := c.store.Put(ctx, key, plaintext); err != nil {
			return "", fmt.Errorf("park page token state: %w", err)
		}
		stub := Payload{Version: p.Version, IssuedAt: p.IssuedAt, StoreKey: key}
		if plaintext, err = json.Marshal(stub); err != nil {
			return "", fmt.Errorf("encode page token: %w", err)
		}
	}

	return c.seal(plaintext)
}

// Decode reverses Encode. Every failure mode collapses to ErrInvalidToken.
func (c *Codec) Decode(ctx context.Context, token string) (*Payload, error) {
	plaintext, err := c.open(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var p Payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return nil, ErrInvalidToken
	}
	if p.Version != tokenVersion {
		return nil, ErrInvalidToken
	}
	if c.expired(p.IssuedAt) {
		return nil, ErrInvalidToken
	}

	if p.StoreKey != "" {
		if c.store == nil {
			return nil, ErrInvalidToken
		}
		stored, err := c.store.Get(ctx, p.StoreKey)
		if err != nil {
			return nil, ErrInvalidToken
		}
		var inner Payload
		if err := json.Unmarshal(stored, &inner); err != nil {
			return nil, ErrInvalidToken
		}
		if inner.Version != tokenVersion || c.expired(inner.IssuedAt) {
			return nil, ErrInvalidToken
		}
		return &inner, nil
	}

	return &p, nil
}

func (c *Codec) seal(plaintext []byte) (string, error) {
	nonce := make([]byte, gcmNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("seal page token: %w", err)
	}
	combined := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(combined), nil
}

func (c *Codec) open(token string) ([]byte, error) {
	combined, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	if len(combined) < gcmNonceSize {
		return nil, fmt.Errorf("token too short")
	}
	nonce, ciphertext := combined[:gcmNonceSize], combined[gcmNonceSize:]
	return c.aead.Open(nil, nonce, ciphertext, nil)
}

func (c *Codec) expired(issuedAt int64) bool {
	return c.clk.Now().Sub(time.Unix(issuedAt, 0)) > c.ttl
}

func newStoreKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("mint store key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
