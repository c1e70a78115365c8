package pagination

import "errors"

// ErrInvalidToken is the single failure shape for every token problem:
// corrupt ciphertext, tampered data, an unknown payload version, elapsed TTL,
// or a missing backing record. Callers must not be able to tell which.
var ErrInvalidToken = errors.New("invalid or expired page token")

// ErrUnresolved may be returned by a Lister that determines it cannot resolve
// the requested offset within its latency budget. It is converted into a
// degraded success, never surfaced to the caller.
var ErrUnresolved = errors.New("offset not resolvable in time")

// InvalidArgumentError rejects a malformed list request before any backend
// work happens.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument [" + e.Field + "]: " + e.Reason
}

// IsInvalidArgument reports whether err is a caller-facing rejection.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}
