package ports

import "context"

// IdempotencyStore remembers the result id of a request keyed by a client
// supplied Idempotency-Key, per scope (e.g. "signup").
type IdempotencyStore interface {
	Seen(ctx context.Context, scope, key string) (string, bool, error)
	Remember(ctx context.Context, scope, key, value string) error
}
