package ports

import "context"

// TxRunner wraps a function in one transactional scope. Every write issued
// through the ctx passed to fn commits atomically; any error from fn rolls
// the whole scope back. The aggregate engine relies on this to keep recipe
// documents and their back-reference arrays consistent in both directions.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
