package datagateway

import "context"

type Tx interface {
	// Commit commits the transaction. All writes performed after Begin will be
	// persisted. Commit closes the current transaction.
	Commit(ctx context.Context) error
	// Rollback discards all writes performed after Begin. Rollback is safe to
	// call after Commit, so a deferred Rollback is always safe.
	Rollback(ctx context.Context) error
}
