package database

import (
	"context"
	"errors"
)

// ErrUnavailable marks failures of the underlying store that are safe to retry.
var ErrUnavailable = errors.New("storage temporarily unavailable, please retry")

// Transactor scopes a unit of work to a single transaction. Repositories called with the
// ctx handed to fn run inside that transaction. The transaction is rolled back when fn
// returns an error or panics, and committed otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithinReadSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
