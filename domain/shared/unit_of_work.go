package shared

import "context"

// UnitOfWork 管理事务边界。
// Gateways called with the context passed to fn join the same transaction.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTransaction runs fn directly. Used by stores without transactions.
type NoTransaction struct{}

// Execute calls fn with ctx.
func (NoTransaction) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
