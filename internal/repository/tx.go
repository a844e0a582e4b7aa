package repository

import "context"

// TxManager runs fn with every repository call inside it sharing one
// database transaction. The transaction commits when fn returns nil and
// rolls back otherwise.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
