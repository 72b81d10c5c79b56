package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions.
// ExecTx called with a context that already carries a transaction joins it,
// so services can compose without opening nested transactions.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
