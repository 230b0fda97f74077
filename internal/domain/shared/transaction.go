package shared

import "context"

// TransactionManager runs a function inside one atomic persistence unit.
// Every repository call made with the callback's context joins the same
// transaction; if fn returns an error nothing is persisted. Multi-row
// writes (sale + installments + phone flip, balance + ledger entry +
// history snapshot) must go through this.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
