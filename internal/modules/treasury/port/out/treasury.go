package out

import (
	"context"

	"focuslock/internal/modules/treasury/domain"
)

type AccountStore interface {
	// Get returns a zero-balance account owned by the address itself when
	// no record exists yet.
	Get(ctx context.Context, address string) (domain.Account, error)
	Put(ctx context.Context, account domain.Account) error
}
