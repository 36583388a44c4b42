package funding

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)
	// Row-locks the account for the rest of the transaction.
	GetByAccountIDForUpdate(ctx context.Context, accountID string) (*Account, error)
	Save(ctx context.Context, a *Account) error
	List(ctx context.Context) ([]Account, error)
}
