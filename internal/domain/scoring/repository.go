package scoring

import "context"

type Repository interface {
	ListByClientType(ctx context.Context, ct ClientType) ([]Parameter, error)
	// Replaces the whole set for ct in one transaction.
	ReplaceForClientType(ctx context.Context, ct ClientType, params []Parameter) error
}
