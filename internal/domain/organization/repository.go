package organization

import "context"

type Repository interface {
	Create(ctx context.Context, o *Organization) error
	GetByOrgID(ctx context.Context, orgID string) (*Organization, error)
	Save(ctx context.Context, o *Organization) error
	// UpdateByOrgID row-locks the organization, applies fn and saves it in one
	// transaction. An error from fn rolls back and is returned as is.
	UpdateByOrgID(ctx context.Context, orgID string, fn func(o *Organization) error) (*Organization, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
