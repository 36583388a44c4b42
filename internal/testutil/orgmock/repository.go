package orgmock

import (
	"context"

	domain "smartlenderup-backend/internal/domain/organization"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn                  func(ctx context.Context, o *domain.Organization) error
	GetByOrgIDFn              func(ctx context.Context, orgID string) (*domain.Organization, error)
	SaveFn                    func(ctx context.Context, o *domain.Organization) error
	UpdateByOrgIDFn           func(ctx context.Context, orgID string, fn func(o *domain.Organization) error) (*domain.Organization, error)
	ExistsByUsernameOrEmailFn func(ctx context.Context, username, email string) (bool, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Organization) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOrgID(ctx context.Context, orgID string) (*domain.Organization, error) {
	if m.GetByOrgIDFn != nil {
		return m.GetByOrgIDFn(ctx, orgID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, o *domain.Organization) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

// UpdateByOrgID falls back to GetByOrgID, fn and Save when UpdateByOrgIDFn
// is unset.
func (m *Repo) UpdateByOrgID(ctx context.Context, orgID string, fn func(o *domain.Organization) error) (*domain.Organization, error) {
	if m.UpdateByOrgIDFn != nil {
		return m.UpdateByOrgIDFn(ctx, orgID, fn)
	}
	o, err := m.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	if err := m.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (m *Repo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if m.ExistsByUsernameOrEmailFn != nil {
		return m.ExistsByUsernameOrEmailFn(ctx, username, email)
	}
	return false, nil
}
