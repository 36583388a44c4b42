package fundingmock

import (
	"context"

	domain "smartlenderup-backend/internal/domain/funding"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, a *domain.Account) error
	GetByAccountIDFn          func(ctx context.Context, accountID string) (*domain.Account, error)
	GetByAccountIDForUpdateFn func(ctx context.Context, accountID string) (*domain.Account, error)
	SaveFn                    func(ctx context.Context, a *domain.Account) error
	ListFn                    func(ctx context.Context) ([]domain.Account, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if m.GetByAccountIDForUpdateFn != nil {
		return m.GetByAccountIDForUpdateFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Account, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
