package scoringmock

import (
	"context"

	domain "smartlenderup-backend/internal/domain/scoring"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	ListByClientTypeFn     func(ctx context.Context, ct domain.ClientType) ([]domain.Parameter, error)
	ReplaceForClientTypeFn func(ctx context.Context, ct domain.ClientType, params []domain.Parameter) error
}

func (m *Repo) ListByClientType(ctx context.Context, ct domain.ClientType) ([]domain.Parameter, error) {
	if m.ListByClientTypeFn != nil {
		return m.ListByClientTypeFn(ctx, ct)
	}
	return nil, nil
}

func (m *Repo) ReplaceForClientType(ctx context.Context, ct domain.ClientType, params []domain.Parameter) error {
	if m.ReplaceForClientTypeFn != nil {
		return m.ReplaceForClientTypeFn(ctx, ct, params)
	}
	return nil
}
