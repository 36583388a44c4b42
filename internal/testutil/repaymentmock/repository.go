package repaymentmock

import (
	"context"

	domain "smartlenderup-backend/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn       func(ctx context.Context, r *domain.Repayment) error
	ListByLoanIDFn func(ctx context.Context, loanID string) ([]domain.Repayment, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]domain.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
