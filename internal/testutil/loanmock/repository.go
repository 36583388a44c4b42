package loanmock

import (
	"context"

	domain "smartlenderup-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn              func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn     func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingLoanByClientIDFn func(ctx context.Context, clientID string) (*domain.Loan, error)
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	ListFn                     func(ctx context.Context) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetPendingLoanByClientID(ctx context.Context, clientID string) (*domain.Loan, error) {
	if m.GetPendingLoanByClientIDFn != nil {
		return m.GetPendingLoanByClientIDFn(ctx, clientID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
