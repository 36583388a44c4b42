package approvalmock

import (
	"context"

	domain "smartlenderup-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, a *domain.Approval) error
	GetByApprovalIDFn          func(ctx context.Context, approvalID string) (*domain.Approval, error)
	GetByApprovalIDForUpdateFn func(ctx context.Context, approvalID string) (*domain.Approval, error)
	SaveFn                     func(ctx context.Context, a *domain.Approval) error
	ListFn                     func(ctx context.Context, f domain.Filter) ([]domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	if m.GetByApprovalIDFn != nil {
		return m.GetByApprovalIDFn(ctx, approvalID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*domain.Approval, error) {
	if m.GetByApprovalIDForUpdateFn != nil {
		return m.GetByApprovalIDForUpdateFn(ctx, approvalID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Approval) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Approval, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}
