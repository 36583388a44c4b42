package uow

import (
	"context"

	"smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/client"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/repayment"
)

// Repos are bound to one transaction.
type Repos struct {
	Approvals  approval.Repository
	Loans      loan.Repository
	Funding    funding.Repository
	Clients    client.Repository
	Repayments repayment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the approval row first, then pass it in
	WithinApprovalTx(ctx context.Context, approvalID string, fn func(r Repos, a *approval.Approval) error) error
}
