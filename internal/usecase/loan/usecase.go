package loan

import (
	"context"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/client"
	domain "smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/repayment"
	"smartlenderup-backend/internal/domain/uow"
	"smartlenderup-backend/internal/usecase/storeerr"
	"smartlenderup-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	loans      domain.Repository
	repayments repayment.Repository
	uow        uow.UnitOfWork
	now        func() time.Time
}

func NewUsecase(loans domain.Repository, repayments repayment.Repository, tx uow.UnitOfWork, now func() time.Time) *Usecase {
	if now == nil {
		now = time.Now
	}
	return &Usecase{loans: loans, repayments: repayments, uow: tx, now: now}
}

// Apply creates a Pending loan and its phase 1 loan_application record in
// one transaction.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "must be greater than 0")
	}
	priority := approval.Priority(in.Priority)
	switch priority {
	case "":
		priority = approval.PriorityMedium
	case approval.PriorityLow, approval.PriorityMedium, approval.PriorityHigh, approval.PriorityUrgent:
	default:
		return nil, apperr.Validation("priority", "must be one of low, medium, high, urgent")
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Clients.GetByClientID(ctx, in.ClientID)
		if err != nil {
			return storeerr.Map(err, client.ErrNotFound)
		}
		if c.Status == client.StatusBlacklisted {
			return client.ErrBlacklisted
		}

		// one pending application per client
		_, err = r.Loans.GetPendingLoanByClientID(ctx, in.ClientID)
		switch {
		case err == nil:
			return domain.ErrPendingExists
		case !storeerr.IsNotFound(err):
			return storeerr.Map(err, domain.ErrNotFound)
		}

		now := u.now().UTC()
		amount := in.Amount.Round(2)
		l := &domain.Loan{
			LoanID:             id.NewID32(),
			ClientID:           c.ClientID,
			Principal:          amount,
			OutstandingBalance: amount,
			Status:             domain.StatusPending,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return storeerr.Map(err, domain.ErrNotFound)
		}

		a := &approval.Approval{
			ApprovalID:  id.NewID32(),
			Type:        approval.TypeLoanApplication,
			Phase:       approval.PhaseRequested,
			Status:      approval.StatusPending,
			Amount:      decimal.NewNullDecimal(amount),
			ClientID:    c.ClientID,
			ClientName:  c.Name,
			LoanID:      l.LoanID,
			RequestedBy: in.RequestedBy,
			RequestDate: now,
			Priority:    priority,
			Notes:       in.Notes,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return storeerr.Map(err, approval.ErrNotFound)
		}

		dto = &LoanDTO{Loan: l, ApprovalID: a.ApprovalID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	ps, err := u.repayments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, storeerr.Map(err, domain.ErrNotFound)
	}
	return &LoanDTO{Loan: l, Repayments: ps}, nil
}
