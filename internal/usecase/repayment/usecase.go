package repayment

import (
	"context"
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	domain "smartlenderup-backend/internal/domain/repayment"
	"smartlenderup-backend/internal/domain/uow"
	"smartlenderup-backend/internal/usecase/storeerr"
	"smartlenderup-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type RecordInput struct {
	LoanID               string
	Amount               decimal.Decimal
	PaymentMethod        string
	DestinationAccountID string
	Reference            string
	RecordedBy           string
	// Zero means now.
	PaidAt time.Time
}

type RecordResult struct {
	Repayment *domain.Repayment `json:"repayment"`
	Loan      *loan.Loan        `json:"loan"`
}

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, now func() time.Time) *Usecase {
	if now == nil {
		now = time.Now
	}
	return &Usecase{uow: tx, now: now}
}

// Record applies a payment to a loan and credits the destination account,
// when one is given, in one transaction.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*RecordResult, error) {
	if strings.TrimSpace(in.LoanID) == "" {
		return nil, apperr.Validation("loan_id", "is required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "must be greater than 0")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, apperr.Validation("payment_method", "is required")
	}
	amount := in.Amount.Round(2)
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = u.now()
	}

	var res *RecordResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			return storeerr.Map(err, loan.ErrNotFound)
		}
		if err := l.ApplyPayment(amount); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return storeerr.Map(err, loan.ErrNotFound)
		}

		if in.DestinationAccountID != "" {
			acct, err := r.Funding.GetByAccountIDForUpdate(ctx, in.DestinationAccountID)
			if err != nil {
				if storeerr.IsNotFound(err) {
					return apperr.Validation("destination_account_id", "unknown funding account")
				}
				return storeerr.Map(err, funding.ErrNotFound)
			}
			acct.Credit(amount)
			if err := r.Funding.Save(ctx, acct); err != nil {
				return storeerr.Map(err, funding.ErrNotFound)
			}
		}

		p := &domain.Repayment{
			RepaymentID:          id.NewID32(),
			LoanID:               l.LoanID,
			Amount:               amount,
			Status:               domain.StatusCompleted,
			PaymentMethod:        strings.TrimSpace(in.PaymentMethod),
			DestinationAccountID: in.DestinationAccountID,
			Reference:            in.Reference,
			RecordedBy:           in.RecordedBy,
			PaidAt:               paidAt.UTC(),
		}
		if err := r.Repayments.Create(ctx, p); err != nil {
			return storeerr.Map(err, loan.ErrNotFound)
		}
		res = &RecordResult{Repayment: p, Loan: l}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
