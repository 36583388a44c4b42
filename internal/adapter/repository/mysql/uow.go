package mysql

import (
	"context"
	"errors"

	"smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Approvals:  &ApprovalRepository{db: tx},
		Loans:      &LoanRepository{db: tx},
		Funding:    &FundingRepository{db: tx},
		Clients:    &ClientRepository{db: tx},
		Repayments: &RepaymentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinApprovalTx(ctx context.Context, approvalID string, fn func(r uow.Repos, a *approval.Approval) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the approval row up-front so concurrent transitions serialize
		a, err := r.Approvals.GetByApprovalIDForUpdate(ctx, approvalID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return approval.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
