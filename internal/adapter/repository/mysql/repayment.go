package mysql

import (
	"context"

	repaymentDomain "smartlenderup-backend/internal/domain/repayment"

	"gorm.io/gorm"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, p *repaymentDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]repaymentDomain.Repayment, error) {
	var out []repaymentDomain.Repayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("paid_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
