package mysql

import (
	"context"

	approvalDomain "smartlenderup-backend/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) Save(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("approval_id = ?", approvalID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) GetByApprovalIDForUpdate(ctx context.Context, approvalID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("approval_id = ?", approvalID).
		First(&out)
	return &out, res.Error
}

func (r *ApprovalRepository) List(ctx context.Context, f approvalDomain.Filter) ([]approvalDomain.Approval, error) {
	q := r.db.WithContext(ctx).Model(&approvalDomain.Approval{})
	if f.Phase != 0 {
		q = q.Where("phase = ?", f.Phase)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	var out []approvalDomain.Approval
	err := q.Order("request_date DESC, id DESC").Find(&out).Error
	return out, err
}
