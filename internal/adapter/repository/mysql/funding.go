package mysql

import (
	"context"

	fundingDomain "smartlenderup-backend/internal/domain/funding"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FundingRepository struct{ db *gorm.DB }

func NewFundingRepository(db *gorm.DB) *FundingRepository { return &FundingRepository{db: db} }

func (r *FundingRepository) Create(ctx context.Context, a *fundingDomain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *FundingRepository) Save(ctx context.Context, a *fundingDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *FundingRepository) GetByAccountID(ctx context.Context, accountID string) (*fundingDomain.Account, error) {
	var out fundingDomain.Account
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out)
	return &out, res.Error
}

func (r *FundingRepository) GetByAccountIDForUpdate(ctx context.Context, accountID string) (*fundingDomain.Account, error) {
	var out fundingDomain.Account
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ?", accountID).
		First(&out)
	return &out, res.Error
}

func (r *FundingRepository) List(ctx context.Context) ([]fundingDomain.Account, error) {
	var out []fundingDomain.Account
	err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&out).Error
	return out, err
}
