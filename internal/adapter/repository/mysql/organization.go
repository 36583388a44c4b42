package mysql

import (
	"context"

	orgDomain "smartlenderup-backend/internal/domain/organization"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrganizationRepository struct{ db *gorm.DB }

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *orgDomain.Organization) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrganizationRepository) Save(ctx context.Context, o *orgDomain.Organization) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrganizationRepository) GetByOrgID(ctx context.Context, orgID string) (*orgDomain.Organization, error) {
	var out orgDomain.Organization
	res := r.db.WithContext(ctx).Where("org_id = ?", orgID).First(&out)
	return &out, res.Error
}

func (r *OrganizationRepository) UpdateByOrgID(ctx context.Context, orgID string, fn func(o *orgDomain.Organization) error) (*orgDomain.Organization, error) {
	var out orgDomain.Organization
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("org_id = ?", orgID).
			First(&out).Error; err != nil {
			return err
		}
		if err := fn(&out); err != nil {
			return err
		}
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *OrganizationRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&orgDomain.Organization{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	return n > 0, err
}
