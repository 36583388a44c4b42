package mysql

import (
	"context"

	scoringDomain "smartlenderup-backend/internal/domain/scoring"

	"gorm.io/gorm"
)

type ScoringRepository struct{ db *gorm.DB }

func NewScoringRepository(db *gorm.DB) *ScoringRepository { return &ScoringRepository{db: db} }

func (r *ScoringRepository) ListByClientType(ctx context.Context, ct scoringDomain.ClientType) ([]scoringDomain.Parameter, error) {
	var out []scoringDomain.Parameter
	err := r.db.WithContext(ctx).
		Where("client_type = ?", ct).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *ScoringRepository) ReplaceForClientType(ctx context.Context, ct scoringDomain.ClientType, params []scoringDomain.Parameter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_type = ?", ct).Delete(&scoringDomain.Parameter{}).Error; err != nil {
			return err
		}
		if len(params) == 0 {
			return nil
		}
		for i := range params {
			params[i].ID = 0
			params[i].ClientType = ct
		}
		return tx.Create(&params).Error
	})
}
