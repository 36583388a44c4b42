package mysql

import (
	"smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/client"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/organization"
	"smartlenderup-backend/internal/domain/repayment"
	"smartlenderup-backend/internal/domain/scoring"

	"gorm.io/gorm"
)

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&approval.Approval{},
		&loan.Loan{},
		&funding.Account{},
		&client.Client{},
		&scoring.Parameter{},
		&organization.Organization{},
		&repayment.Repayment{},
	}
}

// Migrate creates or updates all tables. Only used when AUTO_MIGRATE is set.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
