package loan

import (
	domain "smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

type ApplyInput struct {
	ClientID    string
	Amount      decimal.Decimal
	RequestedBy string
	Priority    string
	Notes       string
}

type LoanDTO struct {
	*domain.Loan
	ApprovalID string                `json:"approval_id,omitempty"`
	Repayments []repayment.Repayment `json:"repayments,omitempty"`
}
