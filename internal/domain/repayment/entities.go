package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Table: repayments
type Repayment struct {
	ID                   uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RepaymentID          string          `gorm:"column:repayment_id;type:char(32);not null;uniqueIndex" json:"repayment_id"`
	LoanID               string          `gorm:"column:loan_id;type:char(32);not null;index" json:"loan_id"`
	Amount               decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Status               Status          `gorm:"column:status;size:16;not null" json:"status"`
	PaymentMethod        string          `gorm:"column:payment_method;size:32;not null" json:"payment_method"`
	DestinationAccountID string          `gorm:"column:destination_account_id;size:32" json:"destination_account_id,omitempty"`
	Reference            string          `gorm:"column:reference;size:64" json:"reference,omitempty"`
	RecordedBy           string          `gorm:"column:recorded_by;size:64" json:"recorded_by"`
	PaidAt               time.Time       `gorm:"column:paid_at;not null" json:"paid_at"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }
