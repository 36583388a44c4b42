package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("loan not found")
	ErrOverpayment   = errors.New("payment exceeds outstanding balance")
	ErrNotRepayable  = errors.New("loan is not in a repayable state")
	ErrPendingExists = errors.New("client already has a pending loan")
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusActive     Status = "Active"
	StatusOverdue    Status = "Overdue"
	StatusFullyPaid  Status = "Fully Paid"
	StatusRejected   Status = "Rejected"
	StatusWrittenOff Status = "Written Off"
)

// Table: loans
type Loan struct {
	ID                 uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID             string          `gorm:"column:loan_id;type:char(32);not null;uniqueIndex" json:"loan_id"`
	ClientID           string          `gorm:"column:client_id;type:char(32);not null;index" json:"client_id"`
	Principal          decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	OutstandingBalance decimal.Decimal `gorm:"column:outstanding_balance;type:decimal(18,2);not null" json:"outstanding_balance"`
	DaysInArrears      int             `gorm:"column:days_in_arrears;not null;default:0" json:"days_in_arrears"`
	Status             Status          `gorm:"column:status;size:16;not null;default:'Pending'" json:"status"`
	DisbursedAt        *time.Time      `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// IsActive reports whether the loan is disbursed and still owed, so it
// counts towards the portfolio. Pending, rejected, written-off and fully paid
// loans never do.
func (l *Loan) IsActive() bool {
	switch l.Status {
	case StatusActive, StatusOverdue:
		return l.OutstandingBalance.IsPositive()
	default:
		return false
	}
}

// ApplyPayment reduces the outstanding balance. A cleared balance closes the
// loan and resets its arrears.
func (l *Loan) ApplyPayment(amount decimal.Decimal) error {
	switch l.Status {
	case StatusActive, StatusOverdue:
	default:
		return ErrNotRepayable
	}
	if amount.GreaterThan(l.OutstandingBalance) {
		return ErrOverpayment
	}
	l.OutstandingBalance = l.OutstandingBalance.Sub(amount)
	if l.OutstandingBalance.IsZero() {
		l.Status = StatusFullyPaid
		l.DaysInArrears = 0
	}
	return nil
}
