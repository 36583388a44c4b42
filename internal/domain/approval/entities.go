package approval

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("approval not found")
	ErrInvalidTransition = errors.New("approval not in a phase that can be advanced")
	ErrTerminal          = errors.New("approval already finalized")
)

type Type string

const (
	TypeLoanApplication  Type = "loan_application"
	TypeLoanRestructure  Type = "loan_restructure"
	TypeLoanWriteoff     Type = "loan_writeoff"
	TypeClientOnboarding Type = "client_onboarding"
	TypeDisbursement     Type = "disbursement"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLoanApplication, TypeLoanRestructure, TypeLoanWriteoff, TypeClientOnboarding, TypeDisbursement:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Table: approvals. Rows are never deleted; only status, phase and the
// stamp fields change.
type Approval struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string              `gorm:"column:approval_id;type:char(32);not null;uniqueIndex" json:"approval_id"`
	Type       Type                `gorm:"column:type;size:32;not null" json:"type"`
	Phase      Phase               `gorm:"column:phase;not null;default:1;index:idx_approvals_phase_status" json:"phase"`
	Status     Status              `gorm:"column:status;size:16;not null;default:'pending';index:idx_approvals_phase_status" json:"status"`
	Amount     decimal.NullDecimal `gorm:"column:amount;type:decimal(18,2)" json:"amount"`
	ClientID   string              `gorm:"column:client_id;type:char(32);index" json:"client_id"`
	ClientName string              `gorm:"column:client_name;size:128" json:"client_name"`
	// Loan mirrored by this approval, if any.
	LoanID      string    `gorm:"column:loan_id;size:32;index" json:"loan_id,omitempty"`
	RequestedBy string    `gorm:"column:requested_by;size:64" json:"requested_by"`
	RequestDate time.Time `gorm:"column:request_date;not null" json:"request_date"`
	Priority    Priority  `gorm:"column:priority;size:16;not null;default:'medium'" json:"priority"`
	Notes       string    `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Approver        string     `gorm:"column:approver;size:64" json:"approver,omitempty"`
	ApprovalDate    *time.Time `gorm:"column:approval_date" json:"approval_date,omitempty"`
	RejectionReason string     `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	// Set on the 3 -> 4 transition.
	ReleaseDate        *time.Time `gorm:"column:release_date" json:"release_date,omitempty"`
	DisbursementMethod string     `gorm:"column:disbursement_method;size:32" json:"disbursement_method,omitempty"`
	SourceOfFunds      string     `gorm:"column:source_of_funds;size:32" json:"source_of_funds,omitempty"`
	AccountNumber      string     `gorm:"column:account_number;size:64" json:"account_number,omitempty"`
	DisbursedAt        *time.Time `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Approval) TableName() string { return "approvals" }

// AmountOrZero treats a missing amount as zero.
func (a *Approval) AmountOrZero() decimal.Decimal {
	if !a.Amount.Valid {
		return decimal.Zero
	}
	return a.Amount.Decimal
}

type Filter struct {
	Phase  Phase
	Status Status
	Type   Type
}
