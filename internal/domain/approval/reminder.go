package approval

import (
	"time"

	"github.com/shopspring/decimal"

	"smartlenderup-backend/internal/domain/policy"
)

type DueLoan struct {
	ApprovalID  string              `json:"approval_id"`
	LoanID      string              `json:"loan_id,omitempty"`
	ClientID    string              `json:"client_id"`
	ClientName  string              `json:"client_name"`
	Amount      decimal.NullDecimal `json:"amount"`
	RequestDate time.Time           `json:"request_date"`
	DueDate     time.Time           `json:"due_date"`
	DaysPastDue int                 `json:"days_past_due"`
}

// DueDate is the request day plus the fixed disbursement offset.
func DueDate(requestDate time.Time) time.Time {
	return policy.Day(requestDate).Add(policy.DisbursementDueOffset)
}

// FindDue returns the pending phase-3 records whose disbursement is due on or
// before today. Records already marked disbursed are skipped.
func FindDue(records []Approval, today time.Time) []DueLoan {
	day := policy.Day(today)
	out := []DueLoan{}
	for i := range records {
		a := &records[i]
		if a.Phase != PhaseApprovedForDisbursement || a.Status != StatusPending || a.DisbursedAt != nil {
			continue
		}
		due := DueDate(a.RequestDate)
		if day.Before(due) {
			continue
		}
		days := int(day.Sub(due).Hours() / 24)
		if days < 0 {
			days = 0
		}
		out = append(out, DueLoan{
			ApprovalID:  a.ApprovalID,
			LoanID:      a.LoanID,
			ClientID:    a.ClientID,
			ClientName:  a.ClientName,
			Amount:      a.Amount,
			RequestDate: a.RequestDate,
			DueDate:     due,
			DaysPastDue: days,
		})
	}
	return out
}
