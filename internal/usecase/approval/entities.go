package approval

import (
	"time"

	domain "smartlenderup-backend/internal/domain/approval"
)

// DisbursementFields are read only when a record leaves phase 3.
type DisbursementFields struct {
	ReleaseDate        time.Time
	DisbursementMethod string
	SourceOfFunds      string
	// Empty means the client's registered phone.
	AccountNumber string
}

type AdvanceInput struct {
	ApprovalID string
	Actor      string
	Notes      string
	DisbursementFields
}

func (in AdvanceInput) transitionData() domain.TransitionData {
	return domain.TransitionData{
		Notes:              in.Notes,
		ReleaseDate:        in.ReleaseDate,
		DisbursementMethod: in.DisbursementMethod,
		SourceOfFunds:      in.SourceOfFunds,
		AccountNumber:      in.AccountNumber,
	}
}

type RejectInput struct {
	ApprovalID string
	Actor      string
	Reason     string
}

type BulkApproveInput struct {
	ApprovalIDs []string
	Actor       string
	Notes       string
	DisbursementFields
}

type BulkRejectInput struct {
	ApprovalIDs []string
	Actor       string
	Reason      string
}

type BulkFailure struct {
	ApprovalID string `json:"approval_id"`
	Error      string `json:"error"`
}

// BulkResult reports every id exactly once, in processing order.
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}
