package approval

import (
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/country"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/policy"
)

// Phase is the pipeline position of an approval.
type Phase int

const (
	PhaseRequested Phase = iota + 1
	PhaseUnderReview
	PhaseApprovedForDisbursement
	PhaseReadyForDisbursing
	PhaseActive
)

var phaseNames = map[Phase]string{
	PhaseRequested:               "Requested",
	PhaseUnderReview:             "Under Review",
	PhaseApprovedForDisbursement: "Approved for Disbursement",
	PhaseReadyForDisbursing:      "Ready for Disbursing",
	PhaseActive:                  "Active",
}

func (p Phase) Valid() bool { return p >= PhaseRequested && p <= PhaseActive }

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return "Unknown"
}

// TransitionData carries the caller-supplied fields for one advance. Only
// Notes is read outside the 3 -> 4 transition.
type TransitionData struct {
	Notes              string
	ReleaseDate        time.Time
	DisbursementMethod string
	SourceOfFunds      string
	AccountNumber      string
}

// Engine computes phase transitions. Country selects the disbursement
// methods accepted at 3 -> 4.
type Engine struct {
	Country string
	Now     func() time.Time
}

func NewEngine(countryCode string, now func() time.Time) Engine {
	if now == nil {
		now = time.Now
	}
	return Engine{Country: countryCode, Now: now}
}

// CanAdvance is the single phase/status consistency rule: only pending
// records in phases 1..4 move forward.
func CanAdvance(a *Approval) error {
	if a.Status != StatusPending {
		return ErrTerminal
	}
	if !a.Phase.Valid() || a.Phase >= PhaseActive {
		return ErrInvalidTransition
	}
	return nil
}

// ValidateDisbursement checks the fields required to leave phase 3.
func (e Engine) ValidateDisbursement(d TransitionData) error {
	if d.ReleaseDate.IsZero() {
		return apperr.Validation("release_date", "is required")
	}
	if policy.Day(d.ReleaseDate).Before(policy.Day(e.Now())) {
		return apperr.Validation("release_date", "must not be in the past")
	}
	method := strings.TrimSpace(d.DisbursementMethod)
	if method == "" {
		return apperr.Validation("disbursement_method", "is required")
	}
	if !country.IsDisbursementMethod(e.Country, method) {
		return apperr.Validation("disbursement_method", "must be one of "+strings.Join(country.DisbursementMethods(e.Country), ", "))
	}
	if strings.TrimSpace(d.SourceOfFunds) == "" {
		return apperr.Validation("source_of_funds", "is required")
	}
	if strings.TrimSpace(d.AccountNumber) == "" {
		return apperr.Validation("account_number", "is required")
	}
	return nil
}

// Advance moves a forward by exactly one phase. Leaving phase 3 debits the
// record amount from source, which must be the account named by
// d.SourceOfFunds. On error neither a nor source is modified.
func (e Engine) Advance(a *Approval, d TransitionData, source *funding.Account, actor string) error {
	if err := CanAdvance(a); err != nil {
		return err
	}

	if a.Phase == PhaseApprovedForDisbursement {
		if err := e.ValidateDisbursement(d); err != nil {
			return err
		}
		if source == nil || source.AccountID != d.SourceOfFunds {
			return funding.ErrNotFound
		}
		if err := source.Debit(a.AmountOrZero()); err != nil {
			return err
		}
		release := policy.Day(d.ReleaseDate)
		a.ReleaseDate = &release
		a.DisbursementMethod = strings.TrimSpace(d.DisbursementMethod)
		a.SourceOfFunds = d.SourceOfFunds
		a.AccountNumber = strings.TrimSpace(d.AccountNumber)
	}

	if n := strings.TrimSpace(d.Notes); n != "" {
		a.Notes = n
	}
	a.Phase++
	if a.Phase == PhaseActive {
		now := e.Now().UTC()
		a.Status = StatusApproved
		a.Approver = actor
		a.ApprovalDate = &now
	}
	return nil
}

// Reject finalizes a as rejected. A rejected record may be rejected again,
// which overwrites the stamp; an approved one may not.
func (e Engine) Reject(a *Approval, reason, actor string) error {
	if a.Status == StatusApproved {
		return ErrTerminal
	}
	if err := policy.ValidateReason(reason); err != nil {
		return err
	}
	now := e.Now().UTC()
	a.Status = StatusRejected
	a.Approver = actor
	a.ApprovalDate = &now
	a.RejectionReason = strings.TrimSpace(reason)
	return nil
}

// Summary counts records per phase and per status.
type Summary struct {
	Total    int            `json:"total"`
	ByPhase  map[Phase]int  `json:"by_phase"`
	ByStatus map[Status]int `json:"by_status"`
}

func Summarize(records []Approval) Summary {
	s := Summary{ByPhase: map[Phase]int{}, ByStatus: map[Status]int{}}
	for i := range records {
		s.Total++
		s.ByPhase[records[i].Phase]++
		s.ByStatus[records[i].Status]++
	}
	return s
}
