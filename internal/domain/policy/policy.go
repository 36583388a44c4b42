// Package policy holds business rules that more than one workflow applies.
package policy

import (
	"strings"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
)

// ReasonMinLength applies to every rejection and suspension reason.
const ReasonMinLength = 10

// DisbursementDueOffset is the fixed gap between a disbursement request and
// its due date.
const DisbursementDueOffset = 3 * 24 * time.Hour

func ValidateReason(reason string) error {
	r := strings.TrimSpace(reason)
	if r == "" {
		return apperr.Validation("reason", "is required")
	}
	if len([]rune(r)) < ReasonMinLength {
		return apperr.Validation("reason", "must be at least 10 characters")
	}
	return nil
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
