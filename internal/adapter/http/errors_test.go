package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/client"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/organization"
	"smartlenderup-backend/internal/infrastructure/lock"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("reason", "too short"), http.StatusUnprocessableEntity},
		{fmt.Errorf("advance: %w", funding.ErrInsufficientFunds), http.StatusUnprocessableEntity},
		{funding.ErrInactive, http.StatusUnprocessableEntity},
		{loan.ErrOverpayment, http.StatusUnprocessableEntity},
		{client.ErrBlacklisted, http.StatusUnprocessableEntity},
		{approval.ErrNotFound, http.StatusNotFound},
		{loan.ErrNotFound, http.StatusNotFound},
		{organization.ErrNotFound, http.StatusNotFound},
		{approval.ErrTerminal, http.StatusConflict},
		{approval.ErrInvalidTransition, http.StatusConflict},
		{organization.ErrDuplicate, http.StatusConflict},
		{loan.ErrPendingExists, http.StatusConflict},
		{lock.ErrBusy, http.StatusConflict},
		{apperr.Remote(errors.New("i/o timeout")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWriteError_HidesServerDetail(t *testing.T) {
	e := newEchoWithValidator()
	c, rec := newCtx(e, http.MethodGet, "/loans/x", nil)
	if err := writeError(c, quietLogger(), "GetLoan", errors.New("dial tcp 10.0.0.5:3306: secret host")); err != nil {
		t.Fatalf("writeError: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if er := decodeError(rec); er.Error != "internal error" {
		t.Fatalf("error = %q", er.Error)
	}
}

func TestWriteError_ValidationDetails(t *testing.T) {
	e := newEchoWithValidator()
	c, rec := newCtx(e, http.MethodPost, "/approvals/x/reject", nil)
	_ = writeError(c, quietLogger(), "RejectApproval", apperr.Validation("reason", "must be at least 10 characters"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if er := decodeError(rec); !containsFieldMsg(er.Details, "reason", "at least 10") {
		t.Fatalf("details = %+v", er.Details)
	}
}
