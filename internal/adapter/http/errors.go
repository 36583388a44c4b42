package http

import (
	"errors"
	"net/http"

	"smartlenderup-backend/internal/domain/apperr"
	"smartlenderup-backend/internal/domain/approval"
	"smartlenderup-backend/internal/domain/client"
	"smartlenderup-backend/internal/domain/funding"
	"smartlenderup-backend/internal/domain/loan"
	"smartlenderup-backend/internal/domain/organization"
	"smartlenderup-backend/internal/infrastructure/lock"
	"smartlenderup-backend/internal/infrastructure/logging"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var (
	notFoundErrs = []error{
		approval.ErrNotFound, loan.ErrNotFound, client.ErrNotFound,
		funding.ErrNotFound, organization.ErrNotFound,
	}
	conflictErrs = []error{
		approval.ErrInvalidTransition, approval.ErrTerminal,
		organization.ErrInvalidTransition, organization.ErrDuplicate,
		loan.ErrPendingExists, loan.ErrNotRepayable, lock.ErrBusy,
	}
	unprocessableErrs = []error{
		funding.ErrInsufficientFunds, funding.ErrInactive,
		loan.ErrOverpayment, client.ErrBlacklisted,
	}
)

// statusFor maps usecase errors onto HTTP codes.
func statusFor(err error) int {
	if _, ok := apperr.AsValidation(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case isAny(err, notFoundErrs):
		return http.StatusNotFound
	case isAny(err, conflictErrs):
		return http.StatusConflict
	case isAny(err, unprocessableErrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrRemoteCall):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError renders err. Server-side failures are logged and their detail
// is kept out of the body.
func writeError(c echo.Context, log *logrus.Logger, funcName string, err error) error {
	code := statusFor(err)
	if ve, ok := apperr.AsValidation(err); ok {
		return c.JSON(code, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	}
	if code >= http.StatusInternalServerError {
		logging.LogError(log, "http", funcName, c.Request().Method+" "+c.Path(), nil, err)
		if code == http.StatusServiceUnavailable {
			return c.JSON(code, ErrorResponse{Error: "service temporarily unavailable"})
		}
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func missingParam(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"})
}
