package http

import (
	"net/http"
	"strconv"
	"time"

	"smartlenderup-backend/internal/domain/apperr"
	domain "smartlenderup-backend/internal/domain/approval"
	ucApproval "smartlenderup-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ApprovalHandler struct {
	uc  *ucApproval.Usecase
	log *logrus.Logger
	now func() time.Time
}

func NewApprovalHandler(uc *ucApproval.Usecase, log *logrus.Logger) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, log: log, now: time.Now}
}

// Read only when the record leaves phase 3.
type disbursementReq struct {
	// Accept canonical date `YYYY-MM-DD`
	ReleaseDate        string `json:"release_date"        validate:"omitempty,datetime=2006-01-02"`
	DisbursementMethod string `json:"disbursement_method" validate:"max=32"`
	SourceOfFunds      string `json:"source_of_funds"     validate:"omitempty,hex32"`
	AccountNumber      string `json:"account_number"      validate:"max=64"`
}

func (d disbursementReq) fields() ucApproval.DisbursementFields {
	return ucApproval.DisbursementFields{
		ReleaseDate:        parseDate(d.ReleaseDate),
		DisbursementMethod: d.DisbursementMethod,
		SourceOfFunds:      d.SourceOfFunds,
		AccountNumber:      d.AccountNumber,
	}
}

type advanceReq struct {
	Notes string `json:"notes" validate:"max=1000"`
	disbursementReq
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type bulkApproveReq struct {
	ApprovalIDs []string `json:"approval_ids" validate:"required,min=1,max=100,dive,hex32"`
	Notes       string   `json:"notes"        validate:"max=1000"`
	disbursementReq
}

type bulkRejectReq struct {
	ApprovalIDs []string `json:"approval_ids" validate:"required,min=1,max=100,dive,hex32"`
	Reason      string   `json:"reason"       validate:"required,max=1000"`
}

func (h *ApprovalHandler) List(c echo.Context) error {
	f := domain.Filter{
		Status: domain.Status(c.QueryParam("status")),
		Type:   domain.Type(c.QueryParam("type")),
	}
	if raw := c.QueryParam("phase"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, h.log, "ListApprovals", apperr.Validation("phase", "must be between 1 and 5"))
		}
		f.Phase = domain.Phase(n)
	}
	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, h.log, "ListApprovals", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Summary(c echo.Context) error {
	out, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, "ApprovalSummary", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Get(c echo.Context) error {
	approvalID := c.Param("approval_id")
	if approvalID == "" {
		return missingParam(c, "approval_id")
	}
	out, err := h.uc.Get(c.Request().Context(), approvalID)
	if err != nil {
		return writeError(c, h.log, "GetApproval", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Advance(c echo.Context) error {
	approvalID := c.Param("approval_id")
	if approvalID == "" {
		return missingParam(c, "approval_id")
	}
	var req advanceReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Advance(c.Request().Context(), ucApproval.AdvanceInput{
		ApprovalID:         approvalID,
		Actor:              actorOf(c),
		Notes:              req.Notes,
		DisbursementFields: req.fields(),
	})
	if err != nil {
		return writeError(c, h.log, "AdvanceApproval", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) Reject(c echo.Context) error {
	approvalID := c.Param("approval_id")
	if approvalID == "" {
		return missingParam(c, "approval_id")
	}
	var req rejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Reject(c.Request().Context(), ucApproval.RejectInput{
		ApprovalID: approvalID,
		Actor:      actorOf(c),
		Reason:     req.Reason,
	})
	if err != nil {
		return writeError(c, h.log, "RejectApproval", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) MarkDisbursed(c echo.Context) error {
	approvalID := c.Param("approval_id")
	if approvalID == "" {
		return missingParam(c, "approval_id")
	}
	out, err := h.uc.MarkDisbursed(c.Request().Context(), approvalID)
	if err != nil {
		return writeError(c, h.log, "MarkDisbursed", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) BulkApprove(c echo.Context) error {
	var req bulkApproveReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.BulkApprove(c.Request().Context(), ucApproval.BulkApproveInput{
		ApprovalIDs:        req.ApprovalIDs,
		Actor:              actorOf(c),
		Notes:              req.Notes,
		DisbursementFields: req.fields(),
	})
	if err != nil {
		return writeError(c, h.log, "BulkApprove", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) BulkReject(c echo.Context) error {
	var req bulkRejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.BulkReject(c.Request().Context(), ucApproval.BulkRejectInput{
		ApprovalIDs: req.ApprovalIDs,
		Actor:       actorOf(c),
		Reason:      req.Reason,
	})
	if err != nil {
		return writeError(c, h.log, "BulkReject", err)
	}
	return c.JSON(http.StatusOK, out)
}

// DueDisbursements takes an optional ?today=YYYY-MM-DD.
func (h *ApprovalHandler) DueDisbursements(c echo.Context) error {
	today := h.now().UTC()
	if raw := c.QueryParam("today"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return writeError(c, h.log, "DueDisbursements", apperr.Validation("today", "must match format "+dateLayout))
		}
		today = t
	}
	out, err := h.uc.DueDisbursements(c.Request().Context(), today)
	if err != nil {
		return writeError(c, h.log, "DueDisbursements", err)
	}
	return c.JSON(http.StatusOK, out)
}
