package http

import (
	"net/http"
	"time"

	ucRepayment "smartlenderup-backend/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type RepaymentHandler struct {
	uc  *ucRepayment.Usecase
	log *logrus.Logger
}

func NewRepaymentHandler(uc *ucRepayment.Usecase, log *logrus.Logger) *RepaymentHandler {
	return &RepaymentHandler{uc: uc, log: log}
}

type recordRepaymentReq struct {
	LoanID               string  `json:"loan_id"                validate:"required,hex32"`
	Amount               float64 `json:"amount"                 validate:"required,gt=0,dec2"`
	PaymentMethod        string  `json:"payment_method"         validate:"required,max=32"`
	DestinationAccountID string  `json:"destination_account_id" validate:"omitempty,hex32"`
	Reference            string  `json:"reference"              validate:"max=64"`
	// RFC3339 with zone; empty means now
	PaidAt string `json:"paid_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *RepaymentHandler) Record(c echo.Context) error {
	var req recordRepaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	var paidAt time.Time
	if req.PaidAt != "" {
		paidAt, _ = time.Parse(time.RFC3339, req.PaidAt)
	}
	out, err := h.uc.Record(c.Request().Context(), ucRepayment.RecordInput{
		LoanID:               req.LoanID,
		Amount:               money(req.Amount),
		PaymentMethod:        req.PaymentMethod,
		DestinationAccountID: req.DestinationAccountID,
		Reference:            req.Reference,
		RecordedBy:           actorOf(c),
		PaidAt:               paidAt,
	})
	if err != nil {
		return writeError(c, h.log, "RecordRepayment", err)
	}
	return c.JSON(http.StatusCreated, out)
}
