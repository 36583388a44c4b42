package http

import (
	"net/http"

	"smartlenderup-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log *logrus.Logger
}

func NewLoanHandler(uc *loan.Usecase, log *logrus.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

type applyLoanReq struct {
	ClientID string  `json:"client_id" validate:"required,hex32"`
	Amount   float64 `json:"amount"    validate:"required,gt=0,dec2"`
	Priority string  `json:"priority"  validate:"omitempty,oneof=low medium high urgent"`
	Notes    string  `json:"notes"     validate:"max=1000"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		ClientID:    req.ClientID,
		Amount:      money(req.Amount),
		RequestedBy: actorOf(c),
		Priority:    req.Priority,
		Notes:       req.Notes,
	})
	if err != nil {
		return writeError(c, h.log, "ApplyLoan", err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return missingParam(c, "loan_id")
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, h.log, "GetLoan", err)
	}
	return c.JSON(http.StatusOK, dto)
}
