package http

import (
	"net/http"

	ucFunding "smartlenderup-backend/internal/usecase/funding"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type FundingHandler struct {
	uc  *ucFunding.Usecase
	log *logrus.Logger
}

func NewFundingHandler(uc *ucFunding.Usecase, log *logrus.Logger) *FundingHandler {
	return &FundingHandler{uc: uc, log: log}
}

type createFundingReq struct {
	Name           string  `json:"name"            validate:"required,max=128"`
	AccountType    string  `json:"account_type"    validate:"required,max=32"`
	OpeningBalance float64 `json:"opening_balance" validate:"gte=0,dec2"`
	Currency       string  `json:"currency"        validate:"omitempty,len=3"`
}

func (h *FundingHandler) Create(c echo.Context) error {
	var req createFundingReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Create(c.Request().Context(), ucFunding.CreateInput{
		Name:           req.Name,
		AccountType:    req.AccountType,
		OpeningBalance: money(req.OpeningBalance),
		Currency:       req.Currency,
	})
	if err != nil {
		return writeError(c, h.log, "CreateFundingAccount", err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *FundingHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, "ListFundingAccounts", err)
	}
	return c.JSON(http.StatusOK, out)
}
