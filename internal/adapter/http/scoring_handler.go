package http

import (
	"net/http"

	ucScoring "smartlenderup-backend/internal/usecase/scoring"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ScoringHandler struct {
	uc  *ucScoring.Usecase
	log *logrus.Logger
}

func NewScoringHandler(uc *ucScoring.Usecase, log *logrus.Logger) *ScoringHandler {
	return &ScoringHandler{uc: uc, log: log}
}

type parameterReq struct {
	Factor      string `json:"factor"      validate:"required"`
	Weight      int    `json:"weight"      validate:"gte=0,lte=100"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description" validate:"max=500"`
}

type saveParametersReq struct {
	Parameters []parameterReq `json:"parameters" validate:"required,min=1,dive"`
}

func (h *ScoringHandler) GetParameters(c echo.Context) error {
	ct, err := ucScoring.ParseClientType(c.Param("client_type"))
	if err != nil {
		return writeError(c, h.log, "GetParameters", err)
	}
	out, err := h.uc.GetParameters(c.Request().Context(), ct)
	if err != nil {
		return writeError(c, h.log, "GetParameters", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ScoringHandler) SaveParameters(c echo.Context) error {
	ct, err := ucScoring.ParseClientType(c.Param("client_type"))
	if err != nil {
		return writeError(c, h.log, "SaveParameters", err)
	}
	var req saveParametersReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := make([]ucScoring.ParameterInput, 0, len(req.Parameters))
	for _, p := range req.Parameters {
		in = append(in, ucScoring.ParameterInput(p))
	}
	out, err := h.uc.SaveParameters(c.Request().Context(), ct, in)
	if err != nil {
		return writeError(c, h.log, "SaveParameters", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ScoringHandler) Recalculate(c echo.Context) error {
	out, err := h.uc.RecalculateAll(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, "Recalculate", err)
	}
	return c.JSON(http.StatusOK, out)
}
