package http

import (
	"net/http"

	domainScoring "smartlenderup-backend/internal/domain/scoring"
	ucClient "smartlenderup-backend/internal/usecase/client"
	ucScoring "smartlenderup-backend/internal/usecase/scoring"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ClientHandler struct {
	uc      *ucClient.Usecase
	scoring *ucScoring.Usecase
	log     *logrus.Logger
}

func NewClientHandler(uc *ucClient.Usecase, scoring *ucScoring.Usecase, log *logrus.Logger) *ClientHandler {
	return &ClientHandler{uc: uc, scoring: scoring, log: log}
}

type registerClientReq struct {
	Name       string `json:"name"        validate:"required,max=128"`
	Phone      string `json:"phone"       validate:"required,max=32"`
	Email      string `json:"email"       validate:"omitempty,email"`
	ClientType string `json:"client_type" validate:"required,oneof=individual group"`
}

func (h *ClientHandler) Register(c echo.Context) error {
	var req registerClientReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Register(c.Request().Context(), ucClient.RegisterInput(req))
	if err != nil {
		return writeError(c, h.log, "Register", err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ClientHandler) Get(c echo.Context) error {
	clientID := c.Param("client_id")
	if clientID == "" {
		return missingParam(c, "client_id")
	}
	out, err := h.uc.Get(c.Request().Context(), clientID)
	if err != nil {
		return writeError(c, h.log, "GetClient", err)
	}
	return c.JSON(http.StatusOK, out)
}

type scoreClientReq struct {
	// factor name -> normalized score; omitted factors keep their stored value
	Factors map[string]int `json:"factors" validate:"omitempty,dive,gte=0,lte=100"`
}

func (h *ClientHandler) Score(c echo.Context) error {
	clientID := c.Param("client_id")
	if clientID == "" {
		return missingParam(c, "client_id")
	}
	var req scoreClientReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	factors := make(domainScoring.FactorScores, len(req.Factors))
	for k, v := range req.Factors {
		factors[domainScoring.Factor(k)] = v
	}
	out, err := h.scoring.ScoreClient(c.Request().Context(), clientID, factors)
	if err != nil {
		return writeError(c, h.log, "ScoreClient", err)
	}
	return c.JSON(http.StatusOK, out)
}
