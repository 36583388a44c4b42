package http

import (
	"bytes"
	"net/http"

	"smartlenderup-backend/internal/usecase/portfolio"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PortfolioHandler struct {
	uc  *portfolio.Usecase
	log *logrus.Logger
}

func NewPortfolioHandler(uc *portfolio.Usecase, log *logrus.Logger) *PortfolioHandler {
	return &PortfolioHandler{uc: uc, log: log}
}

func (h *PortfolioHandler) Arrears(c echo.Context) error {
	out, err := h.uc.Arrears(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, "Arrears", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) ExportArrears(c echo.Context) error {
	var buf bytes.Buffer
	rep, err := h.uc.ExportArrears(c.Request().Context(), &buf)
	if err != nil {
		return writeError(c, h.log, "ExportArrears", err)
	}
	name := "arrears-" + rep.AsOf.Format(dateLayout) + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+name)
	if rep.Stale {
		c.Response().Header().Set("X-Data-Stale", "true")
	}
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}
