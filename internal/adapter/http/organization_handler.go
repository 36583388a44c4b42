package http

import (
	"net/http"

	domain "smartlenderup-backend/internal/domain/organization"
	ucOrg "smartlenderup-backend/internal/usecase/organization"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type OrganizationHandler struct {
	uc  *ucOrg.Usecase
	log *logrus.Logger
}

func NewOrganizationHandler(uc *ucOrg.Usecase, log *logrus.Logger) *OrganizationHandler {
	return &OrganizationHandler{uc: uc, log: log}
}

type registerOrgReq struct {
	OrganizationName string `json:"organization_name" validate:"required,max=128"`
	Username         string `json:"username"          validate:"required,min=3,max=64"`
	Email            string `json:"email"             validate:"required,email"`
	Country          string `json:"country"           validate:"required,country"`
}

type orgActionReq struct {
	Reason string `json:"reason" validate:"max=1000"`
}

func (h *OrganizationHandler) Register(c echo.Context) error {
	var req registerOrgReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.Register(c.Request().Context(), ucOrg.RegisterInput(req))
	if err != nil {
		return writeError(c, h.log, "RegisterOrganization", err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrganizationHandler) Get(c echo.Context) error {
	orgID := c.Param("org_id")
	if orgID == "" {
		return missingParam(c, "org_id")
	}
	out, err := h.uc.Get(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, h.log, "GetOrganization", err)
	}
	return c.JSON(http.StatusOK, out)
}

// transition builds a handler for one lifecycle action.
func (h *OrganizationHandler) transition(act domain.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		orgID := c.Param("org_id")
		if orgID == "" {
			return missingParam(c, "org_id")
		}
		var req orgActionReq
		if ok, err := bindAndValidate(c, &req); !ok {
			return err
		}
		out, err := h.uc.Transition(c.Request().Context(), ucOrg.TransitionInput{
			OrgID:  orgID,
			Action: act,
			Reason: req.Reason,
			Actor:  actorOf(c),
		})
		if err != nil {
			return writeError(c, h.log, "OrganizationTransition", err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

func (h *OrganizationHandler) Approve() echo.HandlerFunc { return h.transition(domain.ActionApprove) }
func (h *OrganizationHandler) Reject() echo.HandlerFunc { return h.transition(domain.ActionReject) }
func (h *OrganizationHandler) Suspend() echo.HandlerFunc { return h.transition(domain.ActionSuspend) }
func (h *OrganizationHandler) Reactivate() echo.HandlerFunc { return h.transition(domain.ActionReactivate) }
