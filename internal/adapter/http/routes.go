package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health        *Handler
	Clients       *ClientHandler
	Loans         *LoanHandler
	Approvals     *ApprovalHandler
	Scoring       *ScoringHandler
	Portfolio     *PortfolioHandler
	Organizations *OrganizationHandler
	Funding       *FundingHandler
	Repayments    *RepaymentHandler
}

// RegisterRoutes mounts every route. mw wraps the mutating ones.
func RegisterRoutes(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	e.POST("/clients", h.Clients.Register, mw...)
	e.GET("/clients/:client_id", h.Clients.Get)
	e.POST("/clients/:client_id/score", h.Clients.Score, mw...)

	e.POST("/loans", h.Loans.Apply, mw...)
	e.GET("/loans/:loan_id", h.Loans.Get)

	e.GET("/approvals", h.Approvals.List)
	e.GET("/approvals/summary", h.Approvals.Summary)
	e.POST("/approvals/bulk/approve", h.Approvals.BulkApprove, mw...)
	e.POST("/approvals/bulk/reject", h.Approvals.BulkReject, mw...)
	e.GET("/approvals/:approval_id", h.Approvals.Get)
	e.POST("/approvals/:approval_id/advance", h.Approvals.Advance, mw...)
	e.POST("/approvals/:approval_id/reject", h.Approvals.Reject, mw...)
	e.POST("/approvals/:approval_id/disbursed", h.Approvals.MarkDisbursed, mw...)
	e.GET("/disbursements/due", h.Approvals.DueDisbursements)

	e.GET("/scoring/parameters/:client_type", h.Scoring.GetParameters)
	e.PUT("/scoring/parameters/:client_type", h.Scoring.SaveParameters, mw...)
	e.POST("/scoring/recalculate", h.Scoring.Recalculate, mw...)

	e.GET("/portfolio/arrears", h.Portfolio.Arrears)
	e.GET("/portfolio/arrears/export", h.Portfolio.ExportArrears)

	e.POST("/organizations", h.Organizations.Register, mw...)
	e.GET("/organizations/:org_id", h.Organizations.Get)
	e.POST("/organizations/:org_id/approve", h.Organizations.Approve(), mw...)
	e.POST("/organizations/:org_id/reject", h.Organizations.Reject(), mw...)
	e.POST("/organizations/:org_id/suspend", h.Organizations.Suspend(), mw...)
	e.POST("/organizations/:org_id/reactivate", h.Organizations.Reactivate(), mw...)

	e.POST("/funding-accounts", h.Funding.Create, mw...)
	e.GET("/funding-accounts", h.Funding.List)

	e.POST("/repayments", h.Repayments.Record, mw...)
}
