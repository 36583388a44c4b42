package http

import (
	"strings"
	"time"

	"smartlenderup-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// actorOf is the acting user set by the idempotency middleware, falling back
// to the raw header on routes that do not run it.
func actorOf(c echo.Context) string {
	if a := middleware.Actor(c); a != "" {
		return a
	}
	return strings.TrimSpace(c.Request().Header.Get(middleware.HeaderActorID))
}

// money converts a validated dec2 float into an exact decimal.
func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f).Round(2) }

// parseDate reads an optional YYYY-MM-DD value already checked by the
// validator.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(dateLayout, s)
	return t
}
