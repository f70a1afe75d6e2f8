package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fkedem/portfolio-backend/internal/core/ports"
)

// ctxActor extracts the authenticated admin identity injected by the Auth
// middleware. A non-empty email proves the middleware ran; moderation
// endpoints record it as the audit actor.
func ctxActor(c echo.Context) (string, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}

// requestMeta captures requester metadata for the intake pipeline's log and
// audit entries.
func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
