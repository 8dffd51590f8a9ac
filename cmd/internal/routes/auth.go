package routes

import (
	"daybook/cmd/internal/utils"
	"daybook/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

// RequireToken guards the API with a shared-secret bearer JWT. Routes
// stay open when no secret is configured.
func RequireToken(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := utils.VerifyToken(c.Request().Header.Get(echo.HeaderAuthorization), key); err != nil {
				return c.JSON(401, apierror.InvalidAuthTokenError)
			}
			return next(c)
		}
	}
}
