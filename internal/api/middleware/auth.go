package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/calorietrack/calorie-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextKeyUserID = "user_id"
	ContextKeyToken  = "token"
)

// Auth verifies the bearer token and stores the user id (int64) and the raw
// token in the echo context.
func Auth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				return err
			}

			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyToken, parts[1])

			return next(c)
		}
	}
}
