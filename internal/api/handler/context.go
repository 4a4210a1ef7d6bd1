package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calorietrack/calorie-api/internal/api/middleware"
)

// ctxUserID returns the user id stored by the Auth middleware.
func ctxUserID(c echo.Context) (int64, error) {
	id, _ := c.Get(middleware.ContextKeyUserID).(int64)
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

func ctxToken(c echo.Context) (string, error) {
	tok, _ := c.Get(middleware.ContextKeyToken).(string)
	if tok == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return tok, nil
}
