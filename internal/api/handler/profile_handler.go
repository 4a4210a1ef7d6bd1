package handler

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/calorietrack/calorie-api/internal/core/ports"
)

type ProfileHandler struct {
	authService ports.AuthService
	tokens      ports.TokenIssuer
}

func NewProfileHandler(authService ports.AuthService, tokens ports.TokenIssuer) *ProfileHandler {
	return &ProfileHandler{authService: authService, tokens: tokens}
}

// Get returns the caller's account and the remaining token lifetime.
//
// @Summary      Current user profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	left, err := h.tokens.RemainingLifetime(token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		UserID:         user.ID,
		Username:       user.Username,
		Email:          user.Email,
		TokenExpiresIn: FormatLifetime(left),
	})
}

// FormatLifetime renders d as "M mins S secs" with floored minutes, so the
// seconds part is always in [0, 60).
func FormatLifetime(d time.Duration) string {
	total := d.Seconds()
	minutes := math.Floor(total / 60)
	seconds := total - minutes*60
	return fmt.Sprintf("%d mins %d secs", int64(minutes), int64(seconds))
}
