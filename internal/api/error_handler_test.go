package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("%w: invalid date format", domain.ErrValidation), http.StatusBadRequest, "invalid date format"},
		{fmt.Errorf("%w: bad token", domain.ErrInvalidDownloadLink), http.StatusBadRequest, "Invalid encrypted user_id"},
		{domain.ErrUserExists, http.StatusConflict, "Username or email already taken"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrArtifactNotFound, http.StatusNotFound, "No report data found for the user"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username/email or password"},
		{fmt.Errorf("%w: expired", domain.ErrInvalidToken), http.StatusUnauthorized, "Invalid token"},
		{echo.NewHTTPError(http.StatusTooManyRequests, "too many requests"), http.StatusTooManyRequests, "too many requests"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		handler(tc.err, c)

		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.msg, body["error"])
	}
}
