package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calorietrack/calorie-api/internal/api/metrics"
	"github.com/calorietrack/calorie-api/internal/core/domain"
	"github.com/calorietrack/calorie-api/internal/core/ports"
)

type IntakeHandler struct {
	service ports.IntakeService
}

func NewIntakeHandler(service ports.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

// Record adds calories to the caller's daily totals. The body is either one
// entry or an array of entries.
//
// @Summary      Record calorie intake
// @Tags         intake
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []intakeEntryRequest  true  "One entry or an array of entries"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /user/intake [post]
func (h *IntakeHandler) Record(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	reqs, err := decodeIntakeEntries(c.Request().Body)
	if err != nil {
		return err
	}

	entries := make([]ports.IntakeEntryInput, 0, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return err
		}
		entries = append(entries, ports.IntakeEntryInput{Calories: *reqs[i].Calories, Date: reqs[i].Date})
	}

	if err := h.service.Record(c.Request().Context(), userID, entries); err != nil {
		return err
	}
	metrics.IntakeEntriesRecordedTotal.Add(float64(len(entries)))

	return c.JSON(http.StatusCreated, messageResponse{Message: "Calorie intake recorded"})
}

// Query lists the caller's daily totals, newest first.
//
// @Summary      List calorie intake
// @Tags         intake
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "Inclusive lower bound, YYYY-MM-DD"
// @Param        end_date    query     string  false  "Inclusive upper bound, YYYY-MM-DD"
// @Success      200         {array}   intakeRecordResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /user/intake [get]
func (h *IntakeHandler) Query(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	records, err := h.service.Query(c.Request().Context(), userID, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return err
	}

	resp := make([]intakeRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, intakeRecordResponse{Date: r.Date.Format(domain.DateLayout), Calories: r.Calories})
	}
	return c.JSON(http.StatusOK, resp)
}

// decodeIntakeEntries accepts a single JSON object or an array of objects.
func decodeIntakeEntries(body io.Reader) ([]intakeEntryRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable body", domain.ErrValidation)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty body", domain.ErrValidation)
	}

	if raw[0] == '[' {
		var entries []intakeEntryRequest
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("%w: invalid payload", domain.ErrValidation)
		}
		return entries, nil
	}

	var entry intakeEntryRequest
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	return []intakeEntryRequest{entry}, nil
}
