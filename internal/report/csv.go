package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

var csvHeader = []string{"Date", "Calories"}

// RenderCSV writes a Date,Calories header and one row per record, oldest first.
func RenderCSV(rows []domain.IntakeRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range sortedAscending(rows) {
		if err := w.Write([]string{r.Date.Format(domain.DateLayout), strconv.Itoa(r.Calories)}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
