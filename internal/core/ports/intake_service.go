package ports

import (
	"context"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// IntakeEntryInput is one submitted {calories, date} pair as received.
type IntakeEntryInput struct {
	Calories int
	Date     string
}

// IntakeService is the calorie ledger.
type IntakeService interface {
	Record(ctx context.Context, userID int64, entries []IntakeEntryInput) error
	Query(ctx context.Context, userID int64, startDate, endDate string) ([]domain.IntakeRecord, error)
}
