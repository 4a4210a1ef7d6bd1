package ports

import (
	"context"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// IntakeRepository persists per-day calorie totals.
type IntakeRepository interface {
	// AddCalories atomically adds each record's calories to the stored total
	// for (UserID, Date), inserting the row when absent. All records are
	// applied in a single unit of work.
	AddCalories(ctx context.Context, records []domain.IntakeRecord) error

	// List returns the user's records inside rng ordered by date descending.
	List(ctx context.Context, userID int64, rng domain.DateRange) ([]domain.IntakeRecord, error)
}
