package relational

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

type IntakeRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewIntakeRepository(db *gorm.DB, timeout time.Duration) *IntakeRepository {
	return &IntakeRepository{db: db, timeout: timeoutOrDefault(timeout)}
}

// AddCalories increments each (user, date) total in a single transaction.
// Each row is one INSERT ... ON CONFLICT DO UPDATE so concurrent batches add
// up instead of overwriting each other.
func (r *IntakeRepository) AddCalories(ctx context.Context, records []domain.IntakeRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, rec := range records {
		if err := domain.CheckCalories(rec.Calories); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			m := intakeModel{
				UserID:   rec.UserID,
				Date:     rec.Date.Format(domain.DateLayout),
				Calories: rec.Calories,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"calories": gorm.Expr("calorie_intakes.calories + ?", rec.Calories),
				}),
			}).Create(&m).Error
			if err != nil {
				return fmt.Errorf("gorm: add calories for %s: %w", m.Date, err)
			}
		}
		return nil
	})
}

func (r *IntakeRepository) List(ctx context.Context, userID int64, rng domain.DateRange) ([]domain.IntakeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !rng.From.IsZero() {
		q = q.Where("date >= ?", rng.From.Format(domain.DateLayout))
	}
	if !rng.To.IsZero() {
		q = q.Where("date <= ?", rng.To.Format(domain.DateLayout))
	}

	var rows []intakeModel
	if err := q.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm: list intake: %w", err)
	}

	out := make([]domain.IntakeRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
