package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/calorietrack/calorie-api/internal/core/domain"
	"github.com/calorietrack/calorie-api/internal/core/ports"
)

type IntakeService struct {
	repo ports.IntakeRepository
	log  zerolog.Logger
}

func NewIntakeService(repo ports.IntakeRepository, log zerolog.Logger) *IntakeService {
	return &IntakeService{repo: repo, log: log}
}

// Record validates the whole batch before writing anything. Entries sharing a
// date are summed so the store sees one increment per (user, date).
func (s *IntakeService) Record(ctx context.Context, userID int64, entries []ports.IntakeEntryInput) error {
	if len(entries) == 0 {
		return nil
	}

	records := make([]domain.IntakeRecord, 0, len(entries))
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		date, err := domain.ParseDate(entry.Date)
		if err != nil {
			return err
		}
		if err := domain.CheckCalories(entry.Calories); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}

		key := date.Format(domain.DateLayout)
		if pos, ok := index[key]; ok {
			sum := records[pos].Calories + entry.Calories
			if err := domain.CheckCalories(sum); err != nil {
				return fmt.Errorf("entries for %s: %w", key, err)
			}
			records[pos].Calories = sum
			continue
		}
		index[key] = len(records)
		records = append(records, domain.IntakeRecord{UserID: userID, Date: date, Calories: entry.Calories})
	}

	if err := s.repo.AddCalories(ctx, records); err != nil {
		return fmt.Errorf("record intake: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Int("entries", len(entries)).Int("days", len(records)).Msg("calorie intake recorded")
	return nil
}

func (s *IntakeService) Query(ctx context.Context, userID int64, startDate, endDate string) ([]domain.IntakeRecord, error) {
	rng, err := domain.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if rng.Empty() {
		return []domain.IntakeRecord{}, nil
	}

	records, err := s.repo.List(ctx, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("query intake: %w", err)
	}
	if records == nil {
		records = []domain.IntakeRecord{}
	}
	return records, nil
}
