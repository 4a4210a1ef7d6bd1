package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// ArtifactRepository keeps one calorie_charts row per user.
type ArtifactRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewArtifactRepository(db *gorm.DB, timeout time.Duration) *ArtifactRepository {
	return &ArtifactRepository{db: db, timeout: timeoutOrDefault(timeout)}
}

func (r *ArtifactRepository) Save(ctx context.Context, a domain.ReportArtifact) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}
	m := chartModel{UserID: a.UserID, PDFData: a.PDF, CSVData: a.CSV, UpdatedAt: a.UpdatedAt}

	columns := []string{"updated_at"}
	if a.PDF != nil {
		columns = append(columns, "pdf_data")
	}
	if a.CSV != nil {
		columns = append(columns, "csv_data")
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("gorm: save report artifact for user %d: %w", a.UserID, err)
	}
	return nil
}

func (r *ArtifactRepository) Load(ctx context.Context, userID int64, format domain.ReportFormat) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var m chartModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("gorm: load report artifact for user %d: %w", userID, err)
	}

	a := domain.ReportArtifact{UserID: m.UserID, PDF: m.PDFData, CSV: m.CSVData, UpdatedAt: m.UpdatedAt}
	data := a.Bytes(format)
	if data == nil {
		return nil, domain.ErrArtifactNotFound
	}
	return data, nil
}
