package relational

import (
	"time"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:80;not null;uniqueIndex"`
	Email        string `gorm:"size:120;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// intakeModel keeps Date as YYYY-MM-DD text so ordering and range filters
// compare the same way on every dialect.
type intakeModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	UserID   int64  `gorm:"not null;uniqueIndex:idx_intake_user_date,priority:1"`
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_intake_user_date,priority:2"`
	Calories int    `gorm:"not null;default:0"`
}

func (intakeModel) TableName() string { return "calorie_intakes" }

func (m *intakeModel) toDomain() (domain.IntakeRecord, error) {
	d, err := domain.ParseDate(m.Date)
	if err != nil {
		return domain.IntakeRecord{}, err
	}
	return domain.IntakeRecord{UserID: m.UserID, Date: d, Calories: m.Calories}, nil
}

type chartModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;uniqueIndex"`
	PDFData   []byte    `gorm:"column:pdf_data"`
	CSVData   []byte    `gorm:"column:csv_data"`
	UpdatedAt time.Time
}

func (chartModel) TableName() string { return "calorie_charts" }
