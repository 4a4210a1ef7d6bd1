package ports

import (
	"context"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// ReportService renders, stores and serves calorie reports.
type ReportService interface {
	// Generate renders the user's intake inside the optional date bounds,
	// stores it and returns the encrypted user id for the download link.
	Generate(ctx context.Context, userID int64, format domain.ReportFormat, startDate, endDate string) (string, error)
	// Download decodes the encrypted user id and returns the stored bytes.
	Download(ctx context.Context, encryptedID string, format domain.ReportFormat) ([]byte, error)
}
