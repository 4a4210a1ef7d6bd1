package ports

import (
	"context"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// ArtifactRepository stores the last generated report bytes per user.
type ArtifactRepository interface {
	// Save upserts the user's artifact row. Nil formats keep their stored bytes.
	Save(ctx context.Context, artifact domain.ReportArtifact) error
	// Load returns domain.ErrArtifactNotFound when the row or format is missing.
	Load(ctx context.Context, userID int64, format domain.ReportFormat) ([]byte, error)
}
