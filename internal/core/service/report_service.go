package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/calorietrack/calorie-api/internal/core/domain"
	"github.com/calorietrack/calorie-api/internal/core/ports"
)

// Renderer turns intake rows into report bytes.
type Renderer interface {
	RenderPDF(rows []domain.IntakeRecord) ([]byte, error)
	RenderCSV(rows []domain.IntakeRecord) ([]byte, error)
}

type ReportService struct {
	intakes   ports.IntakeService
	artifacts ports.ArtifactRepository
	renderer  Renderer
	codec     ports.IDCodec
	log       zerolog.Logger
}

func NewReportService(intakes ports.IntakeService, artifacts ports.ArtifactRepository, renderer Renderer, codec ports.IDCodec, log zerolog.Logger) *ReportService {
	return &ReportService{intakes: intakes, artifacts: artifacts, renderer: renderer, codec: codec, log: log}
}

// Generate renders the user's ledger in format, stores the bytes and returns
// the encrypted user id that addresses them.
func (s *ReportService) Generate(ctx context.Context, userID int64, format domain.ReportFormat, startDate, endDate string) (string, error) {
	rows, err := s.intakes.Query(ctx, userID, startDate, endDate)
	if err != nil {
		return "", err
	}

	artifact := domain.ReportArtifact{UserID: userID, UpdatedAt: time.Now().UTC()}
	switch format {
	case domain.FormatPDF:
		artifact.PDF, err = s.renderer.RenderPDF(rows)
	case domain.FormatCSV:
		artifact.CSV, err = s.renderer.RenderCSV(rows)
	default:
		return "", fmt.Errorf("%w: unsupported report format %q", domain.ErrValidation, format)
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", format, err)
	}

	if err := s.artifacts.Save(ctx, artifact); err != nil {
		return "", fmt.Errorf("save %s report: %w", format, err)
	}

	link, err := s.codec.Encrypt(userID)
	if err != nil {
		return "", fmt.Errorf("encrypt user id: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Str("format", string(format)).Int("rows", len(rows)).Msg("report generated")
	return link, nil
}

func (s *ReportService) Download(ctx context.Context, encryptedID string, format domain.ReportFormat) ([]byte, error) {
	if encryptedID == "" {
		return nil, fmt.Errorf("%w: user_id not provided", domain.ErrInvalidDownloadLink)
	}

	userID, err := s.codec.Decrypt(encryptedID)
	if err != nil {
		s.log.Debug().Err(err).Msg("download link rejected")
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDownloadLink, err)
	}
	if userID <= 0 {
		return nil, domain.ErrInvalidDownloadLink
	}

	return s.artifacts.Load(ctx, userID, format)
}
