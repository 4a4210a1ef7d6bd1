package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calorietrack/calorie-api/internal/core/domain"
	"github.com/calorietrack/calorie-api/internal/core/ports"
)

type stubRenderer struct {
	rows []domain.IntakeRecord
}

func (r *stubRenderer) RenderPDF(rows []domain.IntakeRecord) ([]byte, error) {
	r.rows = rows
	return []byte("%PDF-" + strconv.Itoa(len(rows))), nil
}

func (r *stubRenderer) RenderCSV(rows []domain.IntakeRecord) ([]byte, error) {
	r.rows = rows
	return []byte("Date,Calories\n"), nil
}

type stubArtifactRepo struct {
	saved map[int64]domain.ReportArtifact
}

func (r *stubArtifactRepo) Save(_ context.Context, a domain.ReportArtifact) error {
	cur := r.saved[a.UserID]
	cur.UserID = a.UserID
	if a.PDF != nil {
		cur.PDF = a.PDF
	}
	if a.CSV != nil {
		cur.CSV = a.CSV
	}
	r.saved[a.UserID] = cur
	return nil
}

func (r *stubArtifactRepo) Load(_ context.Context, userID int64, format domain.ReportFormat) ([]byte, error) {
	a, ok := r.saved[userID]
	if !ok || a.Bytes(format) == nil {
		return nil, domain.ErrArtifactNotFound
	}
	return a.Bytes(format), nil
}

// prefixCodec is a reversible stand-in for the Fernet codec.
type prefixCodec struct{}

func (prefixCodec) Encrypt(userID int64) (string, error) {
	return "enc-" + strconv.FormatInt(userID, 10), nil
}

func (prefixCodec) Decrypt(token string) (int64, error) {
	if len(token) < 4 || token[:4] != "enc-" {
		return 0, domain.ErrInvalidToken
	}
	id, err := strconv.ParseInt(token[4:], 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

func newTestReportService(t *testing.T) (*ReportService, *stubIntakeRepo, *stubArtifactRepo, *stubRenderer) {
	t.Helper()
	intakes := newStubIntakeRepo()
	artifacts := &stubArtifactRepo{saved: make(map[int64]domain.ReportArtifact)}
	renderer := &stubRenderer{}
	svc := NewReportService(NewIntakeService(intakes, zerolog.Nop()), artifacts, renderer, prefixCodec{}, zerolog.Nop())
	return svc, intakes, artifacts, renderer
}

func TestReportService_GenerateAndDownload(t *testing.T) {
	svc, _, artifacts, renderer := newTestReportService(t)
	ctx := context.Background()

	link, err := svc.Generate(ctx, 5, domain.FormatPDF, "", "")
	require.NoError(t, err)
	assert.Equal(t, "enc-5", link)
	assert.Empty(t, renderer.rows)

	pdf, err := svc.Download(ctx, link, domain.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-0", string(pdf))

	_, err = svc.Download(ctx, link, domain.FormatCSV)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

	_, err = svc.Generate(ctx, 5, domain.FormatCSV, "", "")
	require.NoError(t, err)
	assert.NotNil(t, artifacts.saved[5].PDF)
	assert.NotNil(t, artifacts.saved[5].CSV)
}

func TestReportService_GenerateUsesLedger(t *testing.T) {
	svc, intakes, _, renderer := newTestReportService(t)
	ctx := context.Background()

	require.NoError(t, NewIntakeService(intakes, zerolog.Nop()).Record(ctx, 5, []ports.IntakeEntryInput{
		{Calories: 100, Date: "2024-01-01"},
		{Calories: 200, Date: "2024-02-01"},
	}))

	_, err := svc.Generate(ctx, 5, domain.FormatCSV, "2024-01-15", "")
	require.NoError(t, err)
	require.Len(t, renderer.rows, 1)
	assert.Equal(t, 200, renderer.rows[0].Calories)

	_, err = svc.Generate(ctx, 5, domain.FormatCSV, "bad", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Generate(ctx, 5, domain.ReportFormat("xlsx"), "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportService_DownloadRejectsBadLinks(t *testing.T) {
	svc, _, _, _ := newTestReportService(t)
	ctx := context.Background()

	for _, link := range []string{"", "garbage", "enc-x", "enc-0"} {
		_, err := svc.Download(ctx, link, domain.FormatPDF)
		assert.True(t, errors.Is(err, domain.ErrInvalidDownloadLink), "link %q: %v", link, err)
	}

	_, err := svc.Download(ctx, "enc-9", domain.FormatPDF)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
