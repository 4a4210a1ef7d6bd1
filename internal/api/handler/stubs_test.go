package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/calorietrack/calorie-api/internal/api/middleware"
	"github.com/calorietrack/calorie-api/internal/core/domain"
	"github.com/calorietrack/calorie-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, identifier, password string) (*ports.LoginResult, error)
	profileFn  func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, identifier, password)
}

func (s *stubAuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

type stubIntakeService struct {
	recordFn func(ctx context.Context, userID int64, entries []ports.IntakeEntryInput) error
	queryFn  func(ctx context.Context, userID int64, startDate, endDate string) ([]domain.IntakeRecord, error)
}

func (s *stubIntakeService) Record(ctx context.Context, userID int64, entries []ports.IntakeEntryInput) error {
	return s.recordFn(ctx, userID, entries)
}

func (s *stubIntakeService) Query(ctx context.Context, userID int64, startDate, endDate string) ([]domain.IntakeRecord, error) {
	return s.queryFn(ctx, userID, startDate, endDate)
}

type stubReportService struct {
	generateFn func(ctx context.Context, userID int64, format domain.ReportFormat, startDate, endDate string) (string, error)
	downloadFn func(ctx context.Context, encryptedID string, format domain.ReportFormat) ([]byte, error)
}

func (s *stubReportService) Generate(ctx context.Context, userID int64, format domain.ReportFormat, startDate, endDate string) (string, error) {
	return s.generateFn(ctx, userID, format, startDate, endDate)
}

func (s *stubReportService) Download(ctx context.Context, encryptedID string, format domain.ReportFormat) ([]byte, error) {
	return s.downloadFn(ctx, encryptedID, format)
}

type stubTokens struct {
	remaining time.Duration
	err       error
}

func (s *stubTokens) Issue(int64) (string, time.Time, error) { return "", time.Time{}, nil }
func (s *stubTokens) Verify(string) (int64, error) { return 0, nil }
func (s *stubTokens) TTL() time.Duration { return 30 * time.Minute }
func (s *stubTokens) RemainingLifetime(string) (time.Duration, error) {
	return s.remaining, s.err
}

// newContext returns an echo context with the validator installed.
func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticate mimics the Auth middleware.
func authenticate(c echo.Context, userID int64) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyToken, "bearer-token")
}
