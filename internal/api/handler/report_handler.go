package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/calorietrack/calorie-api/internal/api/metrics"
	"github.com/calorietrack/calorie-api/internal/core/domain"
	"github.com/calorietrack/calorie-api/internal/core/ports"
)

// reportFile describes how one format is served.
type reportFile struct {
	format       domain.ReportFormat
	downloadPath string
	filename     string
	contentType  string
	label        string
}

var (
	pdfFile = reportFile{
		format:       domain.FormatPDF,
		downloadPath: "/user/download_pdf",
		filename:     "calorie_chart.pdf",
		contentType:  "application/pdf",
		label:        "PDF",
	}
	csvFile = reportFile{
		format:       domain.FormatCSV,
		downloadPath: "/user/download_csv",
		filename:     "calorie_data.csv",
		contentType:  "text/csv",
		label:        "CSV",
	}
)

type ReportHandler struct {
	service ports.ReportService
	baseURL string
}

// NewReportHandler builds download links against baseURL, or against the
// request's scheme and host when baseURL is empty.
func NewReportHandler(service ports.ReportService, baseURL string) *ReportHandler {
	return &ReportHandler{service: service, baseURL: strings.TrimRight(baseURL, "/")}
}

// Chart renders the caller's intake as a PDF and returns its download link.
//
// @Summary      Generate PDF report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "Inclusive lower bound, YYYY-MM-DD"
// @Param        end_date    query     string  false  "Inclusive upper bound, YYYY-MM-DD"
// @Success      200         {object}  pdfLinkResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /user/chart [get]
func (h *ReportHandler) Chart(c echo.Context) error {
	link, err := h.generate(c, pdfFile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pdfLinkResponse{PDFURL: link, Message: "PDF file generated successfully."})
}

// CSV exports the caller's intake as CSV and returns its download link.
//
// @Summary      Generate CSV export
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "Inclusive lower bound, YYYY-MM-DD"
// @Param        end_date    query     string  false  "Inclusive upper bound, YYYY-MM-DD"
// @Success      200         {object}  csvLinkResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /user/csv [get]
func (h *ReportHandler) CSV(c echo.Context) error {
	link, err := h.generate(c, csvFile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, csvLinkResponse{CSVURL: link, Message: "CSV file generated successfully."})
}

// DownloadPDF serves the stored PDF addressed by the encrypted user id.
//
// @Summary      Download PDF report
// @Tags         reports
// @Produce      application/pdf
// @Param        user_id  query     string  true  "Encrypted user id from the report link"
// @Success      200      {file}    file
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /user/download_pdf [get]
func (h *ReportHandler) DownloadPDF(c echo.Context) error {
	return h.download(c, pdfFile)
}

// DownloadCSV serves the stored CSV addressed by the encrypted user id.
//
// @Summary      Download CSV export
// @Tags         reports
// @Produce      text/csv
// @Param        user_id  query     string  true  "Encrypted user id from the report link"
// @Success      200      {file}    file
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /user/download_csv [get]
func (h *ReportHandler) DownloadCSV(c echo.Context) error {
	return h.download(c, csvFile)
}

func (h *ReportHandler) generate(c echo.Context, f reportFile) (string, error) {
	userID, err := ctxUserID(c)
	if err != nil {
		return "", err
	}

	start := time.Now()
	token, err := h.service.Generate(c.Request().Context(), userID, f.format, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return "", err
	}
	metrics.ReportGenerationDuration.WithLabelValues(string(f.format)).Observe(time.Since(start).Seconds())
	metrics.ReportsGeneratedTotal.WithLabelValues(string(f.format)).Inc()

	return h.base(c) + f.downloadPath + "?user_id=" + url.QueryEscape(token), nil
}

func (h *ReportHandler) download(c echo.Context, f reportFile) error {
	data, err := h.service.Download(c.Request().Context(), c.QueryParam("user_id"), f.format)
	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, domain.ErrInvalidDownloadLink):
			result = "invalid_link"
		case errors.Is(err, domain.ErrArtifactNotFound):
			result = "not_found"
			err = echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("No %s data found for the user", f.label))
		}
		metrics.ReportDownloadsTotal.WithLabelValues(string(f.format), result).Inc()
		return err
	}
	metrics.ReportDownloadsTotal.WithLabelValues(string(f.format), "ok").Inc()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.filename))
	return c.Blob(http.StatusOK, f.contentType, data)
}

func (h *ReportHandler) base(c echo.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return c.Scheme() + "://" + c.Request().Host
}
