package report

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

const (
	reportTitle = "Calorie Intake Report"

	pageMargin     = 72.0 // 1in, in points
	colWidth       = 120.0
	headerHeight   = 24.0
	rowHeight      = 18.0
	sectionSpacing = 18.0
	pointsPerInch  = 72.0
	chartImageName = "calorie-chart"
)

// RenderPDF lays out a title, a Date/Calories table and a line chart on
// Letter pages, oldest row first.
func RenderPDF(rows []domain.IntakeRecord) ([]byte, error) {
	sorted := sortedAscending(rows)

	chartImg, err := renderChart(sorted)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(reportTitle, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 28, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(sectionSpacing)

	writeTable(pdf, sorted)
	pdf.Ln(sectionSpacing)
	writeChart(pdf, chartImg)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *fpdf.Fpdf, rows []domain.IntakeRecord) {
	pageW, pageH := pdf.GetPageSize()
	left := (pageW - 2*colWidth) / 2
	bottom := pageH - pageMargin

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)

	header := func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(left)
		// Text sits high in the cell to leave extra bottom padding.
		pdf.CellFormat(colWidth, headerHeight, "Date", "1", 0, "CT", true, 0, "")
		pdf.CellFormat(colWidth, headerHeight, "Calories", "1", 1, "CT", true, 0, "")
	}
	header()

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetFillColor(211, 211, 211)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range rows {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
		}
		pdf.SetX(left)
		pdf.CellFormat(colWidth, rowHeight, r.Date.Format(domain.DateLayout), "1", 0, "CM", true, 0, "")
		pdf.CellFormat(colWidth, rowHeight, strconv.Itoa(r.Calories), "1", 1, "CM", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func writeChart(pdf *fpdf.Fpdf, img *lineChart) {
	pageW, pageH := pdf.GetPageSize()
	maxW := pageW - 2*pageMargin

	w := img.WidthIn * pointsPerInch
	h := img.HeightIn * pointsPerInch
	if w > maxW {
		h *= maxW / w
		w = maxW
	}

	if pdf.GetY()+h > pageH-pageMargin {
		pdf.AddPage()
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(chartImageName, opts, bytes.NewReader(img.PNG))
	pdf.ImageOptions(chartImageName, (pageW-w)/2, pdf.GetY(), w, h, false, opts, 0, "")
}
