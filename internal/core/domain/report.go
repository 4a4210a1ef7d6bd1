package domain

import "time"

// ReportFormat identifies one of the stored report renderings.
type ReportFormat string

const (
	FormatPDF ReportFormat = "pdf"
	FormatCSV ReportFormat = "csv"
)

// ReportArtifact is the single stored slot of generated reports for a user.
// A nil PDF or CSV means "not generated" on load and "leave untouched" on save.
type ReportArtifact struct {
	UserID    int64
	PDF       []byte
	CSV       []byte
	UpdatedAt time.Time
}

// Bytes returns the stored content for the format, or nil.
func (a *ReportArtifact) Bytes(format ReportFormat) []byte {
	switch format {
	case FormatPDF:
		return a.PDF
	case FormatCSV:
		return a.CSV
	}
	return nil
}
