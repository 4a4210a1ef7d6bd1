// Package report renders intake rows as PDF and CSV documents.
package report

import (
	"sort"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// Renderer exposes RenderPDF and RenderCSV behind the service.Renderer interface.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (*Renderer) RenderPDF(rows []domain.IntakeRecord) ([]byte, error) { return RenderPDF(rows) }

func (*Renderer) RenderCSV(rows []domain.IntakeRecord) ([]byte, error) { return RenderCSV(rows) }

// sortedAscending returns a date-ascending copy of rows.
func sortedAscending(rows []domain.IntakeRecord) []domain.IntakeRecord {
	out := make([]domain.IntakeRecord, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
