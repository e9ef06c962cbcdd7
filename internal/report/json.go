package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/plantsense/plantsense-cli/internal/analysis"
	"github.com/plantsense/plantsense-cli/internal/models"
)

// Document is the machine-readable report consumed by chart front-ends.
// Degenerate statistics appear as null, never NaN.
type Document struct {
	RunID   string                    `json:"run_id"`
	Period  PeriodDocument            `json:"period"`
	Summary models.StatisticsSummary  `json:"summary"`
	Style   *Style                    `json:"style,omitempty"`
	Records []models.NormalizedRecord `json:"records,omitempty"`
}

// PeriodDocument is the period summary in report form.
type PeriodDocument struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	ReadingCount  int       `json:"reading_count"`
}

// NewDocument builds a report document from an analysis result.
func NewDocument(result *analysis.Result, style *Style, includeRecords bool) Document {
	doc := Document{
		RunID: result.RunID,
		Period: PeriodDocument{
			Start:         result.Period.Start,
			End:           result.Period.End,
			DurationHours: result.Period.Duration.Hours(),
			ReadingCount:  result.Period.ReadingCount,
		},
		Summary: result.Summary,
		Style:   style,
	}
	if includeRecords {
		doc.Records = result.Records
	}
	return doc
}

// RenderJSON renders an analysis result as an indented JSON report.
func RenderJSON(result *analysis.Result, style *Style, includeRecords bool) ([]byte, error) {
	doc := NewDocument(result, style, includeRecords)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}
