// Package analysis runs the full batch pipeline: normalize, reconcile,
// smooth, summarize.
package analysis

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/plantsense/plantsense-cli/internal/dataset"
	"github.com/plantsense/plantsense-cli/internal/models"
	"github.com/plantsense/plantsense-cli/internal/stats"
	"github.com/plantsense/plantsense-cli/internal/timeline"
)

// Config holds engine configuration.
type Config struct {
	Window     int                 // rolling-average window, readings
	Classifier timeline.Classifier // nil selects the magnitude threshold
	TimeFormat string              // calendar label layout, "" for default
}

// Result is everything one analysis run derives from a batch.
type Result struct {
	RunID   string                    `json:"run_id"`
	Records []models.NormalizedRecord `json:"records"`
	Period  timeline.Period           `json:"period"`
	Summary models.StatisticsSummary  `json:"summary"`
}

// Engine orchestrates one synchronous pass over a fully materialized batch.
// It performs no I/O and keeps no state between runs; identical input yields
// identical numeric output.
type Engine struct {
	window     int
	reconciler *timeline.Reconciler
}

// NewEngine creates an engine from config.
func NewEngine(config Config) *Engine {
	window := config.Window
	if window <= 0 {
		window = stats.DefaultWindow
	}
	reconciler := timeline.NewReconciler(config.Classifier)
	reconciler.SetTimeFormat(config.TimeFormat)

	return &Engine{
		window:     window,
		reconciler: reconciler,
	}
}

// Run analyzes a log mapping. Any malformed or missing required field aborts
// the run with no partial output.
func (e *Engine) Run(logs map[string]models.RawEntry) (*Result, error) {
	records, err := dataset.Normalize(logs)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize records: %w", err)
	}
	return e.RunRecords(records)
}

// RunRecords analyzes records that are already validated and sorted
// ascending by raw timestamp.
func (e *Engine) RunRecords(records []models.RawRecord) (*Result, error) {
	normalized, period, err := e.reconciler.Reconcile(records)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile timestamps: %w", err)
	}

	series := channelSeries(normalized)
	e.smooth(normalized, series)

	summary := models.StatisticsSummary{
		PerChannel:       make(map[string]models.ChannelStats, len(models.Channels)),
		MoodDistribution: stats.MoodDistribution(normalized),
		Correlation:      stats.CorrelationMatrix(models.Channels, series),
	}
	for _, channel := range models.Channels {
		summary.PerChannel[channel] = stats.Describe(series[channel])
	}

	return &Result{
		RunID:   uuid.New().String(),
		Records: normalized,
		Period:  period,
		Summary: summary,
	}, nil
}

// channelSeries extracts the raw per-channel series in reconciled order.
func channelSeries(records []models.NormalizedRecord) map[string][]float64 {
	series := make(map[string][]float64, len(models.Channels))
	for _, channel := range models.Channels {
		values := make([]float64, len(records))
		for i, record := range records {
			values[i] = record.Channel(channel)
		}
		series[channel] = values
	}
	return series
}

// smooth fills the smoothed trend values over the reconciled order.
func (e *Engine) smooth(records []models.NormalizedRecord, series map[string][]float64) {
	soil := stats.RollingMean(series[models.ChannelSoil], e.window)
	light := stats.RollingMean(series[models.ChannelLight], e.window)
	temp := stats.RollingMean(series[models.ChannelTemp], e.window)
	hum := stats.RollingMean(series[models.ChannelHum], e.window)

	for i := range records {
		records[i].SoilSmooth = soil[i]
		records[i].LightSmooth = light[i]
		records[i].TempSmooth = temp[i]
		records[i].HumSmooth = hum[i]
	}
}
