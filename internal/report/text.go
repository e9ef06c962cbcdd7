package report

import (
	"fmt"
	"strings"

	"github.com/plantsense/plantsense-cli/internal/analysis"
	"github.com/plantsense/plantsense-cli/internal/models"
)

const moodBarWidth = 20

// RenderText renders the classic four-section text report: monitoring
// period, sensor statistics, mood distribution, correlations.
func RenderText(result *analysis.Result, style *Style) string {
	var b strings.Builder

	timeFormat := style.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04"
	}

	b.WriteString("=== MONITORING PERIOD ===\n")
	fmt.Fprintf(&b, "Start: %s\n", result.Period.Start.Format(timeFormat))
	fmt.Fprintf(&b, "End: %s\n", result.Period.End.Format(timeFormat))
	hours := result.Period.Duration.Hours()
	fmt.Fprintf(&b, "Total duration: %.1f hours (%.1f days)\n", hours, hours/24)
	fmt.Fprintf(&b, "Number of readings: %d\n", result.Period.ReadingCount)

	b.WriteString("\n=== SENSOR STATISTICS ===\n")
	fmt.Fprintf(&b, "%-24s %6s %9s %9s %9s %9s %9s %9s %9s\n",
		"channel", "count", "mean", "std", "min", "p25", "p50", "p75", "max")
	for _, channel := range result.Summary.Correlation.Channels {
		cs := result.Summary.PerChannel[channel]
		fmt.Fprintf(&b, "%-24s %6d %9.2f %9.2f %9.2f %9.2f %9.2f %9.2f %9.2f\n",
			style.ChannelLabel(channel), cs.Count,
			float64(cs.Mean), float64(cs.Std), float64(cs.Min),
			float64(cs.P25), float64(cs.P50), float64(cs.P75), float64(cs.Max))
	}

	b.WriteString("\n=== MOOD DISTRIBUTION ===\n")
	writeMoodDistribution(&b, result.Summary.MoodDistribution)

	b.WriteString("\n=== CORRELATIONS ===\n")
	writeCorrelation(&b, result.Summary.Correlation)

	return b.String()
}

func writeMoodDistribution(b *strings.Builder, distribution []models.MoodCount) {
	if len(distribution) == 0 {
		return
	}
	max := distribution[0].Count
	for _, mc := range distribution {
		share := float64(mc.Count) / float64(max)
		fmt.Fprintf(b, "%-12s %5d  %s\n", mc.Mood, mc.Count, renderBar(share, moodBarWidth))
	}
}

func writeCorrelation(b *strings.Builder, matrix models.CorrelationMatrix) {
	fmt.Fprintf(b, "%-12s", "")
	for _, channel := range matrix.Channels {
		fmt.Fprintf(b, " %10s", channel)
	}
	b.WriteString("\n")

	for i, channel := range matrix.Channels {
		fmt.Fprintf(b, "%-12s", channel)
		for j := range matrix.Channels {
			fmt.Fprintf(b, " %10.2f", matrix.At(i, j))
		}
		b.WriteString("\n")
	}
}

// renderBar draws a proportional unicode bar.
func renderBar(share float64, width int) string {
	filled := int(share * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
