package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/plantsense/plantsense-cli/internal/analysis"
	"github.com/plantsense/plantsense-cli/internal/models"
)

func sampleResult(t *testing.T) *analysis.Result {
	t.Helper()
	entry := func(ts, soil, light, temp, hum float64, mood string) models.RawEntry {
		return models.RawEntry{
			"timestamp": ts, "soil_raw": soil, "light_raw": light,
			"temp_c": temp, "hum": hum, "mood": mood,
		}
	}
	logs := map[string]models.RawEntry{
		"-N1": entry(1_700_000_000_000, 500, 300, 21, 40, "happy"),
		"-N2": entry(1_700_000_060_000, 510, 290, 22, 41, "thirsty"),
		"-N3": entry(1_700_000_120_000, 520, 280, 23, 42, "happy"),
	}

	result, err := analysis.NewEngine(analysis.Config{}).Run(logs)
	if err != nil {
		t.Fatalf("failed to analyze sample: %v", err)
	}
	return result
}

func defaultStyle(t *testing.T) *Style {
	t.Helper()
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("failed to load styles: %v", err)
	}
	style, err := registry.Get("default")
	if err != nil {
		t.Fatalf("default style missing: %v", err)
	}
	return style
}

func TestRenderTextSections(t *testing.T) {
	text := RenderText(sampleResult(t), defaultStyle(t))

	for _, section := range []string{
		"=== MONITORING PERIOD ===",
		"=== SENSOR STATISTICS ===",
		"=== MOOD DISTRIBUTION ===",
		"=== CORRELATIONS ===",
	} {
		if !strings.Contains(text, section) {
			t.Errorf("report missing section %q", section)
		}
	}

	if !strings.Contains(text, "Number of readings: 3") {
		t.Error("report missing reading count")
	}
	if !strings.Contains(text, "Soil Moisture") {
		t.Error("report should use styled channel labels")
	}
	if !strings.Contains(text, "happy") || !strings.Contains(text, "thirsty") {
		t.Error("report missing mood distribution entries")
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(1, 4); got != "████" {
		t.Errorf("full bar = %q", got)
	}
	if got := renderBar(0.5, 4); got != "██░░" {
		t.Errorf("half bar = %q", got)
	}
	if got := renderBar(-1, 4); got != "░░░░" {
		t.Errorf("negative share = %q", got)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleResult(t), defaultStyle(t), true)
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if doc.Period.ReadingCount != 3 {
		t.Errorf("reading_count = %d, want 3", doc.Period.ReadingCount)
	}
	if len(doc.Records) != 3 {
		t.Errorf("got %d records, want 3", len(doc.Records))
	}
	if doc.Style == nil || doc.Style.Name != "default" {
		t.Error("report should carry the style")
	}
}

func TestRenderJSONWithoutRecords(t *testing.T) {
	data, err := RenderJSON(sampleResult(t), nil, false)
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if strings.Contains(string(data), `"records"`) {
		t.Error("records should be omitted")
	}
}
