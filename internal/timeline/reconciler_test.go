package timeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/plantsense/plantsense-cli/internal/models"
)

func makeRecords(timestamps ...float64) []models.RawRecord {
	records := make([]models.RawRecord, len(timestamps))
	for i, ts := range timestamps {
		records[i] = models.RawRecord{
			ID:        string(rune('a' + i)),
			Timestamp: ts,
			Mood:      "happy",
		}
	}
	return records
}

// evenClassifier marks even timestamps absolute so fill branches can be
// exercised with uptime records on either side of an absolute one.
type evenClassifier struct{}

func (evenClassifier) Classify(ts float64) Class {
	if math.Mod(ts, 2) == 0 {
		return ClassAbsolute
	}
	return ClassUptime
}

func TestReconcileBackwardFill(t *testing.T) {
	// Sorted ascending by raw value: both uptime records precede the
	// absolute one and inherit its converted time.
	records := makeRecords(5000, 6000, 1_700_000_000_000)

	normalized, _, err := NewReconciler(nil).Reconcile(records)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	want := time.UnixMilli(1_700_000_000_000).UTC()
	for i, record := range normalized {
		if !record.AbsoluteTime.Equal(want) {
			t.Errorf("record %d: absolute_time = %v, want %v", i, record.AbsoluteTime, want)
		}
	}
	if normalized[0].IsAbsolute || normalized[1].IsAbsolute {
		t.Error("uptime records should not be marked absolute")
	}
	if !normalized[2].IsAbsolute {
		t.Error("epoch record should be marked absolute")
	}
}

func TestReconcileForwardFill(t *testing.T) {
	// With the parity classifier, the uptime record at 3001 follows the
	// absolute record at 2000 and inherits its time; the delta is discarded.
	records := makeRecords(1001, 2000, 3001)

	normalized, _, err := NewReconciler(evenClassifier{}).Reconcile(records)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	anchor := time.UnixMilli(2000).UTC()
	if !normalized[1].AbsoluteTime.Equal(anchor) {
		t.Errorf("absolute record: got %v, want %v", normalized[1].AbsoluteTime, anchor)
	}
	if !normalized[2].AbsoluteTime.Equal(anchor) {
		t.Errorf("forward-filled record: got %v, want %v", normalized[2].AbsoluteTime, anchor)
	}
	if !normalized[0].AbsoluteTime.Equal(anchor) {
		t.Errorf("backward-filled record: got %v, want %v", normalized[0].AbsoluteTime, anchor)
	}
}

func TestReconcileMonotonicWithAbsoluteAnchors(t *testing.T) {
	records := makeRecords(500, 9000, 1_700_000_000_000, 1_700_000_060_000, 1_700_000_120_000)

	normalized, _, err := NewReconciler(nil).Reconcile(records)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	for i := 1; i < len(normalized); i++ {
		if normalized[i].AbsoluteTime.Before(normalized[i-1].AbsoluteTime) {
			t.Errorf("absolute_time not monotonic at %d: %v < %v",
				i, normalized[i].AbsoluteTime, normalized[i-1].AbsoluteTime)
		}
	}
}

func TestReconcileAllUptime(t *testing.T) {
	records := makeRecords(0, 3600, 7200)

	normalized, period, err := NewReconciler(nil).Reconcile(records)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	wantLabels := []string{"0.0h", "1.0h", "2.0h"}
	for i, record := range normalized {
		if record.TimeLabel != wantLabels[i] {
			t.Errorf("record %d: label = %q, want %q", i, record.TimeLabel, wantLabels[i])
		}
		if record.IsAbsolute {
			t.Errorf("record %d: all-uptime batch should have no absolute records", i)
		}
	}

	if !normalized[0].AbsoluteTime.Equal(FixedEpoch) {
		t.Errorf("first record: got %v, want fixed epoch %v", normalized[0].AbsoluteTime, FixedEpoch)
	}
	if want := FixedEpoch.Add(2 * time.Hour); !normalized[2].AbsoluteTime.Equal(want) {
		t.Errorf("last record: got %v, want %v", normalized[2].AbsoluteTime, want)
	}
	if period.Duration != 2*time.Hour {
		t.Errorf("duration = %v, want 2h", period.Duration)
	}
}

func TestReconcileAllUptimeNonZeroStart(t *testing.T) {
	// Elapsed time counts from the earliest reading, not from zero.
	records := makeRecords(1800, 5400)

	normalized, _, err := NewReconciler(nil).Reconcile(records)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	if normalized[0].TimeLabel != "0.0h" {
		t.Errorf("first label = %q, want 0.0h", normalized[0].TimeLabel)
	}
	if normalized[1].TimeLabel != "1.0h" {
		t.Errorf("second label = %q, want 1.0h", normalized[1].TimeLabel)
	}
}

func TestReconcileCalendarLabels(t *testing.T) {
	records := makeRecords(1_700_000_000_000)

	normalized, _, err := NewReconciler(nil).Reconcile(records)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	want := time.UnixMilli(1_700_000_000_000).UTC().Format(DefaultTimeFormat)
	if normalized[0].TimeLabel != want {
		t.Errorf("label = %q, want %q", normalized[0].TimeLabel, want)
	}
}

func TestReconcileIdenticalTimestamps(t *testing.T) {
	records := makeRecords(1_700_000_000_000, 1_700_000_000_000, 1_700_000_000_000)

	_, period, err := NewReconciler(nil).Reconcile(records)
	if err != nil {
		t.Fatalf("identical timestamps should not fail: %v", err)
	}
	if period.Duration != 0 {
		t.Errorf("duration = %v, want 0", period.Duration)
	}
	if period.ReadingCount != 3 {
		t.Errorf("reading_count = %d, want 3", period.ReadingCount)
	}
}

func TestReconcilePeriod(t *testing.T) {
	records := makeRecords(1_700_000_000_000, 1_700_003_600_000)

	_, period, err := NewReconciler(nil).Reconcile(records)
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	if !period.Start.Equal(time.UnixMilli(1_700_000_000_000).UTC()) {
		t.Errorf("unexpected start %v", period.Start)
	}
	if !period.End.Equal(time.UnixMilli(1_700_003_600_000).UTC()) {
		t.Errorf("unexpected end %v", period.End)
	}
	if period.Duration != time.Hour {
		t.Errorf("duration = %v, want 1h", period.Duration)
	}
}

func TestReconcileEmpty(t *testing.T) {
	_, _, err := NewReconciler(nil).Reconcile(nil)
	var emptyErr *models.EmptyDatasetError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyDatasetError, got %v", err)
	}
}
