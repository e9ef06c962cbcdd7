package timeline

import (
	"fmt"
	"time"

	"github.com/plantsense/plantsense-cli/internal/models"
)

// FixedEpoch anchors all-uptime batches. It is an arbitrary, documented
// constant, not a measurement: with no absolute reading anywhere in the
// batch there is nothing real to anchor to.
var FixedEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultTimeFormat is the label layout for batches with absolute readings.
const DefaultTimeFormat = "2006-01-02 15:04"

// Period summarizes the reconciled time span of a batch.
type Period struct {
	Start        time.Time     `json:"start"`
	End          time.Time     `json:"end"`
	Duration     time.Duration `json:"duration"`
	ReadingCount int           `json:"reading_count"`
}

// Reconciler assigns one consistent absolute time to every record of a
// timestamp-sorted batch.
type Reconciler struct {
	classifier Classifier
	anchor     time.Time
	timeFormat string
}

// NewReconciler creates a reconciler around the given classifier. A nil
// classifier falls back to the default magnitude threshold.
func NewReconciler(classifier Classifier) *Reconciler {
	if classifier == nil {
		classifier = NewThresholdClassifier()
	}
	return &Reconciler{
		classifier: classifier,
		anchor:     FixedEpoch,
		timeFormat: DefaultTimeFormat,
	}
}

// SetTimeFormat overrides the calendar label layout.
func (r *Reconciler) SetTimeFormat(layout string) {
	if layout != "" {
		r.timeFormat = layout
	}
}

// Reconcile assigns absolute_time and a display label to every record. The
// input must already be sorted ascending by raw timestamp.
//
// With at least one absolute reading, absolute records convert their epoch
// milliseconds directly and uptime records inherit the absolute time of
// their nearest preceding absolute neighbor; uptime records before the first
// absolute one inherit backwards from it. The uptime delta itself is
// discarded on purpose: an uptime record tells us its position in the log,
// not when it happened.
//
// With no absolute reading at all, timestamps are treated as seconds since
// boot, anchored at FixedEpoch, and labeled as elapsed hours.
func (r *Reconciler) Reconcile(records []models.RawRecord) ([]models.NormalizedRecord, Period, error) {
	if len(records) == 0 {
		return nil, Period{}, &models.EmptyDatasetError{}
	}

	classes := make([]Class, len(records))
	anyAbsolute := false
	for i, record := range records {
		classes[i] = r.classifier.Classify(record.Timestamp)
		if classes[i] == ClassAbsolute {
			anyAbsolute = true
		}
	}

	normalized := make([]models.NormalizedRecord, len(records))
	if anyAbsolute {
		r.reconcileAnchored(records, classes, normalized)
	} else {
		r.reconcileRelative(records, normalized)
	}

	return normalized, buildPeriod(normalized), nil
}

// reconcileAnchored handles batches with at least one absolute reading: a
// forward fill pass followed by a backward fill pass over the sparse
// absolute times.
func (r *Reconciler) reconcileAnchored(records []models.RawRecord, classes []Class, out []models.NormalizedRecord) {
	assigned := make([]bool, len(records))

	var last time.Time
	haveLast := false
	for i, record := range records {
		if classes[i] == ClassAbsolute {
			last = time.UnixMilli(int64(record.Timestamp)).UTC()
			haveLast = true
		}
		if haveLast {
			out[i] = models.NormalizedRecord{
				RawRecord:    record,
				IsAbsolute:   classes[i] == ClassAbsolute,
				AbsoluteTime: last,
			}
			assigned[i] = true
		}
	}

	var next time.Time
	haveNext := false
	for i := len(records) - 1; i >= 0; i-- {
		if assigned[i] {
			next = out[i].AbsoluteTime
			haveNext = true
			continue
		}
		if haveNext {
			out[i] = models.NormalizedRecord{
				RawRecord:    records[i],
				IsAbsolute:   false,
				AbsoluteTime: next,
			}
		}
	}

	for i := range out {
		out[i].TimeLabel = out[i].AbsoluteTime.Format(r.timeFormat)
	}
}

// reconcileRelative handles all-uptime batches: timestamps become seconds
// elapsed since the earliest reading, anchored at a synthetic epoch.
func (r *Reconciler) reconcileRelative(records []models.RawRecord, out []models.NormalizedRecord) {
	min := records[0].Timestamp
	for _, record := range records[1:] {
		if record.Timestamp < min {
			min = record.Timestamp
		}
	}

	for i, record := range records {
		elapsed := record.Timestamp - min
		out[i] = models.NormalizedRecord{
			RawRecord:    record,
			IsAbsolute:   false,
			AbsoluteTime: r.anchor.Add(time.Duration(elapsed * float64(time.Second))),
			TimeLabel:    fmt.Sprintf("%.1fh", elapsed/3600),
		}
	}
}

func buildPeriod(records []models.NormalizedRecord) Period {
	start, end := records[0].AbsoluteTime, records[0].AbsoluteTime
	for _, record := range records[1:] {
		if record.AbsoluteTime.Before(start) {
			start = record.AbsoluteTime
		}
		if record.AbsoluteTime.After(end) {
			end = record.AbsoluteTime
		}
	}
	return Period{
		Start:        start,
		End:          end,
		Duration:     end.Sub(start),
		ReadingCount: len(records),
	}
}
