// Package timeline reconciles mixed epoch/uptime timestamps onto one
// absolute time axis.
//
// The logging firmware writes whatever clock it has: entries logged after an
// NTP sync carry epoch milliseconds, entries logged before it carry the
// device uptime counter. Nothing in the entry says which one it is, so the
// axis has to be inferred from the values themselves.
package timeline

// Class is the inferred meaning of a raw timestamp value.
type Class int

const (
	// ClassUptime marks a device-relative uptime counter value.
	ClassUptime Class = iota
	// ClassAbsolute marks an absolute epoch-milliseconds value.
	ClassAbsolute
)

func (c Class) String() string {
	if c == ClassAbsolute {
		return "absolute"
	}
	return "uptime"
}

// Classifier decides whether a raw timestamp is absolute or uptime. The
// reconciliation algorithm only depends on this interface, so alternate
// heuristics can be swapped in without touching it.
type Classifier interface {
	Classify(timestamp float64) Class
}

// DefaultThreshold separates epoch milliseconds from uptime counters. The
// magnitude is implausible for any uptime counter (≈317 years of seconds)
// but certain for millisecond epoch values from 2001 onwards.
const DefaultThreshold = 10_000_000_000

// ThresholdClassifier classifies by magnitude: strictly above the threshold
// is absolute, everything else (the threshold value included) is uptime.
type ThresholdClassifier struct {
	Threshold float64
}

// NewThresholdClassifier returns a classifier with the default threshold.
func NewThresholdClassifier() ThresholdClassifier {
	return ThresholdClassifier{Threshold: DefaultThreshold}
}

// Classify implements Classifier.
func (c ThresholdClassifier) Classify(timestamp float64) Class {
	if timestamp > c.Threshold {
		return ClassAbsolute
	}
	return ClassUptime
}
