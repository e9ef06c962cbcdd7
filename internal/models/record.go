package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Channel names, in the fixed order used throughout the analysis.
const (
	ChannelSoil  = "soil_raw"
	ChannelLight = "light_raw"
	ChannelTemp  = "temp_c"
	ChannelHum   = "hum"
)

// Channels lists the four numeric sensor channels in canonical order.
var Channels = []string{ChannelSoil, ChannelLight, ChannelTemp, ChannelHum}

// RawRecord is a single validated sensor reading as logged by the device.
type RawRecord struct {
	ID        string  `json:"id"`
	Timestamp float64 `json:"timestamp"`
	SoilRaw   float64 `json:"soil_raw"`
	LightRaw  float64 `json:"light_raw"`
	TempC     float64 `json:"temp_c"`
	Hum       float64 `json:"hum"`
	Mood      string  `json:"mood"`
}

// Channel returns the reading for the named channel.
func (r RawRecord) Channel(name string) float64 {
	switch name {
	case ChannelSoil:
		return r.SoilRaw
	case ChannelLight:
		return r.LightRaw
	case ChannelTemp:
		return r.TempC
	case ChannelHum:
		return r.Hum
	}
	return math.NaN()
}

// NormalizedRecord is a RawRecord placed on the reconciled absolute time axis
// with smoothed trend values attached. It is created once per run and never
// mutated afterwards.
type NormalizedRecord struct {
	RawRecord

	IsAbsolute   bool      `json:"is_absolute"`
	AbsoluteTime time.Time `json:"absolute_time"`
	TimeLabel    string    `json:"time_label"`

	SoilSmooth  float64 `json:"soil_smooth"`
	LightSmooth float64 `json:"light_smooth"`
	TempSmooth  float64 `json:"temp_smooth"`
	HumSmooth   float64 `json:"hum_smooth"`
}

// Stat is a float64 that marshals NaN as JSON null instead of failing.
// Degenerate statistics (std of a single reading, correlation of a constant
// channel) are NaN by contract, and encoding/json rejects NaN outright.
type Stat float64

// MarshalJSON implements json.Marshaler.
func (s Stat) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler, mapping null back to NaN.
func (s *Stat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Stat(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}

// ChannelStats holds descriptive statistics for one numeric channel.
type ChannelStats struct {
	Count int  `json:"count"`
	Mean  Stat `json:"mean"`
	Std   Stat `json:"std"`
	Min   Stat `json:"min"`
	P25   Stat `json:"p25"`
	P50   Stat `json:"p50"`
	P75   Stat `json:"p75"`
	Max   Stat `json:"max"`
}

// MoodCount is one entry of the mood distribution.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// CorrelationMatrix is a symmetric Pearson correlation matrix over Channels.
type CorrelationMatrix struct {
	Channels []string `json:"channels"`
	Values   [][]Stat `json:"values"`
}

// At returns the correlation between two channels by index.
func (m CorrelationMatrix) At(i, j int) float64 {
	return float64(m.Values[i][j])
}

// StatisticsSummary bundles everything the statistics engine derives from a
// batch: per-channel descriptive stats, the mood distribution ordered by
// descending count, and the pairwise correlation matrix.
type StatisticsSummary struct {
	PerChannel       map[string]ChannelStats `json:"per_channel"`
	MoodDistribution []MoodCount             `json:"mood_distribution"`
	Correlation      CorrelationMatrix       `json:"correlation"`
}

// MalformedRecordError reports a record whose required field is missing or
// has the wrong type. It aborts the whole run.
type MalformedRecordError struct {
	ID    string `json:"id"`
	Field string `json:"field"`
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %q: field %q is missing or malformed", e.ID, e.Field)
}

// EmptyDatasetError reports an export with zero log entries.
type EmptyDatasetError struct{}

func (e *EmptyDatasetError) Error() string {
	return "dataset contains no records"
}
