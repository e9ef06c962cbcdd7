// Package dataset turns raw export entries into validated, ordered records.
package dataset

import (
	"encoding/json"
	"sort"

	"github.com/plantsense/plantsense-cli/internal/models"
)

// numericFields are the required numeric fields of every log entry.
var numericFields = []string{"timestamp", "soil_raw", "light_raw", "temp_c", "hum"}

// Normalize validates every entry of a log mapping and returns the records
// sorted ascending by raw timestamp. Ordering ties are broken by record id so
// repeated runs over the same export produce identical output regardless of
// map iteration order.
func Normalize(logs map[string]models.RawEntry) ([]models.RawRecord, error) {
	if len(logs) == 0 {
		return nil, &models.EmptyDatasetError{}
	}

	records := make([]models.RawRecord, 0, len(logs))
	for id, entry := range logs {
		record, err := parseEntry(id, entry)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp < records[j].Timestamp
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

func parseEntry(id string, entry models.RawEntry) (models.RawRecord, error) {
	values := make(map[string]float64, len(numericFields))
	for _, field := range numericFields {
		value, err := numericField(id, entry, field)
		if err != nil {
			return models.RawRecord{}, err
		}
		values[field] = value
	}

	mood, ok := entry["mood"].(string)
	if !ok || mood == "" {
		return models.RawRecord{}, &models.MalformedRecordError{ID: id, Field: "mood"}
	}

	return models.RawRecord{
		ID:        id,
		Timestamp: values["timestamp"],
		SoilRaw:   values["soil_raw"],
		LightRaw:  values["light_raw"],
		TempC:     values["temp_c"],
		Hum:       values["hum"],
		Mood:      mood,
	}, nil
}

func numericField(id string, entry models.RawEntry, field string) (float64, error) {
	raw, ok := entry[field]
	if !ok {
		return 0, &models.MalformedRecordError{ID: id, Field: field}
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, &models.MalformedRecordError{ID: id, Field: field}
		}
		return f, nil
	}
	return 0, &models.MalformedRecordError{ID: id, Field: field}
}
