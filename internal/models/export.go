package models

import "encoding/json"

// RawEntry is an unvalidated log entry as it appears in an export. Field
// presence and types are checked by the normalizer, so values stay untyped
// here.
type RawEntry map[string]any

// RTDBExport is the Firebase-RTDB-style export envelope written by the
// logging firmware: plants keyed by id, each with a logs mapping keyed by
// push id.
type RTDBExport struct {
	Plants map[string]PlantNode `json:"plants"`
}

// PlantNode is one plant subtree inside an export.
type PlantNode struct {
	Logs map[string]RawEntry `json:"logs"`
}

// ValidationError reports a structural problem with an export envelope.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Logs returns the log mapping for the named plant.
func (e *RTDBExport) Logs(plantID string) (map[string]RawEntry, error) {
	if len(e.Plants) == 0 {
		return nil, &ValidationError{Field: "plants", Message: "is required"}
	}
	plant, ok := e.Plants[plantID]
	if !ok {
		return nil, &ValidationError{Field: "plants." + plantID, Message: "not found in export"}
	}
	if plant.Logs == nil {
		return nil, &ValidationError{Field: "plants." + plantID + ".logs", Message: "is required"}
	}
	return plant.Logs, nil
}

// ParseExport decodes export bytes into a log mapping. Both the full RTDB
// envelope and a flat {id: entry} mapping are accepted; the flat form is what
// a partial export of the logs node looks like.
func ParseExport(data []byte, plantID string) (map[string]RawEntry, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ValidationError{Field: "export", Message: "not a JSON object: " + err.Error()}
	}

	if _, ok := probe["plants"]; ok {
		var export RTDBExport
		if err := json.Unmarshal(data, &export); err != nil {
			return nil, &ValidationError{Field: "plants", Message: "malformed envelope: " + err.Error()}
		}
		return export.Logs(plantID)
	}

	var logs map[string]RawEntry
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, &ValidationError{Field: "logs", Message: "malformed log mapping: " + err.Error()}
	}
	return logs, nil
}
