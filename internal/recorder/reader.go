package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/plantsense/plantsense-cli/internal/models"
)

// ReadEntries loads raw log entries from an NDJSON file: one JSON object per
// line, each carrying an "id" field alongside the sensor fields. The result
// is the same id-keyed mapping an RTDB export yields.
func ReadEntries(filename string) (map[string]models.RawEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open series file: %w", err)
	}
	defer file.Close()

	logs := make(map[string]models.RawEntry)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry models.RawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse entry at line %d: %w", lineNum, err)
		}

		id, ok := entry["id"].(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("entry at line %d has no id field", lineNum)
		}
		delete(entry, "id")
		logs[id] = entry
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading series file: %w", err)
	}
	return logs, nil
}

// ReadSeries loads normalized records back from an NDJSON series file, in
// file order.
func ReadSeries(filename string) ([]models.NormalizedRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open series file: %w", err)
	}
	defer file.Close()

	var records []models.NormalizedRecord
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var record models.NormalizedRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("failed to parse record at line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading series file: %w", err)
	}
	return records, nil
}
