package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/plantsense/plantsense-cli/internal/models"
	"github.com/plantsense/plantsense-cli/internal/recorder"
)

// DefaultPlantID is the plant subtree read from an RTDB envelope when the
// caller does not name one.
const DefaultPlantID = "plant1"

// LoadFile reads a log mapping from disk. JSON files may be a full RTDB
// export envelope or a flat {id: entry} mapping; NDJSON files carry one entry
// per line with an embedded "id" field.
func LoadFile(path, plantID string) (map[string]models.RawEntry, error) {
	if strings.HasSuffix(path, ".ndjson") {
		logs, err := recorder.ReadEntries(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read ndjson log: %w", err)
		}
		return logs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}

	logs, err := models.ParseExport(data, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}
	return logs, nil
}
