// Package encoding serializes normalized records into wire frames.
package encoding

import (
	"encoding/json"

	"github.com/plantsense/plantsense-cli/internal/models"
)

// Format represents the encoding format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatProtobuf Format = "protobuf"
)

// Encoder encodes normalized records to bytes.
type Encoder interface {
	Encode(record models.NormalizedRecord) ([]byte, error)
	ContentType() string
}

// JSONEncoder encodes records as JSON.
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

func (e *JSONEncoder) Encode(record models.NormalizedRecord) ([]byte, error) {
	return json.Marshal(record)
}

func (e *JSONEncoder) ContentType() string {
	return "application/json"
}

// NewEncoder creates an encoder for the given format.
func NewEncoder(format Format) Encoder {
	switch format {
	case FormatProtobuf:
		return NewProtobufEncoder()
	default:
		return NewJSONEncoder()
	}
}
