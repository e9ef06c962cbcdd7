package encoding

import (
	"time"

	"github.com/plantsense/plantsense-cli/internal/models"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtobufEncoder encodes records as protobuf Struct frames. Chart clients
// that already speak protobuf decode these without a schema file.
type ProtobufEncoder struct{}

func NewProtobufEncoder() *ProtobufEncoder {
	return &ProtobufEncoder{}
}

func (e *ProtobufEncoder) Encode(record models.NormalizedRecord) ([]byte, error) {
	pb, err := recordToStruct(record)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pb)
}

func (e *ProtobufEncoder) ContentType() string {
	return "application/x-protobuf"
}

func recordToStruct(r models.NormalizedRecord) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":            r.ID,
		"timestamp":     r.Timestamp,
		"soil_raw":      r.SoilRaw,
		"light_raw":     r.LightRaw,
		"temp_c":        r.TempC,
		"hum":           r.Hum,
		"mood":          r.Mood,
		"is_absolute":   r.IsAbsolute,
		"absolute_time": r.AbsoluteTime.UTC().Format(time.RFC3339Nano),
		"time_label":    r.TimeLabel,
		"soil_smooth":   r.SoilSmooth,
		"light_smooth":  r.LightSmooth,
		"temp_smooth":   r.TempSmooth,
		"hum_smooth":    r.HumSmooth,
	})
}
