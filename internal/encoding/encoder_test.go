package encoding

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/plantsense/plantsense-cli/internal/models"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func sampleRecord() models.NormalizedRecord {
	return models.NormalizedRecord{
		RawRecord: models.RawRecord{
			ID:        "-N1",
			Timestamp: 1_700_000_000_000,
			SoilRaw:   512,
			LightRaw:  300,
			TempC:     21.5,
			Hum:       45,
			Mood:      "happy",
		},
		IsAbsolute:   true,
		AbsoluteTime: time.UnixMilli(1_700_000_000_000).UTC(),
		TimeLabel:    "2023-11-14 22:13",
		SoilSmooth:   510,
		LightSmooth:  305,
		TempSmooth:   21.25,
		HumSmooth:    44.5,
	}
}

func TestJSONEncoder(t *testing.T) {
	encoder := NewJSONEncoder()

	data, err := encoder.Encode(sampleRecord())
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	var decoded models.NormalizedRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != "-N1" || decoded.SoilSmooth != 510 {
		t.Errorf("roundtrip mismatch: %+v", decoded)
	}
	if encoder.ContentType() != "application/json" {
		t.Errorf("unexpected content type %q", encoder.ContentType())
	}
}

func TestProtobufEncoder(t *testing.T) {
	encoder := NewProtobufEncoder()

	data, err := encoder.Encode(sampleRecord())
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	var decoded structpb.Struct
	if err := proto.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not a valid protobuf struct: %v", err)
	}

	fields := decoded.GetFields()
	if fields["id"].GetStringValue() != "-N1" {
		t.Errorf("id = %q, want -N1", fields["id"].GetStringValue())
	}
	if fields["soil_smooth"].GetNumberValue() != 510 {
		t.Errorf("soil_smooth = %v, want 510", fields["soil_smooth"].GetNumberValue())
	}
	if fields["mood"].GetStringValue() != "happy" {
		t.Errorf("mood = %q, want happy", fields["mood"].GetStringValue())
	}
	if !fields["is_absolute"].GetBoolValue() {
		t.Error("is_absolute should be true")
	}
	if encoder.ContentType() != "application/x-protobuf" {
		t.Errorf("unexpected content type %q", encoder.ContentType())
	}
}

func TestNewEncoderSelectsFormat(t *testing.T) {
	if _, ok := NewEncoder(FormatProtobuf).(*ProtobufEncoder); !ok {
		t.Error("expected protobuf encoder")
	}
	if _, ok := NewEncoder(FormatJSON).(*JSONEncoder); !ok {
		t.Error("expected json encoder")
	}
	if _, ok := NewEncoder("bogus").(*JSONEncoder); !ok {
		t.Error("unknown format should default to json")
	}
}
