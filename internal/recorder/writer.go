// Package recorder reads and writes NDJSON sensor series files.
package recorder

import (
	"bufio"
	"fmt"
	"os"

	"github.com/plantsense/plantsense-cli/internal/encoding"
	"github.com/plantsense/plantsense-cli/internal/models"
)

// SeriesWriter writes normalized records to an NDJSON file, one frame per
// line.
type SeriesWriter struct {
	file    *os.File
	writer  *bufio.Writer
	encoder encoding.Encoder
}

// NewSeriesWriter creates a series writer. A nil encoder defaults to JSON.
func NewSeriesWriter(filename string, encoder encoding.Encoder) (*SeriesWriter, error) {
	if encoder == nil {
		encoder = encoding.NewJSONEncoder()
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create series file: %w", err)
	}
	return &SeriesWriter{
		file:    file,
		writer:  bufio.NewWriter(file),
		encoder: encoder,
	}, nil
}

// Write appends one record.
func (w *SeriesWriter) Write(record models.NormalizedRecord) error {
	data, err := w.encoder.Encode(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if _, err := w.writer.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}

// WriteAll writes a whole series and closes the file.
func (w *SeriesWriter) WriteAll(records []models.NormalizedRecord) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			w.file.Close()
			return err
		}
	}
	return w.Close()
}

// Close flushes and closes the underlying file.
func (w *SeriesWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
