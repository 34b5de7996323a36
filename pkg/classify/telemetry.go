package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// ClassificationEvent records one classification pass for offline analysis:
// the decision, which extractors contributed, which ones failed, and whether
// the result came from cache.
type ClassificationEvent struct {
	Timestamp       time.Time     `json:"timestamp"`
	Label           Label         `json:"label"`
	Version         string        `json:"version,omitempty"`
	OS              string        `json:"os,omitempty"`
	Device          DeviceClass   `json:"device"`
	Confidence      float64       `json:"confidence"`
	Contributors    []ExtractorID `json:"contributors"`
	ExtractorErrors []string      `json:"extractor_errors,omitempty"`
	CacheHit        bool          `json:"cache_hit"`
	DurationMicros  int64         `json:"duration_micros"`
}

// TelemetryWriter appends classification events to a JSONL file in a
// thread-safe manner.
type TelemetryWriter struct {
	filePath string
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	enabled  bool
}

// NewTelemetryWriter creates a telemetry writer that appends to filePath.
// An empty path yields a disabled writer whose Write is a no-op.
func NewTelemetryWriter(filePath string) (*TelemetryWriter, error) {
	if filePath == "" {
		return &TelemetryWriter{enabled: false}, nil
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry file: %w", err)
	}

	return &TelemetryWriter{
		filePath: filePath,
		file:     file,
		encoder:  json.NewEncoder(file),
		enabled:  true,
	}, nil
}

// Write appends one event. Disabled writers skip silently.
func (w *TelemetryWriter) Write(event ClassificationEvent) error {
	if !w.enabled {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to write telemetry event: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (w *TelemetryWriter) Close() error {
	if !w.enabled || w.file == nil {
		return nil
	}
	return w.file.Close()
}
