package classify

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTelemetryWriter_AppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	w, err := NewTelemetryWriter(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = w.Close() }()

	events := []ClassificationEvent{
		{
			Timestamp:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Label:        LabelChrome,
			Version:      "120.0.6099.129",
			OS:           "Windows",
			Device:       DeviceDesktop,
			Confidence:   0.95,
			Contributors: []ExtractorID{ExtractorCapability, ExtractorUserAgent},
		},
		{
			Timestamp: time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC),
			Label:     LabelChrome,
			Device:    DeviceDesktop,
			CacheHit:  true,
		},
	}
	for _, e := range events {
		if err := w.Write(e); err != nil {
			t.Fatalf("write event: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open telemetry file: %v", err)
	}
	defer func() { _ = f.Close() }()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var decoded ClassificationEvent
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if decoded.Label != LabelChrome {
			t.Fatalf("line %d: unexpected label %q", lines+1, decoded.Label)
		}
		lines++
	}
	if lines != len(events) {
		t.Fatalf("expected %d JSONL lines, got %d", len(events), lines)
	}
}

func TestTelemetryWriter_DisabledOnEmptyPath(t *testing.T) {
	w, err := NewTelemetryWriter("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Write(ClassificationEvent{Label: LabelChrome}); err != nil {
		t.Fatalf("disabled writer must not fail: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("disabled writer close: %v", err)
	}
}

func TestTelemetryWriter_EngineEmitsCacheHit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	w, err := NewTelemetryWriter(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = w.Close() }()

	engine, err := NewEngine(
		Signals{UserAgent: "Mozilla/5.0 Chrome/120.0.0.0 Safari/537.36", Vendor: "Google Inc."},
		WithTelemetry(w),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine.Classify()
	engine.Classify()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read telemetry file: %v", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var events []ClassificationEvent
	for scanner.Scan() {
		var e ClassificationEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		events = append(events, e)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].CacheHit {
		t.Fatalf("first pass must not be a cache hit")
	}
	if !events[1].CacheHit {
		t.Fatalf("second pass must be a cache hit")
	}
}
