package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "warn message") {
		t.Errorf("expected first line to be the warning, got %q", lines[0])
	}
}

func TestJSONLogger_FieldsAreMerged(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel).With(String("network", "abc"))

	logger.Info("connected", String("unit", "u1"), Int("component", 0))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok {
		t.Fatalf("missing fields object: %v", entry)
	}
	if fields["network"] != "abc" || fields["unit"] != "u1" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != DebugLevel {
		t.Error("debug not parsed")
	}
	if ParseLevel("ERROR") != ErrorLevel {
		t.Error("ERROR not parsed")
	}
	if ParseLevel("bogus") != InfoLevel {
		t.Error("unknown level should default to info")
	}
}
