package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetLevel("warn")

	log.Debug("debug message", nil)
	log.Info("info message", nil)
	log.Warn("warn message", nil)
	log.Error("error message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("lines below the configured level leaked through:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("lines at or above the configured level are missing:\n%s", out)
	}
}

func TestDebugLevelLogsEverything(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetLevel("debug")

	log.Debug("debug message", nil)

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug line missing at debug level")
	}
}

func TestUnknownLevelKeepsCurrent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetLevel("verbose")

	log.Debug("debug message", nil)
	log.Info("info message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("unknown level name changed the configured level")
	}
	if !strings.Contains(out, "info message") {
		t.Error("info line missing at default level")
	}
}

func TestTextFormatIncludesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info("cart updated", map[string]interface{}{
		"quantity":  2,
		"operation": "add_to_cart",
	})

	out := buf.String()
	if !strings.Contains(out, "operation=add_to_cart quantity=2") {
		t.Errorf("fields missing or unsorted in text output: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetFormat("json")

	log.Info("state persisted", map[string]interface{}{
		"operation": "persist",
		"key":       "shop-storage",
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["msg"] != "state persisted" {
		t.Errorf("msg = %v, want state persisted", entry["msg"])
	}
	if entry["operation"] != "persist" {
		t.Errorf("operation = %v, want persist", entry["operation"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("time field missing from JSON entry")
	}
}

func TestWithFieldsBindsToEveryLine(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetFormat("json")

	bound := log.WithFields(map[string]interface{}{"store": "storefront"})
	bound.Info("first", nil)
	bound.Info("second", map[string]interface{}{"extra": true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if entry["store"] != "storefront" {
			t.Errorf("line %d missing bound field: %v", i, entry)
		}
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetFormat("json")

	log.WithFields(map[string]interface{}{"child": true})
	log.Info("parent line", nil)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := entry["child"]; ok {
		t.Error("child fields leaked into the parent logger")
	}
}

func TestPerCallFieldsOverrideBoundFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.SetFormat("json")

	bound := log.WithFields(map[string]interface{}{"operation": "bound"})
	bound.Info("line", map[string]interface{}{"operation": "call"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["operation"] != "call" {
		t.Errorf("operation = %v, want call", entry["operation"])
	}
}
