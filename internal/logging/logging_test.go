package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitDefaultsToDiscard(t *testing.T) {
	closer, err := Init(Options{})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer closer.Close()

	if Global().Info().Enabled() {
		t.Fatal("default logger should not emit events")
	}
}

func TestInitDebugWritesToStderr(t *testing.T) {
	var buf bytes.Buffer
	closer, err := Init(Options{Debug: true, Stderr: &buf})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer closer.Close()
	defer Init(Options{})

	Global().Debug().Str("path", "tasks.csv").Msg("loaded")
	if !strings.Contains(buf.String(), "loaded") || !strings.Contains(buf.String(), "tasks.csv") {
		t.Fatalf("console output = %q", buf.String())
	}
}

func TestInitFileWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hourslens.log")
	closer, err := Init(Options{File: path})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Global().Info().Int("bins", 20).Msg("binned")
	Global().Debug().Msg("hidden at info level")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	defer Init(Options{})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), data)
	}
	var event map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event["message"] != "binned" || event["bins"] != float64(20) || event["app"] != "hourslens" {
		t.Fatalf("event = %v", event)
	}
}

func TestOptionsFromEnv(t *testing.T) {
	tests := []struct {
		debug string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv(EnvDebug, tt.debug)
		t.Setenv(EnvLogFile, " /tmp/x.log ")
		opts := OptionsFromEnv()
		if opts.Debug != tt.want {
			t.Errorf("HOURSLENS_DEBUG=%q: Debug = %v, want %v", tt.debug, opts.Debug, tt.want)
		}
		if opts.File != "/tmp/x.log" {
			t.Errorf("File = %q", opts.File)
		}
	}
}
