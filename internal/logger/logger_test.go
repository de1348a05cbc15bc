package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/burnoutguard/internal/constants"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Warn("disk nearly full", "free_mb", 12)
	logFile := filepath.Join(logDir, constants.AppName+".log")
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "disk nearly full") {
		t.Errorf("log file missing warning, got %q", data)
	}
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	NewObserver(nil).Trace("no logger", "k", "v")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.InfoLevel, true)
	l.Info("scored", "total", 42.5)

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "scored" || rec["total"] != 42.5 {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestObserver_TracesAtDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(New(&buf, log.DebugLevel, false))
	obs.Trace("stress score", "total", 61.2)

	out := buf.String()
	for _, want := range []string{"stress score", "total=61.2", "component=engine"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output %q missing %q", out, want)
		}
	}

	buf.Reset()
	quiet := NewObserver(New(&buf, log.WarnLevel, false))
	quiet.Trace("stress score", "total", 61.2)
	if buf.Len() != 0 {
		t.Errorf("debug traces should be filtered at warn level, got %q", buf.String())
	}
}
