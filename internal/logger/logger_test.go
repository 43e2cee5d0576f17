package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	logDir := filepath.Join(tempDir, "config")

	err := Init(Config{
		Debug:  false,
		LogDir: logDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	if _, err := os.Stat(filepath.Join(logDir, "logs")); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", filepath.Join(logDir, "logs"))
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	data, err := os.ReadFile(filepath.Join(logDir, "logs", "habitchain.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected log file to contain output")
	}
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{
		Debug:  true,
		LogDir: filepath.Join(t.TempDir(), "config"),
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")
	Info("Test info message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	child := With("request_id", "abc")
	if child == nil {
		t.Fatal("With() returned nil without Init")
	}
	child.Info("discarded")
}

func TestWith(t *testing.T) {
	if err := Init(Config{LogDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	child := With("component", "test")
	if child == nil {
		t.Fatal("With() returned nil")
	}
	child.Info("child message")
}
