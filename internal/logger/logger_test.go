package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(false)

	Info("info message %d", 1)
	Warn("warn message")
	Error("error message: %v", "boom")
	Debug("hidden debug message")

	output := buf.String()
	for _, want := range []string{"INFO: info message 1", "WARN: warn message", "ERROR: error message: boom"} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in output: %s", want, output)
		}
	}
	if strings.Contains(output, "hidden debug message") {
		t.Errorf("debug line written while debug disabled: %s", output)
	}
	if !strings.Contains(output, "logger_test.go") {
		t.Errorf("expected caller file in output, got: %s", output)
	}
}

func TestLoggerDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(true)
	defer SetDebug(false)

	Debug("debug message")

	if !strings.Contains(buf.String(), "DEBUG: debug message") {
		t.Errorf("debug line missing, output: %s", buf.String())
	}
}

func TestLoggerKeepsPercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("100% done")

	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
