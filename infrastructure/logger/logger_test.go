package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type bufferCloser struct {
	sync.Mutex
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.Buffer.Write(p)
}

func (b *bufferCloser) Close() error {
	b.Lock()
	defer b.Unlock()
	b.closed = true
	return nil
}

func TestLoggerFiltersByLevel(t *testing.T) {
	backend := NewBackendWithFlags(0)
	out := &bufferCloser{}
	if err := backend.AddLogWriter(out, LevelDebug); err != nil {
		t.Fatalf("AddLogWriter: %s", err)
	}

	log := backend.Logger("TEST")
	if log.Level() != LevelOff {
		t.Fatalf("new loggers should start at %s, got %s", LevelOff, log.Level())
	}

	// Nothing is written while the backend isn't running.
	log.SetLevel(LevelTrace)
	log.Infof("dropped")

	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}
	if err := backend.Run(); err == nil {
		t.Fatalf("second Run should fail")
	}

	log.SetLevel(LevelInfo)
	log.Debugf("filtered by logger")
	log.Infof("hello %d", 42)
	log.Warnf("careful")
	backend.Close()

	output := out.String()
	if strings.Contains(output, "dropped") || strings.Contains(output, "filtered") {
		t.Fatalf("unexpected entries in output: %q", output)
	}
	if !strings.Contains(output, "[INF] TEST: hello 42\n") {
		t.Fatalf("missing info entry in output: %q", output)
	}
	if !strings.Contains(output, "[WRN] TEST: careful\n") {
		t.Fatalf("missing warn entry in output: %q", output)
	}
	if !out.closed {
		t.Fatalf("writer was not closed by Close")
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in    string
		level Level
		ok    bool
	}{
		{"trace", LevelTrace, true},
		{"DBG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"wrn", LevelWarn, true},
		{"error", LevelError, true},
		{"critical", LevelCritical, true},
		{"off", LevelOff, true},
		{"verbose", LevelInfo, false},
	}
	for _, test := range tests {
		level, ok := LevelFromString(test.in)
		if level != test.level || ok != test.ok {
			t.Errorf("LevelFromString(%q): got (%s, %t), want (%s, %t)",
				test.in, level, ok, test.level, test.ok)
		}
	}
}

func TestParseAndSetLogLevels(t *testing.T) {
	first := RegisterSubSystem("LGT1")
	second := RegisterSubSystem("LGT2")
	if RegisterSubSystem("LGT1") != first {
		t.Fatalf("RegisterSubSystem should return the existing logger")
	}

	if err := ParseAndSetLogLevels("LGT1=trace,LGT2=error"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %s", err)
	}
	if first.Level() != LevelTrace || second.Level() != LevelError {
		t.Fatalf("unexpected levels %s, %s", first.Level(), second.Level())
	}

	if err := ParseAndSetLogLevels("warn"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %s", err)
	}
	if first.Level() != LevelWarn || second.Level() != LevelWarn {
		t.Fatalf("unexpected levels %s, %s", first.Level(), second.Level())
	}

	if err := ParseAndSetLogLevels("NOPE=trace"); err == nil {
		t.Fatalf("expected an error for an unknown subsystem")
	}
	if err := ParseAndSetLogLevels("LGT1=loud"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
	if err := ParseAndSetLogLevels("LGT1=trace,LGT2"); err == nil {
		t.Fatalf("expected an error for a malformed pair")
	}
}

func TestBackendStart(t *testing.T) {
	logDir := t.TempDir()
	logFile := filepath.Join(logDir, "nested", "test.log")
	errLogFile := filepath.Join(logDir, "nested", "test_err.log")

	backend := NewBackendWithFlags(0)
	console := &bufferCloser{}
	if err := backend.start(console, logFile, errLogFile); err != nil {
		t.Fatalf("start: %s", err)
	}
	if err := backend.AddLogWriter(&bufferCloser{}, LevelInfo); err == nil {
		t.Fatalf("AddLogWriter should fail once the backend runs")
	}

	log := backend.Logger("TEST")
	log.SetLevel(LevelDebug)
	log.Debugf("details")
	log.Errorf("broken")
	backend.Close()
	backend.Close()

	if console.closed {
		t.Fatalf("the console was closed")
	}
	for _, entry := range []string{"[DBG] TEST: details", "[ERR] TEST: broken"} {
		if !strings.Contains(console.String(), entry) {
			t.Errorf("console is missing %q: %q", entry, console.String())
		}
	}

	logged, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if !strings.Contains(string(logged), "details") || !strings.Contains(string(logged), "broken") {
		t.Errorf("unexpected log file content %q", logged)
	}
	errLogged, err := os.ReadFile(errLogFile)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if strings.Contains(string(errLogged), "details") || !strings.Contains(string(errLogged), "broken") {
		t.Errorf("unexpected error log file content %q", errLogged)
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WRN" || LevelOff.String() != "OFF" || Level(42).String() != "OFF" {
		t.Errorf("unexpected level tags %s %s %s", LevelWarn, LevelOff, Level(42))
	}
}
