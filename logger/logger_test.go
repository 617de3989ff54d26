package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	log, err := NewWithFileConfig("debug", DefaultFileConfig(path), false)
	if err != nil {
		t.Fatalf("NewWithFileConfig: %v", err)
	}

	log.Info("hello from the frame loop")
	if err := log.Sync(); err != nil {
		t.Logf("sync: %v", err) // some platforms refuse to sync regular files
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from the frame loop") {
		t.Errorf("log file missing message: %q", data)
	}
	if !strings.Contains(string(data), "INFO") {
		t.Errorf("log file missing level: %q", data)
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")

	log, err := NewWithFileConfig("warn", DefaultFileConfig(path), false)
	if err != nil {
		t.Fatalf("NewWithFileConfig: %v", err)
	}

	log.Debug("too quiet")
	log.Info("still too quiet")
	log.Warn("loud enough")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "too quiet") {
		t.Errorf("below-threshold entries written: %q", data)
	}
	if !strings.Contains(string(data), "loud enough") {
		t.Errorf("warn entry missing: %q", data)
	}
}
