package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewReleaseWritesToFile(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "app.log"})
	if log == nil {
		t.Fatalf("logger should not be nil")
	}

	log.Sugar().Infow("release_log_entry", "key", "value")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "release_log_entry") {
		t.Fatalf("log file should contain the event, got %s", content)
	}
	if !strings.Contains(content, `"key":"value"`) {
		t.Fatalf("release logs should be JSON encoded, got %s", content)
	}
}

func TestNewDebugDoesNotCreateFile(t *testing.T) {
	dir := t.TempDir()
	log := New("debug", Options{Dir: dir, Filename: "app.log"})
	if log == nil {
		t.Fatalf("logger should not be nil")
	}

	log.Sugar().Debugw("debug_log_entry")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "app.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode must not write a log file, stat err: %v", err)
	}
}

func TestZFallsBackWhenUninitialized(t *testing.T) {
	saved := L
	L = nil
	defer func() { L = saved }()

	if Z() == nil {
		t.Fatalf("Z must always return a usable logger")
	}
	if S() == nil {
		t.Fatalf("S must always return a usable logger")
	}
	// 不触发 panic 即可
	Infow("fallback_entry", "key", "value")
}
