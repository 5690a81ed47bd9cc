package logging_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"originx/internal/config"
	"originx/internal/logging"
)

func newFileLogger(t *testing.T) (string, func() string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "originx.log")
	return logPath, func() string {
		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(content)
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Dir = t.TempDir()
	cfg.Logging.Level = "info"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("vault opened")

	content, err := os.ReadFile(filepath.Join(cfg.Logging.Dir, "originx.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "vault opened") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerHonorsLevel(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "", wantInfo: true},
		{level: "bogus", wantInfo: true},
		{level: "WARNING"},
		{level: "error"},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			logPath, read := newFileLogger(t)
			logger, err := logging.New(logging.Options{Level: tc.level, File: logPath})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			logger.Debug("debug line")
			logger.Info("info line")
			logger.Error("error line")

			content := read()
			if got := strings.Contains(content, "DEBUG debug line"); got != tc.wantDebug {
				t.Fatalf("debug present = %v, want %v in %q", got, tc.wantDebug, content)
			}
			if got := strings.Contains(content, "INFO info line"); got != tc.wantInfo {
				t.Fatalf("info present = %v, want %v in %q", got, tc.wantInfo, content)
			}
			if !strings.Contains(content, "ERROR error line") {
				t.Fatalf("expected error line in %q", content)
			}
		})
	}
}

func TestConsoleLoggerFlattensGroups(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{File: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.WithGroup("redis").Info("connected",
		logging.String("addr", "localhost:6379"),
		slog.Group("pool", slog.Int("size", 4)))

	content := read()
	for _, want := range []string{"redis.addr=localhost:6379", "redis.pool.size=4"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestConsoleLoggerRendersComponentAndFields(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", File: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "vault").Info("record saved",
		logging.String(logging.FieldRecordID, "abc"),
		logging.String("label", "two words"))

	content := read()
	if !strings.Contains(content, "INFO vault: record saved") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, "record_id=abc") {
		t.Fatalf("expected record_id field, got %q", content)
	}
	if !strings.Contains(content, `label="two words"`) {
		t.Fatalf("expected quoted label, got %q", content)
	}
}

func TestJSONLoggerFieldNames(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", File: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("json message", logging.String("k", "v"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry["k"] != "v" {
		t.Fatalf("expected k=v, got %v", entry["k"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", File: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "vault unreadable", "vault_corrupted",
		logging.Error(errors.New("bad json")),
		logging.String(logging.FieldImpact, "vault treated as empty"))

	content := read()
	for _, want := range []string{"event_type=vault_corrupted", "error_hint=", `impact="vault treated as empty"`, `error="bad json"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestErrorWithContextKeepsExplicitHint(t *testing.T) {
	logPath, read := newFileLogger(t)
	logger, err := logging.New(logging.Options{Level: "error", File: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.ErrorWithContext(logger, "save failed", "vault_save_failed",
		logging.String(logging.FieldErrorHint, "retry"))
	logging.ErrorWithContext(logger, "second failure", "vault_save_failed")

	content := read()
	for _, want := range []string{"ERROR save failed", "error_hint=retry", "error_hint=\"check logs for details\"", "event_type=vault_save_failed"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Count(content, "error_hint=") != 2 {
		t.Fatalf("expected one hint per line, got %q", content)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("dropped")
	logging.WarnWithContext(nil, "ignored", "none")
}
