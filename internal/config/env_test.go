package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	gameconfig "github.com/tomz197/starfall/internal/loop/config"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("STARFALL_TEST_VALUE", "set")

	if got := GetEnv("STARFALL_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv = %q, want %q", got, "set")
	}
	if got := GetEnv("STARFALL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt64(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		set     bool
		want    int64
		wantErr bool
	}{
		{"Unset", "", false, 7, false},
		{"Empty", "", true, 7, false},
		{"Number", "42", true, 42, false},
		{"Negative", "-3", true, -3, false},
		{"Garbage", "abc", true, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("STARFALL_TEST_INT", tt.value)
			}
			got, err := GetEnvInt64("STARFALL_TEST_INT", 7)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetEnvInt64 = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvDifficulty(t *testing.T) {
	t.Setenv("STARFALL_TEST_DIFFICULTY", "nightmare")
	d, err := GetEnvDifficulty("STARFALL_TEST_DIFFICULTY", gameconfig.Easy)
	if err != nil || d != gameconfig.Nightmare {
		t.Errorf("GetEnvDifficulty = %v, %v; want Nightmare", d, err)
	}

	t.Setenv("STARFALL_TEST_DIFFICULTY", "impossible")
	d, err = GetEnvDifficulty("STARFALL_TEST_DIFFICULTY", gameconfig.Easy)
	if !errors.Is(err, gameconfig.ErrUnknownDifficulty) {
		t.Errorf("err = %v, want ErrUnknownDifficulty", err)
	}
	if d != gameconfig.Easy {
		t.Errorf("fallback = %v, want Easy", d)
	}
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"bogus", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, "test", tt.level)
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewLogger_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "ssh", "info")

	logger.Debug("hidden")
	logger.Info("session started", "session", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(out, "session started") || !strings.Contains(out, "session=abc") {
		t.Errorf("output = %q", out)
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starfall.log")
	logger, closeLog, err := NewFileLogger(path, "game")
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Info("game started", "difficulty", "Hard")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "difficulty=Hard") {
		t.Errorf("log = %q", data)
	}

	if _, _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.log"), "game"); err == nil {
		t.Error("expected error for missing directory")
	}
}
