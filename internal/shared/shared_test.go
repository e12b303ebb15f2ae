package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := GenerateID()
		if len(id) != 36 {
			t.Fatalf("expected 36 character uuid, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  log.Level
	}{
		{name: "empty", input: "", want: log.InfoLevel},
		{name: "debug", input: "debug", want: log.DebugLevel},
		{name: "warn", input: "warn", want: log.WarnLevel},
		{name: "unknown", input: "loud", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggers(t *testing.T) {
	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "component=test") {
			t.Errorf("expected component field in output, got %s", buf.String())
		}
	})

	t.Run("NewFileLogger creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "fakefy.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("written")

		if !strings.Contains(mustRead(t, path), "written") {
			t.Error("expected log line in file")
		}
	})
}

func TestOpenBrowser(t *testing.T) {
	orig := getRuntime
	t.Cleanup(func() { getRuntime = orig })

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); !errors.Is(err, ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
	})

	t.Run("rejects non-web addresses", func(t *testing.T) {
		for _, target := range []string{"", "file:///etc/passwd", "example.com/watch", "javascript:alert(1)"} {
			if err := OpenBrowser(target); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("%q: expected ErrInvalidArgument, got %v", target, err)
			}
		}
	})

	t.Run("platform commands", func(t *testing.T) {
		tests := map[string]string{"darwin": "open", "linux": "xdg-open", "windows": "rundll32"}
		for goos, bin := range tests {
			cmd, err := browserCommand(goos, "https://example.com")
			if err != nil {
				t.Fatalf("%s: unexpected error %v", goos, err)
			}
			if filepath.Base(cmd.Args[0]) != bin {
				t.Errorf("%s: expected %s, got %s", goos, bin, cmd.Args[0])
			}
			if cmd.Args[len(cmd.Args)-1] != "https://example.com" {
				t.Errorf("%s: expected URL as last argument, got %v", goos, cmd.Args)
			}
		}
	})
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
