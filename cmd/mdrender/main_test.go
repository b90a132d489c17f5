package main

// Notes:
// - runMain tests drive the whole CLI with an injected Environment. No test
//   touches the network: images are relative sources from stdin, which fail
//   before any fetch, or images are disabled.
// - Watch mode is exercised through watchLoop in watch_test.go; runMain
//   with --watch is only checked for its stdin usage error.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdin:           strings.NewReader(stdin),
		Stdout:          &stdout,
		Stderr:          &stderr,
		TerminalWidth:   func() int { return 0 },
		StdinIsTerminal: func() bool { return false },
	}, &stdout, &stderr
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.md", "# Guide\n\n1. first\n2. second\n")
	cfgPath := writeFile(t, dir, "render.yaml", "layout:\n  blockGap: 24\noutput:\n  format: yaml\n")

	tests := []struct {
		name         string
		args         []string
		stdin        string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "help exits 0",
			args:         []string{"mdrender", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdrender"},
		},
		{
			name:         "version exits 0",
			args:         []string{"mdrender", "--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"mdrender " + Version},
		},
		{
			name:         "stdin as text",
			args:         []string{"mdrender", "-q", "--width", "40"},
			stdin:        "# Title\n\n- a\n- b\n",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Title", "• a", "• b"},
		},
		{
			name:         "file as yaml outline",
			args:         []string{"mdrender", "-q", "--format", "yaml", doc},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"kind: heading", "text: Guide", "text: second"},
		},
		{
			name:         "config file applies",
			args:         []string{"mdrender", "-q", "--config", cfgPath, "--print-config"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"blockGap: 24", "format: yaml"},
		},
		{
			name:         "flag overrides config file",
			args:         []string{"mdrender", "-q", "--config", cfgPath, "--format", "text", "--print-config"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"format: text"},
		},
		{
			name:         "info log reports render",
			args:         []string{"mdrender", "--no-images"},
			stdin:        "hello\n",
			wantCode:     ExitSuccess,
			wantInStderr: []string{"rendered"},
		},
		{
			name:     "strict fails on broken image",
			args:     []string{"mdrender", "-q", "--strict"},
			stdin:    "![alt](relative.png)\n",
			wantCode: ExitImages,
		},
		{
			name:         "disabled images do not fail strict",
			args:         []string{"mdrender", "-q", "--strict", "--no-images"},
			stdin:        "![alt](https://example.com/a.png)\n",
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Couldn't load image."},
		},
		{
			name:     "missing file",
			args:     []string{"mdrender", filepath.Join(dir, "missing.md")},
			wantCode: ExitIO,
		},
		{
			name:     "too many files",
			args:     []string{"mdrender", "a.md", "b.md"},
			wantCode: ExitUsage,
		},
		{
			name:         "unknown flag",
			args:         []string{"mdrender", "--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"bogus"},
		},
		{
			name:         "invalid format",
			args:         []string{"mdrender", "--format", "pdf"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid output format"},
		},
		{
			name:     "width out of range",
			args:     []string{"mdrender", "--width", "5"},
			wantCode: ExitUsage,
		},
		{
			name:         "config name not found",
			args:         []string{"mdrender", "--config", "no-such-config-name"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"hint:"},
		},
		{
			name:     "watch needs a file",
			args:     []string{"mdrender", "--watch"},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(tt.stdin)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}

			out := ansi.Strip(stdout.String())
			for _, want := range tt.wantInStdout {
				if !strings.Contains(out, want) {
					t.Errorf("stdout should contain %q, got %q", want, out)
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

func TestRunMain_InteractiveStdin(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv("")
	env.StdinIsTerminal = func() bool { return true }

	if code := runMain([]string{"mdrender"}, env); code != ExitIO {
		t.Errorf("runMain() = %d, want %d", code, ExitIO)
	}
}

func TestRunMain_RelativeImageFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "pic.png", "not really a png")
	doc := writeFile(t, dir, "doc.md", "![pic](pic.png)\n")

	env, stdout, stderr := testEnv("")
	code := runMain([]string{"mdrender", "-q", "--strict", doc}, env)

	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}
	if out := ansi.Strip(stdout.String()); !strings.Contains(out, "[image: pic, 16 bytes]") {
		t.Errorf("stdout = %q, want loaded image", out)
	}
}
