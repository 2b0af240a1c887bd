package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/treegen/internal/config"
)

const sampleTree = "root/\n├── src/\n│   └── main.txt\n"

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	// keep a developer's own .treegen/config.yaml out of the tests
	t.Setenv(config.HomeEnv, t.TempDir())

	rootCmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile creates a file with content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "treegen" {
		t.Errorf("expected Use treegen, got %q", cmd.Use)
	}
	if !cmd.SilenceUsage {
		t.Error("expected SilenceUsage")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"build", "history"} {
		if !names[want] {
			t.Errorf("missing subcommand %s", want)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, Version) {
		t.Errorf("expected version %q in output, got %q", Version, stdout)
	}
}
