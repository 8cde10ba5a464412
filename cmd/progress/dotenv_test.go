// ABOUTME: Tests for the .env loader that seeds PROGRESS_* settings into the process environment.
// ABOUTME: Covers line parsing, quoting, comments, no-clobber behavior, and the config dir search.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}

func TestParseDotEnvLine(t *testing.T) {
	tests := []struct {
		line      string
		key, want string
		ok        bool
	}{
		{"A=hello", "A", "hello", true},
		{"  A = spaced  ", "A", "spaced", true},
		{`A="quoted value"`, "A", "quoted value", true},
		{`A='single quoted'`, "A", "single quoted", true},
		{`A="mismatched'`, "A", `"mismatched'`, true},
		{"export A=exported", "A", "exported", true},
		{"A=a=b=c", "A", "a=b=c", true},
		{"A=", "A", "", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"no equals sign", "", "", false},
		{"=value", "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := parseDotEnvLine(tt.line)
		if ok != tt.ok || key != tt.key || value != tt.want {
			t.Errorf("parseDotEnvLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, key, value, ok, tt.key, tt.want, tt.ok)
		}
	}
}

func TestLoadDotEnvSetsVariables(t *testing.T) {
	path := writeTempEnv(t, "# data dir\nTEST_DOTENV_A=hello\n\nTEST_DOTENV_B=world\n")
	unset(t, "TEST_DOTENV_A")
	unset(t, "TEST_DOTENV_B")

	loadDotEnv(path)

	if got := os.Getenv("TEST_DOTENV_A"); got != "hello" {
		t.Errorf("expected TEST_DOTENV_A=hello, got %q", got)
	}
	if got := os.Getenv("TEST_DOTENV_B"); got != "world" {
		t.Errorf("expected TEST_DOTENV_B=world, got %q", got)
	}
}

func TestLoadDotEnvDoesNotClobberExisting(t *testing.T) {
	path := writeTempEnv(t, "TEST_DOTENV_X=from_file")
	t.Setenv("TEST_DOTENV_X", "already_set")

	loadDotEnv(path)

	if got := os.Getenv("TEST_DOTENV_X"); got != "already_set" {
		t.Errorf("expected existing env var to be preserved, got %q", got)
	}
}

func TestLoadDotEnvMissingFileIsNoOp(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDotEnvAutoLoadsConfigDir(t *testing.T) {
	configDir := t.TempDir()
	progressDir := filepath.Join(configDir, "progress")
	if err := os.MkdirAll(progressDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(progressDir, "config.env"), []byte("TEST_XDG_AUTO_LOAD=from_xdg\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("XDG_CONFIG_HOME", configDir)
	unset(t, "TEST_XDG_AUTO_LOAD")

	loadDotEnvAuto()

	if got := os.Getenv("TEST_XDG_AUTO_LOAD"); got != "from_xdg" {
		t.Errorf("expected TEST_XDG_AUTO_LOAD=from_xdg, got %q", got)
	}
}

func TestLoadDotEnvAutoPrefersWorkingDirectory(t *testing.T) {
	wd := t.TempDir()
	if err := os.WriteFile(filepath.Join(wd, ".env"), []byte("TEST_DOTENV_PRI=cwd\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	configDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(configDir, "progress"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "progress", "config.env"), []byte("TEST_DOTENV_PRI=config\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", configDir)
	unset(t, "TEST_DOTENV_PRI")
	t.Chdir(wd)

	loadDotEnvAuto()

	if got := os.Getenv("TEST_DOTENV_PRI"); got != "cwd" {
		t.Errorf("TEST_DOTENV_PRI = %q, want cwd", got)
	}
}
