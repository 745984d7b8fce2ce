package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRunPrintsToStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.zs")
	if err := os.WriteFile(path, []byte(`print(1 + 2);`), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code, err := Run(path, nil, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run: %v, stderr: %s", err, stderr.String())
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got, want := stdout.String(), "3\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunWithConfigHonorsGCThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.zs")
	if err := os.WriteFile(path, []byte(`print("ok");`), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code, err := RunWithConfig(path, nil, &stdout, &stderr, Config{GCThreshold: 4096})
	if err != nil {
		t.Fatalf("RunWithConfig: %v, stderr: %s", err, stderr.String())
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got, want := stdout.String(), "ok\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
}

func TestRunReportsCompileErrorAndExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.zs")
	if err := os.WriteFile(path, []byte(`mut x = ;`), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code, err := Run(path, nil, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected an error for malformed source")
	}
	if code == 0 {
		t.Fatal("expected a non-zero exit code for malformed source")
	}
	if stderr.Len() == 0 {
		t.Fatal("expected a diagnostic written to stderr")
	}
}
