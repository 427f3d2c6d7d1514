package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTigerFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// captureStderr runs fn and returns everything it wrote to os.Stderr.
func captureStderr(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	runErr := fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunCompileValidProgramWritesOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeTigerFile(t, dir, "valid.tig", "1 + 2")

	output = ""
	emitIR = false
	verbose = false

	stderr, err := captureStderr(t, func() error {
		return runCompile(rootCmd, []string{src})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v, stderr: %s", err, stderr)
	}

	outPath := defaultOutputPath(src)
	ir, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file at %s: %v", outPath, err)
	}
	if !strings.Contains(string(ir), "define i64 @main()") {
		t.Fatalf("expected a main definition in output IR, got:\n%s", ir)
	}
}

func TestRunCompileEmitIRPrintsToStdout(t *testing.T) {
	dir := t.TempDir()
	src := writeTigerFile(t, dir, "valid.tig", "42")

	output = ""
	emitIR = true
	verbose = false
	defer func() { emitIR = false }()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runCompile(rootCmd, []string{src})

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "ret i64 42") {
		t.Fatalf("expected IR containing `ret i64 42` on stdout, got:\n%s", buf.String())
	}
}

func TestRunCompileReportsSemanticErrorOnStderr(t *testing.T) {
	dir := t.TempDir()
	src := writeTigerFile(t, dir, "bad.tig", `1 = "a"`)

	output = ""
	emitIR = false
	verbose = false

	stderr, err := captureStderr(t, func() error {
		return runCompile(rootCmd, []string{src})
	})
	if err == nil {
		t.Fatal("expected a non-nil error for a type-mismatched program")
	}
	if !strings.Contains(stderr, "row:") || !strings.Contains(stderr, "column:") {
		t.Fatalf("expected the wire-format diagnostic on stderr, got: %s", stderr)
	}
}

func TestRunCompileReportsParseErrorOnStderr(t *testing.T) {
	dir := t.TempDir()
	src := writeTigerFile(t, dir, "unparseable.tig", `let var x := in x end`)

	output = ""
	emitIR = false
	verbose = false

	stderr, err := captureStderr(t, func() error {
		return runCompile(rootCmd, []string{src})
	})
	if err == nil {
		t.Fatal("expected a non-nil error for an unparseable program")
	}
	if stderr == "" {
		t.Fatal("expected a diagnostic on stderr")
	}
}

func TestRunCompileMissingFileReturnsError(t *testing.T) {
	output = ""
	emitIR = false
	verbose = false

	err := runCompile(rootCmd, []string{"/no/such/file.tig"})
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestDefaultOutputPathReplacesExtension(t *testing.T) {
	if got := defaultOutputPath("foo/bar.tig"); got != "foo/bar.ll" {
		t.Fatalf("got %q, want %q", got, "foo/bar.ll")
	}
}

func TestVersionCommandPrintsBuildMetadata(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = "1.2.3", "abc123", "2026-07-30"
	defer func() { Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate }()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	versionCmd.Run(versionCmd, nil)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	got := buf.String()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc123") {
		t.Fatalf("expected version output to contain build metadata, got: %s", got)
	}
}
