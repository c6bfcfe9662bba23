package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeScriptFile(t, "fun run() {  \n  print 1;\t \n}")
	_, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-check", path})
	})
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeScriptFile(t, "fun run() {  \r\n  print 1;\t \r\n}\n\n\n")
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != "fun run() {\n  print 1;\n}\n" {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeScriptFile(t, "print 1;  ")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != "print 1;\n" {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandReindentsBlocks(t *testing.T) {
	path := writeScriptFile(t, "while (true) {\nif (false) {\n        print 1;\n}\n  break;\n}\n")
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	want := "while (true) {\n  if (false) {\n    print 1;\n  }\n  break;\n}\n"
	if got := string(updated); got != want {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandLeavesUnparsableFilesUntouched(t *testing.T) {
	source := "fun broken( {  \n print 1;\n"
	broken := writeScriptFile(t, source)
	good := filepath.Join(filepath.Dir(broken), "good.ratex")
	if err := os.WriteFile(good, []byte("{\nprint 1;\n}"), 0o644); err != nil {
		t.Fatalf("write good: %v", err)
	}

	err := fmtCommand([]string{"-w", filepath.Dir(broken)})
	if err == nil {
		t.Fatalf("expected parse failure")
	}
	if !strings.Contains(err.Error(), "1 file(s) failed to parse") {
		t.Fatalf("unexpected error: %v", err)
	}

	unchanged, err := os.ReadFile(broken)
	if err != nil {
		t.Fatalf("read broken file: %v", err)
	}
	if string(unchanged) != source {
		t.Fatalf("unparsable file was rewritten: %q", unchanged)
	}
	formatted, err := os.ReadFile(good)
	if err != nil {
		t.Fatalf("read good file: %v", err)
	}
	if string(formatted) != "{\n  print 1;\n}\n" {
		t.Fatalf("expected parsable file to be formatted, got %q", formatted)
	}
}

func TestCollectScriptFilesWalksDirectoriesAndDedupes(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "nested")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	first := filepath.Join(root, "b.ratex")
	second := filepath.Join(nested, "a.ratex")
	for _, path := range []string{first, second, filepath.Join(root, "notes.txt")} {
		if err := os.WriteFile(path, []byte("print 1;\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	files, err := collectScriptFiles([]string{root, first})
	if err != nil {
		t.Fatalf("collectScriptFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if files[0] != first || files[1] != second {
		t.Fatalf("unexpected file order: %v", files)
	}
}

func TestCollectScriptFilesMissingPath(t *testing.T) {
	_, err := collectScriptFiles([]string{filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatalf("expected stat error")
	}
}

func writeScriptFile(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "format.ratex")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}
