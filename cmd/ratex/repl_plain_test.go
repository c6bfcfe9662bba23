package main

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

type fakeHistory struct {
	lines string
}

func (f fakeHistory) WriteHistory(w io.Writer) (int, error) {
	return io.WriteString(w, f.lines)
}

func TestWatchSignalsReturnsWhenDone(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	finished := make(chan struct{})
	called := false
	go func() {
		watchSignals(sigc, done, func() { called = true })
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not return after done was closed")
	}
	if called {
		t.Fatalf("signal handler ran without a signal")
	}
}

func TestWatchSignalsRunsHandlerOnSignal(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	defer close(done)
	handled := make(chan struct{})

	sigc <- syscall.SIGTERM
	go watchSignals(sigc, done, func() { close(handled) })

	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatalf("signal handler did not run")
	}
}

func TestSaveHistoryWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	saveHistory(fakeHistory{lines: "print 1;\nprint 2;\n"}, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if string(data) != "print 1;\nprint 2;\n" {
		t.Fatalf("unexpected history contents: %q", data)
	}

	saveHistory(fakeHistory{lines: "ignored"}, "")
}

func TestResolveHistoryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := resolveHistoryPath(".ratex_history"); got != filepath.Join(home, ".ratex_history") {
		t.Fatalf("unexpected relative history path: %q", got)
	}
	abs := filepath.Join(t.TempDir(), "hist")
	if got := resolveHistoryPath(abs); got != abs {
		t.Fatalf("absolute path changed: %q", got)
	}
	if got := resolveHistoryPath(""); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}
