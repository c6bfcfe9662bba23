package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/peterh/liner"
)

const continuationPrompt = "   ... "

// runPlainREPL reads lines with liner instead of the full-screen UI, for
// terminals and pipes where bubbletea is unwelcome.
func runPlainREPL(opts replOptions) error {
	s := newSession(opts.Interpreter)
	fmt.Println("ratex REPL (type :help for commands)")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		prefix, word := splitLastWord(line)
		matches := s.complete(word)
		for i, match := range matches {
			matches[i] = prefix + match
		}
		return matches
	})

	histPath := resolveHistoryPath(opts.HistoryFile)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	var saveOnce sync.Once
	save := func() {
		saveOnce.Do(func() { saveHistory(ln, histPath) })
	}
	defer save()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()
	go watchSignals(sigc, done, func() {
		save()
		_ = ln.Close()
		os.Exit(130)
	})

	for {
		code, ok := readByParseProbe(ln, s, opts.Prompt, continuationPrompt)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if handlePlainCommand(s, trimmed, os.Stdout) {
				return nil
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		out, err := s.eval(code)
		if out != "" {
			fmt.Println(out)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// readByParseProbe keeps prompting while the accumulated source parses as
// incomplete. It returns false once input is exhausted.
func readByParseProbe(ln *liner.State, s *session, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := ln.Prompt(current)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, incomplete, _ := s.prepare(src); incomplete {
			continue
		}
		return src, true
	}
}

// handlePlainCommand runs a colon command and reports whether the REPL
// should exit.
func handlePlainCommand(s *session, input string, w io.Writer) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		for _, cmd := range replCommands {
			fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.desc)
		}
	case ":vars", ":v":
		vars := s.vars()
		if len(vars) == 0 {
			fmt.Fprintln(w, "No variables defined")
		}
		for _, v := range vars {
			fmt.Fprintf(w, "  %s = %s\n", v.Name, v.Value)
		}
	case ":reset", ":r":
		s.reset()
		fmt.Fprintln(w, "Environment reset")
	case ":clear", ":c":
		fmt.Fprint(w, "\033[H\033[2J")
	default:
		fmt.Fprintf(w, "Unknown command: %s\n", fields[0])
	}
	return false
}

func splitLastWord(line string) (string, string) {
	idx := strings.LastIndexFunc(line, func(r rune) bool {
		return !isIdentRune(r)
	})
	return line[:idx+1], line[idx+1:]
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

type historyWriter interface {
	WriteHistory(w io.Writer) (int, error)
}

func saveHistory(h historyWriter, path string) {
	if path == "" {
		return
	}
	if f, err := os.Create(path); err == nil {
		_, _ = h.WriteHistory(f)
		_ = f.Close()
	}
}

// watchSignals runs onSignal for the first signal received before done is
// closed.
func watchSignals(sigc <-chan os.Signal, done <-chan struct{}, onSignal func()) {
	select {
	case <-sigc:
		onSignal()
	case <-done:
	}
}

// resolveHistoryPath places relative history files in the home directory.
func resolveHistoryPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path)
}
