package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/mgomes/ratex/ratex"
)

const scriptExt = ".ratex"

type fmtMode int

const (
	fmtPrint fmtMode = iota
	fmtWrite
	fmtCheck
)

// fmtCommand re-indents scripts. Files that do not parse are reported and
// never rewritten.
func fmtCommand(args []string) error {
	flags := flag.NewFlagSet("fmt", flag.ContinueOnError)
	flags.SetOutput(new(flagErrorSink))
	write := flags.Bool("w", false, "write result to source files instead of stdout")
	check := flags.Bool("check", false, "fail if any source file needs formatting")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("ratex fmt: path required")
	}

	mode := fmtPrint
	switch {
	case *check:
		mode = fmtCheck
	case *write:
		mode = fmtWrite
	}

	files, err := collectScriptFiles(flags.Args())
	if err != nil {
		return err
	}

	var unformatted, broken int
	for _, path := range files {
		changed, err := formatFile(path, mode)
		if err != nil {
			var rerr *ratex.Error
			if !errors.As(err, &rerr) {
				return err
			}
			broken++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		if changed {
			unformatted++
		}
	}

	if broken > 0 {
		return fmt.Errorf("ratex fmt: %d file(s) failed to parse", broken)
	}
	if mode == fmtCheck && unformatted > 0 {
		return fmt.Errorf("ratex fmt: %d file(s) need formatting", unformatted)
	}
	return nil
}

// formatFile formats one script according to mode and reports whether its
// formatted text differs from what is on disk.
func formatFile(path string, mode fmtMode) (bool, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	formatted, err := ratex.Format(string(source))
	if err != nil {
		return false, err
	}
	changed := formatted != string(source)

	switch mode {
	case fmtPrint:
		fmt.Print(formatted)
	case fmtCheck:
		if changed {
			fmt.Println(path)
		}
	case fmtWrite:
		if !changed {
			return false, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return changed, nil
}

// collectScriptFiles returns the sorted absolute paths of the named files
// and of every script found under the named directories.
func collectScriptFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		err := filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			if path != target && filepath.Ext(path) != scriptExt {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			files = append(files, abs)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", target, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
