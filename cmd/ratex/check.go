package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/mgomes/ratex/ratex"
	"golang.org/x/sync/errgroup"
)

// checkCommand parses and resolves every script concurrently. Diagnostics
// are printed in path order once all files are done.
func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("ratex check: path required")
	}
	files, err := collectScriptFiles(targets)
	if err != nil {
		return err
	}

	diagnostics, err := checkFiles(context.Background(), files)
	if err != nil {
		return err
	}

	failed := 0
	for i, path := range files {
		if diagnostics[i] == nil {
			continue
		}
		failed++
		fmt.Printf("%s: %v\n", path, diagnostics[i])
	}
	if failed > 0 {
		return fmt.Errorf("ratex check: %d of %d file(s) failed", failed, len(files))
	}
	fmt.Printf("%d file(s) ok\n", len(files))
	return nil
}

// checkFiles returns one diagnostic per file, nil for files that pass. Only
// I/O failures abort the run.
func checkFiles(ctx context.Context, files []string) ([]error, error) {
	diagnostics := make([]error, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			diagnostics[i] = ratex.Check(string(source))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return diagnostics, nil
}
