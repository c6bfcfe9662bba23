package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mgomes/ratex/ratex"
)

func astCommand(args []string) error {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("ratex ast: script path required")
	}
	input, err := os.ReadFile(remaining[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	program, err := ratex.Parse(string(input))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	for _, stmt := range program.Statements {
		fmt.Println(ratex.FormatStmt(stmt))
	}
	return nil
}
