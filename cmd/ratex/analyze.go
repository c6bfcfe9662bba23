package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mgomes/ratex/ratex"
)

type lintWarning struct {
	Function string
	Pos      ratex.Position
	Message  string
}

const topLevelScope = "<script>"

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("ratex analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	program, err := ratex.Parse(string(input))
	if err != nil {
		return fmt.Errorf("analysis parse failed: %w", err)
	}

	warnings := analyzeProgramWarnings(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := max(warning.Pos.Line, 1)
		column := max(warning.Pos.Column, 1)
		fmt.Printf("%s:%d:%d: %s (%s)\n", scriptPath, line, column, warning.Message, warning.Function)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

func analyzeProgramWarnings(program *ratex.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintProgram(program.Statements, &warnings)

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Function < warnings[j].Function
	})

	return warnings
}

// termination describes how control leaves a statement when it always
// leaves early.
type termination int

const (
	fallsThrough termination = iota
	exitsLoop
	exitsFunction
)

func combineTerminations(a, b termination) termination {
	if a == fallsThrough || b == fallsThrough {
		return fallsThrough
	}
	return min(a, b)
}

// lintStatements reports statements that follow a return or break in the
// same list. Statements positioned before the terminator are loop
// increments moved there by for-loop desugaring and are not reported.
func lintStatements(function string, statements []ratex.Statement, warnings *[]lintWarning) termination {
	result := fallsThrough
	var terminator ratex.Position
	for _, stmt := range statements {
		if result != fallsThrough {
			if positionBefore(stmt.Pos(), terminator) {
				continue
			}
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      stmt.Pos(),
				Message:  "unreachable statement",
			})
			continue
		}
		if result = statementTerminates(function, stmt, warnings); result != fallsThrough {
			terminator = stmt.Pos()
		}
	}
	return result
}

// lintProgram lints top-level statements. A break that escapes to the top
// level ends only its own statement, so it does not cut off what follows.
func lintProgram(statements []ratex.Statement, warnings *[]lintWarning) {
	for _, stmt := range statements {
		statementTerminates(topLevelScope, stmt, warnings)
	}
}

func statementTerminates(function string, stmt ratex.Statement, warnings *[]lintWarning) termination {
	switch typed := stmt.(type) {
	case *ratex.ReturnStmt:
		return exitsFunction
	case *ratex.BreakStmt:
		return exitsLoop
	case *ratex.BlockStmt:
		return lintStatements(function, typed.Statements, warnings)
	case *ratex.IfStmt:
		return ifStatementTerminates(function, typed, warnings)
	case *ratex.WhileStmt:
		statementTerminates(function, typed.Body, warnings)
		return fallsThrough
	case *ratex.FunctionStmt:
		lintStatements(typed.Decl.Name, typed.Decl.Body, warnings)
		return fallsThrough
	case *ratex.ClassStmt:
		for _, method := range typed.Methods {
			lintStatements(typed.Name+"."+method.Decl.Name, method.Decl.Body, warnings)
		}
		return fallsThrough
	default:
		return fallsThrough
	}
}

func ifStatementTerminates(function string, stmt *ratex.IfStmt, warnings *[]lintWarning) termination {
	thenResult := statementTerminates(function, stmt.Then, warnings)
	if stmt.Else == nil {
		return fallsThrough
	}
	elseResult := statementTerminates(function, stmt.Else, warnings)
	return combineTerminations(thenResult, elseResult)
}

func positionBefore(a, b ratex.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}
