package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgomes/ratex/ratex"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var common interpreterFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("ratex run: script path required")
	}

	cfg, logger, err := common.resolve(fs)
	if err != nil {
		return err
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	interpCfg := cfg.interpreterConfig(logger)
	interpCfg.Stdout = os.Stdout
	in := ratex.New(interpCfg)
	logger.Debug("running script", "path", scriptPath)
	if err := in.Run(string(input)); err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}
	return nil
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var common interpreterFlags
	common.register(fs)
	plain := fs.Bool("plain", false, "use a line-oriented prompt instead of the full-screen interface")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := common.resolve(fs)
	if err != nil {
		return err
	}
	opts := replOptions{
		Prompt:      cfg.REPL.Prompt,
		HistoryFile: cfg.REPL.HistoryFile,
		Interpreter: cfg.interpreterConfig(logger),
	}
	if *plain || cfg.REPL.Plain {
		return runPlainREPL(opts)
	}
	return runREPL(opts)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run <script>        execute a script")
	fmt.Fprintln(os.Stderr, "  check <paths...>    parse and resolve scripts without running them")
	fmt.Fprintln(os.Stderr, "  analyze <script>    report unreachable statements")
	fmt.Fprintln(os.Stderr, "  ast <script>        print the parsed syntax tree")
	fmt.Fprintln(os.Stderr, "  fmt <paths...>      normalize whitespace (-w to write, -check to verify)")
	fmt.Fprintln(os.Stderr, "  repl                start an interactive session (-plain for a line prompt)")
	fmt.Fprintln(os.Stderr, "Flags for run and repl:")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintf(os.Stderr, "    configuration file (default ./%s, then ~/%s)\n", configFileName, configFileName)
	fmt.Fprintln(os.Stderr, "  -log-level string")
	fmt.Fprintln(os.Stderr, "    debug, info, warn or error (default \"warn\")")
	fmt.Fprintln(os.Stderr, "  -recursion-limit int")
	fmt.Fprintln(os.Stderr, "    maximum call depth")
	fmt.Fprintln(os.Stderr, "  -strict")
	fmt.Fprintln(os.Stderr, "    fail on operators applied to unsupported operand kinds")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
