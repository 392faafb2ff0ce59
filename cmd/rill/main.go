package main

import (
	"flag"
	"fmt"
	"os"

	"rill/rill"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, rill.RenderError(err))
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		printUsage()
		return fmt.Errorf("rill: script path required")
	}
	switch args[1] {
	case "help", "-h", "--help", "-help":
		printUsage()
		return nil
	}

	fs := flag.NewFlagSet("rill", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	verbose := fs.Bool("verbose", false, "print token and AST dumps before execution")
	if err := fs.Parse(args[1:]); err != nil {
		printUsage()
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage()
		return fmt.Errorf("rill: script path required")
	}

	return runScript(remaining[0], *verbose)
}

func runScript(path string, verbose bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	tokens, err := rill.Tokenize(string(src))
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	if verbose {
		fmt.Fprint(os.Stderr, rill.DumpTokens(tokens))
	}

	root, err := rill.Parse(tokens)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if verbose {
		fmt.Fprint(os.Stderr, rill.DumpAST(root))
	}

	pathDirs := rill.SplitPath(os.Getenv("PATH"))
	interp := rill.NewInterpreter(root, os.Stdout, pathDirs)
	if err := interp.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
