package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	pkgerrors "github.com/pkg/errors"

	lox "github.com/MegaThorx/lox-interpreter"
)

const (
	appName     = "lox"
	historyFile = ".lox_history"
	prompt      = "> "
)

// Exit statuses follow the usual sysexits split: data errors (lexical or
// syntax) exit 65, software errors at runtime exit 70.
const (
	exitUsage   = 2
	exitData    = 65
	exitRuntime = 70
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	cmd := os.Args[1]
	switch cmd {
	case "tokenize":
		os.Exit(cmdTokenize(os.Args[2:]))
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "evaluate":
		os.Exit(cmdEvaluate(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(lox.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(exitUsage)
	}
}

func usage() {
	fmt.Printf(`Lox %s

Usage:
  %s tokenize <file.lox>    Print the token stream.
  %s parse <file.lox>       Parse a single expression and print its AST.
  %s evaluate <file.lox>    Evaluate a single expression and print the result.
  %s run <file.lox>         Run a program.
  %s repl                   Start the REPL.
  %s version                Print the version.

`, lox.Version, appName, appName, appName, appName, appName, appName)
}

// readSource loads one source file named as the sole argument.
func readSource(mode string, args []string) (string, bool) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s %s <file.lox>\n", appName, mode)
		return "", false
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, pkgerrors.Wrapf(err, "%s: cannot read %s", appName, args[0]))
		return "", false
	}
	return string(src), true
}

func cmdTokenize(args []string) int {
	src, ok := readSource("tokenize", args)
	if !ok {
		return exitUsage
	}

	tokens, lexErrs := lox.NewScanner(src).ScanTokens()
	for _, e := range lexErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	for _, t := range tokens {
		fmt.Println(t)
	}
	if len(lexErrs) > 0 {
		return exitData
	}
	return 0
}

func cmdParse(args []string) int {
	src, ok := readSource("parse", args)
	if !ok {
		return exitUsage
	}

	tokens, lexErrs := lox.NewScanner(src).ScanTokens()
	for _, e := range lexErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(lexErrs) > 0 {
		return exitData
	}

	expr, err := lox.NewParser(tokens).ParseExpression()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitData
	}
	fmt.Println(expr)
	return 0
}

func cmdEvaluate(args []string) int {
	src, ok := readSource("evaluate", args)
	if !ok {
		return exitUsage
	}

	tokens, lexErrs := lox.NewScanner(src).ScanTokens()
	for _, e := range lexErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(lexErrs) > 0 {
		return exitData
	}

	expr, err := lox.NewParser(tokens).ParseExpression()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitData
	}

	ip := lox.NewInterpreter(func(string) {})
	result, err := ip.Evaluate(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	fmt.Println(result)
	return 0
}

func cmdRun(args []string) int {
	src, ok := readSource("run", args)
	if !ok {
		return exitUsage
	}

	tokens, lexErrs := lox.NewScanner(src).ScanTokens()
	for _, e := range lexErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(lexErrs) > 0 {
		return exitData
	}

	statements, err := lox.NewParser(tokens).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitData
	}

	ip := lox.NewInterpreter(func(line string) { fmt.Println(line) })
	if err := ip.Run(statements); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRuntime
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Printf("Lox %s REPL\nCtrl+D exits. Type :quit to exit.\n", lox.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lox.NewInterpreter(func(line string) { fmt.Println(line) })

	for {
		code, err := ln.Prompt(prompt)
		if err == io.EOF {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		if strings.TrimSpace(code) == ":quit" {
			return 0
		}

		ln.AppendHistory(code)
		replEval(ip, code)
	}
}

// replEval runs one REPL input: statements execute against the persistent
// interpreter; inputs that only parse as a bare expression are evaluated and
// their value printed.
func replEval(ip *lox.Interpreter, code string) {
	tokens, lexErrs := lox.NewScanner(code).ScanTokens()
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return
	}

	statements, perr := lox.NewParser(tokens).Parse()
	if perr == nil {
		if err := ip.Run(statements); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}

	expr, eerr := lox.NewParser(tokens).ParseExpression()
	if eerr != nil {
		fmt.Fprintln(os.Stderr, perr)
		return
	}
	v, err := ip.Evaluate(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(v)
}
