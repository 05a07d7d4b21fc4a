/*
File    : gomixscript/cmd/gomixscript/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for gomixscript. It provides two modes of
operation:
1. REPL Mode (default): interactive Read-Eval-Print Loop
2. File Mode: compile and run a gomixscript source file

Source runs through the full lexer -> parser -> semantic analyser ->
compiler -> VM pipeline.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/akashmaji946/gomixscript/compiler"
	"github.com/akashmaji946/gomixscript/logger"
	"github.com/akashmaji946/gomixscript/parser"
	"github.com/akashmaji946/gomixscript/repl"
	"github.com/akashmaji946/gomixscript/symtable"
	"github.com/akashmaji946/gomixscript/vm"
)

// MODE defines the default operating mode: interactive REPL.
var MODE = "repl"

// VERSION is the current version of the interpreter.
var VERSION = "v1.0.0"

// AUTHOR is the contact information of the interpreter's author.
var AUTHOR = "akashmaji(@iisc.ac.in)"

// LICENCE is the software license.
var LICENCE = "MIT"

// PROMPT is the command prompt shown in REPL mode.
var PROMPT = "gomixscript >>> "

// BANNER is the ASCII art logo shown when the REPL starts.
var BANNER = `
   ___  ___  __  __ _____  __ _____  ___ ____  _____ _____
  / _ \/ _ \|  \/  /_ _\ \/ /|_   _|/ __|  _ \|_ _| _ \_   _|
 | (_) | (_) | |\/| || | >  <   | |  \__ \ (_) || ||  _/ | |
  \___/\___/|_|  |_|___/_/\_\  |_|  |___/\___/___|_|  |_|
`

// LINE is a separator used for visual formatting.
var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// Usage:
//
//	gomixscript                  - start REPL mode
//	gomixscript <file>           - run a gomixscript source file
//	gomixscript --help           - show help
//	gomixscript --version        - show version
//
// Both the REPL and file modes accept -debug (attach an opcode trace
// logger) and -log-file <path> (write that trace to a file instead of
// stdout). -log-file has no effect without -debug; diagnostics always go
// to stderr.
func main() {
	args := os.Args[1:]

	debugMode := false
	logFile := ""
	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-debug":
			debugMode = true
		case "-log-file":
			if i+1 >= len(args) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] -log-file requires a path\n")
				os.Exit(1)
			}
			i++
			logFile = args[i]
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) > 0 {
		switch positional[0] {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		}
		runFile(positional[0], debugMode, logFile)
		return
	}

	repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
	if dbg := newDebugLogger(debugMode, logFile); dbg != nil {
		repler.Debug = dbg
	}
	repler.Start(os.Stdin, os.Stdout)
}

func newDebugLogger(debugMode bool, logFile string) *logger.Logger {
	if !debugMode {
		return nil
	}
	l := logger.New(logger.LevelDebug)
	if logFile != "" {
		if err := l.SetOutput(logger.SinkFile, logFile); err != nil {
			redColor.Fprintf(os.Stderr, "[LOGGER ERROR] %v\n", err)
		}
	}
	return l
}

func showHelp() {
	cyanColor.Println("gomixscript - a compiled Lox-family scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  gomixscript                    Start interactive REPL mode")
	yellowColor.Println("  gomixscript <path-to-file>     Compile and run a gomixscript file")
	yellowColor.Println("  gomixscript -debug             Attach an opcode-by-opcode trace")
	yellowColor.Println("  gomixscript -log-file <path>   Write the -debug trace to a file")
	yellowColor.Println("  gomixscript --help             Display this help message")
	yellowColor.Println("  gomixscript --version          Display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  .exit                          Exit the REPL")
}

func showVersion() {
	cyanColor.Println("gomixscript")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// runFile reads, compiles and runs a gomixscript source file, exiting
// with a non-zero status on any diagnostic.
func runFile(fileName string, debugMode bool, logFile string) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] Could not read file '%s': %v\n", fileName, err)
		os.Exit(1)
	}
	if err := execute(string(source), os.Stdout, debugMode, logFile); err != nil {
		os.Exit(1)
	}
}

// execute runs the full pipeline once over source, writing PRINT output
// to out and any diagnostic to stderr. Returns a non-nil error if any
// stage failed.
func execute(source string, out *os.File, debugMode bool, logFile string) error {
	p := parser.New(source)
	prog, err := p.GenerateAST()
	if err != nil {
		for _, e := range p.Errors() {
			redColor.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		return err
	}

	errs := symtable.NewSemanticAnalyser().Analyse(prog)
	if len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(os.Stderr, "[SEMANTIC ERROR] %s\n", e)
		}
		return fmt.Errorf("semantic errors")
	}

	c, err := compiler.Compile(prog)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[COMPILE ERROR] %v\n", err)
		return err
	}

	machine := vm.New(c)
	machine.SetOutput(out)
	if dbg := newDebugLogger(debugMode, logFile); dbg != nil {
		machine.SetDebug(dbg)
	}
	if err := machine.Interpret(); err != nil {
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", err)
		return err
	}
	return nil
}
