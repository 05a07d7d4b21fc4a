/*
File    : gomixscript/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the Read-Eval-Print Loop for gomixscript. Each
line is lexed, parsed, semantically checked, compiled, and run against a
single long-lived VM and SemanticAnalyser, so a variable or function
declared on one line stays visible on the next. The REPL uses the
readline library for line editing and history, and colorizes its output
the same way the original go-mix REPL did.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/gomixscript/compiler"
	"github.com/akashmaji946/gomixscript/logger"
	"github.com/akashmaji946/gomixscript/parser"
	"github.com/akashmaji946/gomixscript/symtable"
	"github.com/akashmaji946/gomixscript/vm"
)

// Color definitions for REPL output
// - blueColor: decorative lines and separators
// - yellowColor: version line in the banner
// - redColor: error messages
// - greenColor: banner
// - cyanColor: informational messages
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the configuration needed to run an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	Debug *logger.Logger // attached to the VM when non-nil
}

// NewRepl creates a new REPL instance with the given banner and framing.
func NewRepl(banner string, version string, author string, line string, license string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | Licence: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to gomixscript!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// session holds the state that persists across REPL lines: the global
// symbol table (as a single long-lived analyser) and the VM the globals
// live in.
type session struct {
	analyser  *symtable.SemanticAnalyser
	machine   *vm.VM
	seenAnErr int // number of semantic diagnostics already reported, so Analyse's growing slice isn't re-printed
}

// Start begins the REPL main loop, reading from rl-backed stdin and
// writing results to writer.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	sess := &session{
		analyser: symtable.NewSemanticAnalyser(),
		machine:  vm.New(nil),
	}
	sess.machine.SetOutput(writer)
	if r.Debug != nil {
		sess.machine.SetDebug(r.Debug)
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line, sess)
	}
}

// executeWithRecovery lexes, parses, checks, compiles and runs one line,
// printing diagnostics in red and leaving the REPL running on any error.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, sess *session) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	p := parser.New(line)
	prog, err := p.GenerateAST()
	if err != nil {
		for _, e := range p.Errors() {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}

	errs := sess.analyser.Analyse(prog)
	if len(errs) > sess.seenAnErr {
		for _, e := range errs[sess.seenAnErr:] {
			redColor.Fprintf(writer, "[SEMANTIC ERROR] %s\n", e)
		}
		sess.seenAnErr = len(errs)
		return
	}

	c, err := compiler.Compile(prog)
	if err != nil {
		redColor.Fprintf(writer, "[COMPILE ERROR] %v\n", err)
		return
	}

	sess.machine.LoadChunk(c)
	if err := sess.machine.Interpret(); err != nil {
		redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", err)
	}
}
