/*
File    : gomixscript/parser/errors.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"fmt"
	"strings"
)

// ParseError is a single syntax or lexical diagnostic, carrying the source
// line it was reported at.
type ParseError struct {
	Message string
	Line    int
	Lexical bool // true if this came from an ERROR token rather than a grammar violation
}

// Error implements the error interface, formatting the diagnostic the way
// §6 of the spec requires: a prefix, then " at line: N", then the message.
func (e ParseError) Error() string {
	return fmt.Sprintf("%s at line: %d\n\t%s", e.prefix(), e.Line, e.Message)
}

func (e ParseError) prefix() string {
	if e.Lexical {
		return "[LEXING ERROR]"
	}
	return "[PARSING ERROR]"
}

// ParseErrors accumulates every diagnostic seen during one parse. Parsing
// never stops at the first error — panic-mode recovery resynchronizes at
// the next statement boundary and continues, per spec.md §4.2/§7.
type ParseErrors struct {
	errors []ParseError
}

// Add appends a new diagnostic.
func (p *ParseErrors) Add(e ParseError) {
	p.errors = append(p.errors, e)
}

// HasErrors reports whether any diagnostic was recorded.
func (p *ParseErrors) HasErrors() bool {
	return len(p.errors) > 0
}

// List returns every diagnostic recorded, in report order.
func (p *ParseErrors) List() []ParseError {
	return p.errors
}

// Error implements the error interface over the whole collection, so a
// ParseErrors can be returned directly as a single error value.
func (p *ParseErrors) Error() string {
	if len(p.errors) == 0 {
		return "no errors"
	}
	msgs := make([]string, len(p.errors))
	for i, e := range p.errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}
