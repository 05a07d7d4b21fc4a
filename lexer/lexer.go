/*
File    : gomixscript/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package lexer scans gomixscript source text into a sequence of tokens.
//
// The Lexer never reports failure through an error return: a character
// sequence it cannot recognize, or a string literal that never closes,
// becomes an ERROR token whose Lexeme carries a human-readable message.
// The parser decides how to react to an ERROR token. Source lines are
// counted from 0, consistently through the lexer, parser diagnostics, and
// debug dumps.
package lexer

import "github.com/akashmaji946/gomixscript/token"

// Lexer holds the scanning state over a single source buffer.
type Lexer struct {
	src        string
	startIndex int
	curIndex   int
	curLine    int
}

// New constructs a Lexer over src. The source must outlive every Token
// produced, since each Token's Lexeme is a slice into src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// ReadNextToken advances past whitespace and comments, scans one lexeme,
// and returns it. Once the source is exhausted, every subsequent call
// returns an END token.
func (l *Lexer) ReadNextToken() token.Token {
	l.skipWhitespace()
	l.startIndex = l.curIndex

	if l.isAtEnd() {
		return l.makeToken(token.END)
	}

	c := l.advance()

	if isDigit(c) {
		return l.readNumber()
	}
	if isAlpha(c) {
		return l.readIdentifier()
	}

	switch c {
	case '(':
		return l.makeToken(token.LEFT_PAREN)
	case ')':
		return l.makeToken(token.RIGHT_PAREN)
	case '{':
		return l.makeToken(token.LEFT_BRACE)
	case '}':
		return l.makeToken(token.RIGHT_BRACE)
	case ',':
		return l.makeToken(token.COMMA)
	case '.':
		return l.makeToken(token.DOT)
	case '-':
		return l.makeToken(token.MINUS)
	case '+':
		return l.makeToken(token.PLUS)
	case ';':
		return l.makeToken(token.SEMICOLON)
	case '/':
		return l.makeToken(token.SLASH)
	case '*':
		return l.makeToken(token.STAR)
	case '!':
		if l.match('=') {
			return l.makeToken(token.BANG_EQUAL)
		}
		return l.makeToken(token.BANG)
	case '=':
		if l.match('=') {
			return l.makeToken(token.EQUAL_EQUAL)
		}
		return l.makeToken(token.EQUAL)
	case '>':
		if l.match('=') {
			return l.makeToken(token.GREATER_EQUAL)
		}
		return l.makeToken(token.GREATER)
	case '<':
		if l.match('=') {
			return l.makeToken(token.LESS_EQUAL)
		}
		return l.makeToken(token.LESS)
	case '"':
		return l.readString()
	default:
		return l.makeErrorToken("Invalid Character")
	}
}

// Tokenize runs the lexer to completion, returning every token including
// the terminal END, in the form debug.PrintTokens accepts. The parser does
// not use it: it pulls tokens one at a time through ReadNextToken.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.ReadNextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.END {
			break
		}
	}
	return tokens
}

func (l *Lexer) advance() byte {
	c := l.src[l.curIndex]
	l.curIndex++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.curIndex] != expected {
		return false
	}
	l.curIndex++
	return true
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.curIndex]
}

func (l *Lexer) peekNext() byte {
	if l.curIndex+1 >= len(l.src) {
		return 0
	}
	return l.src[l.curIndex+1]
}

func (l *Lexer) isAtEnd() bool {
	return l.curIndex >= len(l.src)
}

func (l *Lexer) makeToken(kind token.Kind) token.Token {
	return token.New(kind, l.src[l.startIndex:l.curIndex], l.curLine)
}

func (l *Lexer) makeErrorToken(msg string) token.Token {
	return token.New(token.ERROR, msg, l.curLine)
}

// skipWhitespace consumes spaces, tabs, carriage returns, newlines (bumping
// the line counter), and // line comments.
func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.advance()
			l.curLine++
		case '/':
			if l.peekNext() == '/' {
				for l.peek() != '\n' && !l.isAtEnd() {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// readString scans a string literal. The opening and closing quotes are
// included in the token's Lexeme. Embedded newlines are allowed; the line
// counter is bumped only after the token is produced, so the token's own
// Line reflects the line it started on.
func (l *Lexer) readString() token.Token {
	endingLine := l.curLine
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			endingLine++
		}
		l.advance()
	}

	if l.isAtEnd() {
		tok := l.makeErrorToken("Unterminated String")
		l.curLine = endingLine
		return tok
	}

	l.advance() // consume closing quote
	tok := l.makeToken(token.STRING)
	l.curLine = endingLine
	return tok
}

// readNumber scans digits, optionally one '.' followed by more digits. No
// leading sign, no exponent.
func (l *Lexer) readNumber() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.makeToken(token.NUMBER)
}

// readIdentifier scans [A-Za-z_][A-Za-z0-9_]* and retags the token with its
// keyword kind if the lexeme is reserved.
func (l *Lexer) readIdentifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	tok := l.makeToken(token.IDENTIFIER)
	if kind, ok := token.LookupKeyword(tok.Lexeme); ok {
		tok.Kind = kind
	}
	return tok
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
