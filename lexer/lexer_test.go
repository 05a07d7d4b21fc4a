/*
File    : gomixscript/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gomixscript/token"
)

func TestEmptySourceProducesOnlyEnd(t *testing.T) {
	tokens := New("").Tokenize()

	require.Len(t, tokens, 1)
	assert.Equal(t, token.END, tokens[0].Kind)
	assert.Equal(t, 0, tokens[0].Line)
}

func TestSingleCharacterTokens(t *testing.T) {
	tokens := New("(){},.-+;/*").Tokenize()

	expected := []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.SLASH, token.STAR, token.END,
	}
	require.Len(t, tokens, len(expected))
	for i, kind := range expected {
		assert.Equal(t, kind, tokens[i].Kind, "token %d", i)
	}
}

func TestTwoCharacterOperators(t *testing.T) {
	tokens := New(">= = => ! != == =").Tokenize()

	expected := []token.Kind{
		token.GREATER_EQUAL, token.EQUAL, token.EQUAL, token.GREATER,
		token.BANG, token.BANG_EQUAL, token.EQUAL_EQUAL, token.EQUAL, token.END,
	}
	require.Len(t, tokens, len(expected))
	for i, kind := range expected {
		assert.Equal(t, kind, tokens[i].Kind, "token %d", i)
	}
}

func TestIgnoresWhitespaceAndComments(t *testing.T) {
	tokens := New("  \n  +  \r\t -  //this is a comment\n / *").Tokenize()

	expected := []token.Kind{token.PLUS, token.MINUS, token.SLASH, token.STAR, token.END}
	require.Len(t, tokens, len(expected))
	for i, kind := range expected {
		assert.Equal(t, kind, tokens[i].Kind)
	}
	assert.Equal(t, 1, tokens[0].Line)
}

func TestKeywordsAreRetagged(t *testing.T) {
	tokens := New("and else false for fun if nil or print return true var while foo").Tokenize()

	expected := []token.Kind{
		token.AND, token.ELSE, token.FALSE, token.FOR, token.FUN, token.IF,
		token.NIL, token.OR, token.PRINT, token.RETURN, token.TRUE, token.VAR,
		token.WHILE, token.IDENTIFIER, token.END,
	}
	require.Len(t, tokens, len(expected))
	for i, kind := range expected {
		assert.Equal(t, kind, tokens[i].Kind, "token %d", i)
	}
}

func TestNumbers(t *testing.T) {
	tokens := New("56.433 4 54 34 . 45. 54.132 234234").Tokenize()

	require.Equal(t, token.NUMBER, tokens[0].Kind)
	assert.Equal(t, "56.433", tokens[0].Lexeme)
	require.Equal(t, token.NUMBER, tokens[5].Kind)
	assert.Equal(t, "45", tokens[5].Lexeme) // '.' not followed by digit is a separate DOT token
	assert.Equal(t, token.DOT, tokens[6].Kind)
}

func TestUnterminatedStringIsErrorToken(t *testing.T) {
	tokens := New(`"never closes`).Tokenize()

	require.Len(t, tokens, 2)
	assert.Equal(t, token.ERROR, tokens[0].Kind)
	assert.Equal(t, "Unterminated String", tokens[0].Lexeme)
}

func TestStringLexemeIncludesQuotes(t *testing.T) {
	tokens := New(`"hello"`).Tokenize()

	require.Equal(t, token.STRING, tokens[0].Kind)
	assert.Equal(t, `"hello"`, tokens[0].Lexeme)
}

func TestMultilineStringBumpsLineAfterToken(t *testing.T) {
	tokens := New("\"a\nb\" +").Tokenize()

	require.Equal(t, token.STRING, tokens[0].Kind)
	assert.Equal(t, 0, tokens[0].Line, "the string token itself reports its starting line")
	assert.Equal(t, token.PLUS, tokens[1].Kind)
	assert.Equal(t, 1, tokens[1].Line, "line count catches up to subsequent tokens")
}

func TestInvalidCharacterIsErrorToken(t *testing.T) {
	tokens := New("@").Tokenize()

	require.Equal(t, token.ERROR, tokens[0].Kind)
	assert.Equal(t, "Invalid Character", tokens[0].Lexeme)
}

func TestEndNeverPrecededByAnotherEnd(t *testing.T) {
	tokens := New("1 + 1;").Tokenize()

	for i, tok := range tokens {
		if tok.Kind == token.END {
			assert.Equal(t, len(tokens)-1, i, "END must be the final token")
		}
	}
}

func TestKeywordTableRoundTrip(t *testing.T) {
	for lexeme, kind := range map[string]token.Kind{
		"and": token.AND, "if": token.IF, "while": token.WHILE, "print": token.PRINT,
	} {
		got, ok := token.LookupKeyword(lexeme)
		require.True(t, ok)
		assert.Equal(t, kind, got)
	}
}
