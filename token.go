// token.go — token kinds and the lexical token carrier.
package lox

import (
	"fmt"
	"math"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Single-character tokens
	LPAREN TokenType = iota // "("
	RPAREN                  // ")"
	LBRACE                  // "{"
	RBRACE                  // "}"
	COMMA
	DOT
	SEMICOLON
	MINUS
	PLUS
	STAR
	SLASH

	// One or two character tokens
	ASSIGN     // "="
	EQ         // "=="
	BANG       // "!"
	NEQ        // "!="
	LESS       // "<"
	LESS_EQ    // "<="
	GREATER    // ">"
	GREATER_EQ // ">="

	// Literals & identifiers
	ID
	STRING
	NUMBER

	// Keywords
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE

	EOF
)

// tokenNames holds the wire names used by the tokenize command
// ("{KIND} {lexeme} {literal}").
var tokenNames = map[TokenType]string{
	LPAREN:     "LEFT_PAREN",
	RPAREN:     "RIGHT_PAREN",
	LBRACE:     "LEFT_BRACE",
	RBRACE:     "RIGHT_BRACE",
	COMMA:      "COMMA",
	DOT:        "DOT",
	SEMICOLON:  "SEMICOLON",
	MINUS:      "MINUS",
	PLUS:       "PLUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	ASSIGN:     "EQUAL",
	EQ:         "EQUAL_EQUAL",
	BANG:       "BANG",
	NEQ:        "BANG_EQUAL",
	LESS:       "LESS",
	LESS_EQ:    "LESS_EQUAL",
	GREATER:    "GREATER",
	GREATER_EQ: "GREATER_EQUAL",
	ID:         "IDENTIFIER",
	STRING:     "STRING",
	NUMBER:     "NUMBER",
	AND:        "AND",
	CLASS:      "CLASS",
	ELSE:       "ELSE",
	FALSE:      "FALSE",
	FOR:        "FOR",
	FUN:        "FUN",
	IF:         "IF",
	NIL:        "NIL",
	OR:         "OR",
	PRINT:      "PRINT",
	RETURN:     "RETURN",
	SUPER:      "SUPER",
	THIS:       "THIS",
	TRUE:       "TRUE",
	VAR:        "VAR",
	WHILE:      "WHILE",
	EOF:        "EOF",
}

func (tt TokenType) String() string { return tokenNames[tt] }

// keywords map
var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// Token is a lexical token with optional literal value. Start and End are byte
// offsets into the source; Lexeme is always the slice src[Start:End]. Tokens
// are immutable once produced.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // string for STRING, float64 for NUMBER, nil otherwise
	Line    int         // 1-based
	Start   int
	End     int
}

// String renders the token in the tokenize-mode wire format:
// "{KIND} {lexeme} {literal-or-null}".
func (t Token) String() string {
	value := "null"
	switch t.Type {
	case STRING:
		value = t.Literal.(string)
	case NUMBER:
		value = formatNumberLiteral(t.Literal.(float64))
	}
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, value)
}

// formatNumberLiteral renders a number the way literals print in token and
// AST output: integral values keep one decimal digit ("123.0"), everything
// else uses the shortest decimal form.
func formatNumberLiteral(f float64) string {
	if math.Trunc(f) == f && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatNumberValue renders a number the way runtime values print: integral
// values drop the decimal point entirely ("123"), everything else uses the
// shortest decimal form.
func formatNumberValue(f float64) string {
	if math.Trunc(f) == f && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
