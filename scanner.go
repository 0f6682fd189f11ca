// scanner.go — single-pass scanner producing tokens plus accumulated
// lexical errors.
//
// Lexical errors are recoverable: the scanner records a message, skips the
// offending input and keeps going, so one bad character does not hide the
// rest of the file. The EOF token is appended unconditionally. Error strings
// follow the fixed wire format "[line L] Error: ..." and must not be reworded.
package lox

import (
	"fmt"
	"strconv"
)

// Scanner scans a Lox source string into tokens.
type Scanner struct {
	src     string
	start   int // start index of current token
	current int // current index
	line    int // 1-based
	tokens  []Token
	errs    []string
}

// NewScanner creates a new scanner for the given source.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// ScanTokens tokenizes the entire source. It returns the token stream (EOF
// included, always last) and the lexical errors found along the way.
func (s *Scanner) ScanTokens() ([]Token, []string) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.start = s.current
	s.addToken(EOF, nil)
	return s.tokens, s.errs
}

func (s *Scanner) isAtEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	ch := s.src[s.current]
	s.current++
	return ch
}

func (s *Scanner) peek() (byte, bool) {
	if s.isAtEnd() {
		return 0, false
	}
	return s.src[s.current], true
}

// match consumes the next byte iff it equals want.
func (s *Scanner) match(want byte) bool {
	if b, ok := s.peek(); ok && b == want {
		s.current++
		return true
	}
	return false
}

func (s *Scanner) addToken(tt TokenType, lit interface{}) {
	s.addTokenAtLine(tt, lit, s.line)
}

func (s *Scanner) addTokenAtLine(tt TokenType, lit interface{}, line int) {
	s.tokens = append(s.tokens, Token{
		Type:    tt,
		Lexeme:  s.src[s.start:s.current],
		Literal: lit,
		Line:    line,
		Start:   s.start,
		End:     s.current,
	})
}

func (s *Scanner) errorf(format string, args ...interface{}) {
	s.errs = append(s.errs, fmt.Sprintf(format, args...))
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

func (s *Scanner) scanToken() {
	ch := s.advance()

	switch ch {
	case ' ', '\r', '\t':
		return
	case '\n':
		s.line++
		return
	case '(':
		s.addToken(LPAREN, nil)
	case ')':
		s.addToken(RPAREN, nil)
	case '{':
		s.addToken(LBRACE, nil)
	case '}':
		s.addToken(RBRACE, nil)
	case ',':
		s.addToken(COMMA, nil)
	case '.':
		s.addToken(DOT, nil)
	case ';':
		s.addToken(SEMICOLON, nil)
	case '-':
		s.addToken(MINUS, nil)
	case '+':
		s.addToken(PLUS, nil)
	case '*':
		s.addToken(STAR, nil)
	case '=':
		if s.match('=') {
			s.addToken(EQ, nil)
		} else {
			s.addToken(ASSIGN, nil)
		}
	case '!':
		if s.match('=') {
			s.addToken(NEQ, nil)
		} else {
			s.addToken(BANG, nil)
		}
	case '<':
		if s.match('=') {
			s.addToken(LESS_EQ, nil)
		} else {
			s.addToken(LESS, nil)
		}
	case '>':
		if s.match('=') {
			s.addToken(GREATER_EQ, nil)
		} else {
			s.addToken(GREATER, nil)
		}
	case '/':
		if s.match('/') {
			// Line comment: consume through the newline.
			for !s.isAtEnd() {
				if s.advance() == '\n' {
					s.line++
					break
				}
			}
		} else {
			s.addToken(SLASH, nil)
		}
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentifier()
		default:
			s.errorf("[line %d] Error: Unexpected character: %c", s.line, ch)
		}
	}
}

// scanString consumes a double-quoted string literal. Embedded newlines are
// preserved and bump the line counter; the emitted token keeps the line of
// the opening quote. Hitting EOF first records one error and emits nothing.
func (s *Scanner) scanString() {
	lineStart := s.line
	for !s.isAtEnd() {
		ch := s.advance()
		if ch == '"' {
			s.addTokenAtLine(STRING, s.src[s.start+1:s.current-1], lineStart)
			return
		}
		if ch == '\n' {
			s.line++
		}
	}
	s.errorf("[line %d] Error: Unterminated string.", s.line)
}

// scanNumber consumes digits with at most one embedded '.'; a second dot is
// left for the next token.
func (s *Scanner) scanNumber() {
	foundDot := false
	for {
		b, ok := s.peek()
		if !ok {
			break
		}
		if isDigit(b) {
			s.advance()
		} else if b == '.' && !foundDot {
			foundDot = true
			s.advance()
		} else {
			break
		}
	}
	value, _ := strconv.ParseFloat(s.src[s.start:s.current], 64)
	s.addToken(NUMBER, value)
}

func (s *Scanner) scanIdentifier() {
	for {
		b, ok := s.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		s.advance()
	}
	lex := s.src[s.start:s.current]
	if tt, ok := keywords[lex]; ok {
		s.addToken(tt, nil)
		return
	}
	s.addToken(ID, nil)
}
