package lexer

import "fmt"

// Error reports a character that matches no lexical rule.
type Error struct {
	Char   byte
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected character %q at %d:%d", e.Char, e.Line, e.Column)
}

// scan states. The scanner is a small explicit state machine: it searches
// for the start of the next token, then stays in a literal state until the
// first character that no longer belongs to the token.
type state int

const (
	stateSearching state = iota
	stateString
	stateNumber
	stateIdentifier
)

// Scanner performs lexical analysis on minilang source.
type Scanner struct {
	source []byte
	cursor int
	line   int
	column int

	state       state
	start       int // byte offset of the pending multi-character token
	startLine   int
	startColumn int

	tokens []Token
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Reset re-initializes the scanner with new source for reuse. The token
// slice from an earlier run is invalidated.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.column = 1
	s.state = stateSearching
	s.tokens = s.tokens[:0]
}

// Tokenize scans the whole source and returns the token sequence, terminated
// by exactly one EOF token. It stops at the first unrecognized character.
func Tokenize(source []byte) ([]Token, error) {
	return NewScanner(source).Tokenize()
}

// Tokenize runs the scan loop to completion. Tokens come out in strict
// input order; the EOF token carries the position reached after the last
// input character.
func (s *Scanner) Tokenize() ([]Token, error) {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]

		switch s.state {
		case stateSearching:
			if err := s.search(ch); err != nil {
				return nil, err
			}

		case stateIdentifier:
			if isAlpha(ch) {
				s.advance()
			} else {
				// Close the pending token and re-enter the search on the
				// same character: it is neither consumed twice nor skipped.
				text := string(s.source[s.start:s.cursor])
				s.emit(keywordKind(text), text)
				s.state = stateSearching
			}

		case stateNumber:
			if isDigit(ch) {
				s.advance()
			} else {
				s.emit(KindNumber, string(s.source[s.start:s.cursor]))
				s.state = stateSearching
			}

		case stateString:
			if ch == '"' {
				s.emit(KindString, string(s.source[s.start:s.cursor]))
				s.state = stateSearching
				s.advance() // closing quote
			} else {
				s.advance()
			}
		}
	}

	switch s.state {
	case stateIdentifier:
		text := string(s.source[s.start:])
		s.emit(keywordKind(text), text)
	case stateNumber:
		s.emit(KindNumber, string(s.source[s.start:]))
	case stateString:
		return nil, fmt.Errorf("unterminated string literal at %d:%d", s.startLine, s.startColumn)
	}

	s.tokens = append(s.tokens, Token{Kind: KindEOF, Text: "EOF", Line: s.line, Column: s.column})
	return s.tokens, nil
}

// search handles one character in the searching state.
func (s *Scanner) search(ch byte) error {
	switch {
	case ch == ' ' || ch == '\t' || ch == '\n':
		s.advance()

	case ch == '"':
		s.startLine, s.startColumn = s.line, s.column
		s.advance()
		s.start = s.cursor // string text excludes the quotes
		s.state = stateString

	case isDigit(ch):
		s.begin(stateNumber)

	case isAlpha(ch):
		s.begin(stateIdentifier)

	default:
		kind, ok := punctKind(ch)
		if !ok {
			return &Error{Char: ch, Line: s.line, Column: s.column}
		}
		s.tokens = append(s.tokens, Token{Kind: kind, Text: string(rune(ch)), Line: s.line, Column: s.column})
		s.advance()
	}
	return nil
}

// begin opens a multi-character token at the cursor and consumes its first
// character.
func (s *Scanner) begin(st state) {
	s.start = s.cursor
	s.startLine, s.startColumn = s.line, s.column
	s.state = st
	s.advance()
}

// emit appends a token using the position captured at state entry.
func (s *Scanner) emit(kind Kind, text string) {
	s.tokens = append(s.tokens, Token{Kind: kind, Text: text, Line: s.startLine, Column: s.startColumn})
}

// advance consumes exactly one character, keeping the line/column counter in
// step with the cursor.
func (s *Scanner) advance() {
	if s.source[s.cursor] == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	s.cursor++
}

func punctKind(ch byte) (Kind, bool) {
	switch ch {
	case '(':
		return KindLParen, true
	case ')':
		return KindRParen, true
	case '{':
		return KindLBrace, true
	case '}':
		return KindRBrace, true
	case ';':
		return KindSemicolon, true
	case '+':
		return KindPlus, true
	case '-':
		return KindMinus, true
	case '*':
		return KindMultiply, true
	case '/':
		return KindDivide, true
	case '>':
		return KindGreater, true
	case '<':
		return KindLess, true
	case '=':
		return KindEqual, true
	}
	return KindEOF, false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
