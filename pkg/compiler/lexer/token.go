package lexer

// Kind represents the lexical category of a token. The ordinal values are
// part of the output document schema and must not be reordered.
type Kind uint8

const (
	KindEOF Kind = iota
	// Keywords
	KindVar
	KindIf
	KindElse
	KindWhile
	// Separators
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindSemicolon
	// Operators
	KindPlus
	KindMinus
	KindMultiply
	KindDivide
	KindGreater
	KindLess
	KindEqual
	// Literals
	KindNumber
	KindString
	// Identifiers
	KindIdentifier
)

// Token represents a lexical unit. Line and Column are 1-based and point at
// the first character of the lexeme. Tokens are immutable once produced.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

// keywordKind classifies a scanned word: the four reserved words map to
// their own kinds, anything else is a plain identifier.
func keywordKind(text string) Kind {
	switch text {
	case "var":
		return KindVar
	case "if":
		return KindIf
	case "else":
		return KindElse
	case "while":
		return KindWhile
	default:
		return KindIdentifier
	}
}
