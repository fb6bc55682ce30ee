package parser

import (
	"fmt"

	"github.com/agenthands/minilang/pkg/compiler/ast"
	"github.com/agenthands/minilang/pkg/compiler/lexer"
)

// Error reports the first token that failed the grammar rule being applied.
// Rule is the expectation tag of that rule.
type Error struct {
	Rule   string
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d:%d): unexpected symbol", e.Rule, e.Line, e.Column)
}

// Parser is a recursive-descent consumer of the token sequence, with one
// token of lookahead and no backtracking. The first structural mismatch
// aborts the whole parse; there is no partial tree.
type Parser struct {
	tokens []lexer.Token
	pos    int
	cur    lexer.Token
}

// NewParser creates a parser over a token sequence produced by the lexer.
func NewParser(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.cur = tokens[0]
	}
	return p
}

// Parse is a convenience wrapper over NewParser(tokens).Parse().
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return NewParser(tokens).Parse()
}

// Parse consumes the token sequence and returns the program root.
func (p *Parser) Parse() (*ast.Program, error) {
	if len(p.tokens) == 0 {
		return nil, &Error{Rule: "end of input", Line: 1, Column: 1}
	}

	block, err := p.parseStatementBlock()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.KindEOF {
		return nil, p.fail("program")
	}
	return &ast.Program{Block: block}, nil
}

func (p *Parser) fail(rule string) *Error {
	return &Error{Rule: rule, Line: p.cur.Line, Column: p.cur.Column}
}

// next moves the cursor one token forward. Running off the end of the
// sequence means the EOF token was consumed by a rule that still wanted
// more input.
func (p *Parser) next() error {
	if p.pos+1 >= len(p.tokens) {
		return p.fail("end of input")
	}
	p.pos++
	p.cur = p.tokens[p.pos]
	return nil
}

func (p *Parser) expect(kind lexer.Kind) error {
	if p.cur.Kind != kind {
		return p.fail("expect")
	}
	return p.next()
}

func (p *Parser) parseStatementBlock() (*ast.StatementBlock, error) {
	block := &ast.StatementBlock{}
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)

		// A trailing ';' is only valid if another statement follows.
		if p.cur.Kind != lexer.KindSemicolon {
			return block, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
}

// parseStatement dispatches on the current token alone: var, if and while
// are keyword dispatch, anything else must start an assignment.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case lexer.KindVar:
		if err := p.next(); err != nil {
			return nil, err
		}
		identifier := p.cur.Text
		if err := p.expect(lexer.KindIdentifier); err != nil {
			return nil, err
		}
		return &ast.VariableDeclaration{Identifier: identifier}, nil

	case lexer.KindIf:
		if err := p.next(); err != nil {
			return nil, err
		}
		condition, block, err := p.parseGuardedBlock()
		if err != nil {
			return nil, err
		}
		stmt := &ast.IfStatement{Condition: condition, Block: block}
		if p.cur.Kind == lexer.KindElse {
			if err := p.next(); err != nil {
				return nil, err
			}
			if err := p.expect(lexer.KindLBrace); err != nil {
				return nil, err
			}
			if stmt.ElseBlock, err = p.parseStatementBlock(); err != nil {
				return nil, err
			}
			if err := p.expect(lexer.KindRBrace); err != nil {
				return nil, err
			}
		}
		return stmt, nil

	case lexer.KindWhile:
		if err := p.next(); err != nil {
			return nil, err
		}
		condition, block, err := p.parseGuardedBlock()
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Condition: condition, Block: block}, nil

	case lexer.KindIdentifier:
		identifier := p.cur.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.KindEqual); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Identifier: identifier, Value: value}, nil

	default:
		return nil, p.fail("statement")
	}
}

// parseGuardedBlock parses the (CONDITION) { BLOCK } tail shared by if and
// while statements.
func (p *Parser) parseGuardedBlock() (*ast.Condition, *ast.StatementBlock, error) {
	if err := p.expect(lexer.KindLParen); err != nil {
		return nil, nil, err
	}
	condition, err := p.parseCondition()
	if err != nil {
		return nil, nil, err
	}
	if err := p.expect(lexer.KindRParen); err != nil {
		return nil, nil, err
	}
	if err := p.expect(lexer.KindLBrace); err != nil {
		return nil, nil, err
	}
	block, err := p.parseStatementBlock()
	if err != nil {
		return nil, nil, err
	}
	if err := p.expect(lexer.KindRBrace); err != nil {
		return nil, nil, err
	}
	return condition, block, nil
}

// parseCondition parses a comparison. The comparator is mandatory: a bare
// expression in condition position is a parse error.
func (p *Parser) parseCondition() (*ast.Condition, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	node := &ast.Condition{Left: left}
	switch p.cur.Kind {
	case lexer.KindGreater, lexer.KindLess, lexer.KindEqual:
		node.Operator = p.cur.Text
	default:
		return nil, p.fail("condition")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if node.Right, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return node, nil
}

// parseExpression parses a literal or identifier, optionally chained to
// another expression. Chains are right-associative by construction and the
// four operators share a single precedence level.
func (p *Parser) parseExpression() (*ast.Expression, error) {
	left := p.cur
	switch left.Kind {
	case lexer.KindNumber, lexer.KindString, lexer.KindIdentifier:
		if err := p.next(); err != nil {
			return nil, err
		}
	default:
		return nil, p.fail("expression")
	}

	node := &ast.Expression{LeftToken: left}
	switch p.cur.Kind {
	case lexer.KindPlus, lexer.KindMinus, lexer.KindMultiply, lexer.KindDivide:
		node.Operator = p.cur.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Right = right
	}
	return node, nil
}
