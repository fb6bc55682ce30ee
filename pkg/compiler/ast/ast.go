package ast

import "github.com/agenthands/minilang/pkg/compiler/lexer"

// Kind tags each node variant. The ordinal values are part of the output
// document schema and must not be reordered.
type Kind int

const (
	KindProgram Kind = iota
	KindStatementBlock
	KindVariableDeclaration
	KindIfStatement
	KindWhileStatement
	KindAssignment
	KindCondition
	KindExpression
)

// Node represents any node in the syntax tree.
type Node interface {
	Kind() Kind
}

// Statement represents a standalone unit inside a statement block.
type Statement interface {
	Node
	stmtNode()
}

// Program is the root node.
type Program struct {
	Block *StatementBlock
}

func (p *Program) Kind() Kind { return KindProgram }

// StatementBlock is a semicolon-separated statement sequence. A block always
// holds at least one statement.
type StatementBlock struct {
	Statements []Statement
}

func (b *StatementBlock) Kind() Kind { return KindStatementBlock }

// VariableDeclaration: var NAME (no initializer).
type VariableDeclaration struct {
	Identifier string
}

func (v *VariableDeclaration) Kind() Kind { return KindVariableDeclaration }
func (v *VariableDeclaration) stmtNode()  {}

// IfStatement: if (COND) { BLOCK } with an optional else block.
type IfStatement struct {
	Condition *Condition
	Block     *StatementBlock
	ElseBlock *StatementBlock // nil when there is no else branch
}

func (i *IfStatement) Kind() Kind { return KindIfStatement }
func (i *IfStatement) stmtNode()  {}

// WhileStatement: while (COND) { BLOCK }.
type WhileStatement struct {
	Condition *Condition
	Block     *StatementBlock
}

func (w *WhileStatement) Kind() Kind { return KindWhileStatement }
func (w *WhileStatement) stmtNode()  {}

// Assignment: NAME = EXPR.
type Assignment struct {
	Identifier string
	Value      *Expression
}

func (a *Assignment) Kind() Kind { return KindAssignment }
func (a *Assignment) stmtNode()  {}

// Condition is a comparison of two expressions. The operator is one of
// ">", "<", "=" and is always present.
type Condition struct {
	Left     *Expression
	Operator string
	Right    *Expression
}

func (c *Condition) Kind() Kind { return KindCondition }

// Expression is a literal or identifier, possibly chained right-recursively
// through one of "+", "-", "*", "/". Operator and Right are set together or
// not at all. LeftToken retains the leaf's full lexical provenance.
type Expression struct {
	LeftToken lexer.Token
	Operator  string      // "" for a terminal expression
	Right     *Expression // nil for a terminal expression
}

func (e *Expression) Kind() Kind { return KindExpression }
