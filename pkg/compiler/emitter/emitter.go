// Package emitter renders a syntax tree as a deterministic JSON document.
//
// The document mirrors the tree 1:1: every node becomes an object holding
// its numeric variant tag under "type" and its fields under "data". Absent
// optional fields are emitted as explicit nulls, never omitted keys.
package emitter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/agenthands/minilang/pkg/compiler/ast"
	"github.com/agenthands/minilang/pkg/compiler/lexer"
)

// Emit streams the document for prog to w.
func Emit(w io.Writer, prog *ast.Program) error {
	e := &emitter{w: w}
	e.program(prog, 0)
	return e.err
}

// Marshal returns the document for prog as one in-memory value. It shares
// the streaming code path, so both delivery modes agree byte for byte.
func Marshal(prog *ast.Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := Emit(&buf, prog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// emitter carries the sink and a sticky write error so the tree walk does
// not thread error returns through every level.
type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) str(s string) {
	if e.err == nil {
		_, e.err = io.WriteString(e.w, s)
	}
}

func (e *emitter) num(n int) {
	e.str(strconv.Itoa(n))
}

func (e *emitter) pad(indent int) {
	for i := 0; i < indent; i++ {
		e.str("  ")
	}
}

// quoted writes s as a JSON string. Quote and backslash are escaped, the
// common control characters use their short escapes, and any remaining
// control byte below 0x20 uses a numeric escape.
func (e *emitter) quoted(s string) {
	e.str(`"`)
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		e.str(s[start:i])
		start = i + 1
		switch c {
		case '"':
			e.str(`\"`)
		case '\\':
			e.str(`\\`)
		case '\n':
			e.str(`\n`)
		case '\t':
			e.str(`\t`)
		case '\r':
			e.str(`\r`)
		case '\b':
			e.str(`\b`)
		case '\f':
			e.str(`\f`)
		default:
			e.str(fmt.Sprintf(`\u%04x`, c))
		}
	}
	e.str(s[start:])
	e.str(`"`)
}

// open starts a node object: the "type" tag and the opening of "data".
func (e *emitter) open(kind ast.Kind, indent int) {
	e.str("{\n")
	e.pad(indent + 1)
	e.str(`"type": `)
	e.num(int(kind))
	e.str(",\n")
	e.pad(indent + 1)
	e.str(`"data": {` + "\n")
}

func (e *emitter) close(indent int) {
	e.str("\n")
	e.pad(indent + 1)
	e.str("}\n")
	e.pad(indent)
	e.str("}")
}

func (e *emitter) key(name string, indent int) {
	e.pad(indent + 2)
	e.str(`"` + name + `": `)
}

func (e *emitter) program(p *ast.Program, indent int) {
	e.open(ast.KindProgram, indent)
	e.key("block", indent)
	e.block(p.Block, indent+2)
	e.close(indent)
}

func (e *emitter) block(b *ast.StatementBlock, indent int) {
	if b == nil {
		e.str("null")
		return
	}
	e.open(ast.KindStatementBlock, indent)
	e.key("statements", indent)
	e.str("[\n")
	for i, stmt := range b.Statements {
		e.pad(indent + 3)
		e.statement(stmt, indent+3)
		if i < len(b.Statements)-1 {
			e.str(",")
		}
		e.str("\n")
	}
	e.pad(indent + 2)
	e.str("]")
	e.close(indent)
}

func (e *emitter) statement(s ast.Statement, indent int) {
	switch s := s.(type) {
	case *ast.VariableDeclaration:
		e.open(ast.KindVariableDeclaration, indent)
		e.key("identifier", indent)
		e.quoted(s.Identifier)
		e.close(indent)

	case *ast.IfStatement:
		e.open(ast.KindIfStatement, indent)
		e.key("condition", indent)
		e.condition(s.Condition, indent+2)
		e.str(",\n")
		e.key("block", indent)
		e.block(s.Block, indent+2)
		e.str(",\n")
		e.key("elseBlock", indent)
		e.block(s.ElseBlock, indent+2)
		e.close(indent)

	case *ast.WhileStatement:
		e.open(ast.KindWhileStatement, indent)
		e.key("condition", indent)
		e.condition(s.Condition, indent+2)
		e.str(",\n")
		e.key("block", indent)
		e.block(s.Block, indent+2)
		e.close(indent)

	case *ast.Assignment:
		e.open(ast.KindAssignment, indent)
		e.key("identifier", indent)
		e.quoted(s.Identifier)
		e.str(",\n")
		e.key("value", indent)
		e.expression(s.Value, indent+2)
		e.close(indent)
	}
}

func (e *emitter) condition(c *ast.Condition, indent int) {
	if c == nil {
		e.str("null")
		return
	}
	e.open(ast.KindCondition, indent)
	e.key("left", indent)
	e.expression(c.Left, indent+2)
	e.str(",\n")
	e.key("operator", indent)
	e.quoted(c.Operator)
	e.str(",\n")
	e.key("right", indent)
	e.expression(c.Right, indent+2)
	e.close(indent)
}

func (e *emitter) expression(x *ast.Expression, indent int) {
	if x == nil {
		e.str("null")
		return
	}
	e.open(ast.KindExpression, indent)
	e.key("leftToken", indent)
	e.token(x.LeftToken, indent+2)
	e.str(",\n")
	e.key("operator", indent)
	if x.Operator == "" {
		e.str("null")
	} else {
		e.quoted(x.Operator)
	}
	e.str(",\n")
	e.key("right", indent)
	e.expression(x.Right, indent+2)
	e.close(indent)
}

func (e *emitter) token(t lexer.Token, indent int) {
	e.str("{\n")
	e.pad(indent + 1)
	e.str(`"type": `)
	e.num(int(t.Kind))
	e.str(",\n")
	e.pad(indent + 1)
	e.str(`"value": `)
	e.quoted(t.Text)
	e.str(",\n")
	e.pad(indent + 1)
	e.str(`"line": `)
	e.num(t.Line)
	e.str(",\n")
	e.pad(indent + 1)
	e.str(`"column": `)
	e.num(t.Column)
	e.str("\n")
	e.pad(indent)
	e.str("}")
}
