package emitter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/minilang/pkg/compiler/ast"
	"github.com/agenthands/minilang/pkg/compiler/emitter"
	"github.com/agenthands/minilang/pkg/compiler/lexer"
	"github.com/agenthands/minilang/pkg/compiler/parser"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Tokenize([]byte(src))
	require.NoError(t, err)
	prog, err := parser.Parse(tokens)
	require.NoError(t, err)
	return prog
}

const assignmentDoc = `{
  "type": 0,
  "data": {
    "block": {
      "type": 1,
      "data": {
        "statements": [
          {
            "type": 5,
            "data": {
              "identifier": "x",
              "value": {
                "type": 7,
                "data": {
                  "leftToken": {
                    "type": 17,
                    "value": "1",
                    "line": 1,
                    "column": 3
                  },
                  "operator": null,
                  "right": null
                }
              }
            }
          }
        ]
      }
    }
  }
}`

func TestMarshalAssignment(t *testing.T) {
	doc, err := emitter.Marshal(parseSource(t, "x=1"))
	require.NoError(t, err)
	assert.Equal(t, assignmentDoc, string(doc))
}

func TestEmitMatchesMarshal(t *testing.T) {
	prog := parseSource(t, `var x; if (x > 1) { y = "a" + 2 } else { y = 3 }; while (y < 9) { y = y * 2 }`)

	marshaled, err := emitter.Marshal(prog)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, emitter.Emit(&buf, prog))

	assert.Equal(t, string(marshaled), buf.String())
}

func TestMarshalSchema(t *testing.T) {
	doc, err := emitter.Marshal(parseSource(t, "if(x>1){y=2}"))
	require.NoError(t, err)

	out := string(doc)
	assert.Contains(t, out, `"type": 0`)         // Program
	assert.Contains(t, out, `"type": 3`)         // IfStatement
	assert.Contains(t, out, `"type": 6`)         // Condition
	assert.Contains(t, out, `"elseBlock": null`) // absent optional is explicit
	assert.Contains(t, out, `"operator": ">"`)   // comparator retained
	assert.Contains(t, out, `"operator": null`)  // terminal expression
	require.JSONEq(t, out, out)                  // well-formed JSON
}

func TestMarshalStringEscaping(t *testing.T) {
	prog := &ast.Program{
		Block: &ast.StatementBlock{
			Statements: []ast.Statement{
				&ast.Assignment{
					Identifier: "m",
					Value: &ast.Expression{
						LeftToken: lexer.Token{
							Kind:   lexer.KindString,
							Text:   "a\"b\\c\nd\te\rf\bg\fh\x01i",
							Line:   1,
							Column: 5,
						},
					},
				},
			},
		},
	}

	doc, err := emitter.Marshal(prog)
	require.NoError(t, err)

	assert.Contains(t, string(doc), `"value": "a\"b\\c\nd\te\rf\bg\fhi"`)
}

func TestMarshalWhileOmitsElse(t *testing.T) {
	doc, err := emitter.Marshal(parseSource(t, "while(a<b){a=a+1}"))
	require.NoError(t, err)

	out := string(doc)
	assert.Contains(t, out, `"type": 4`)
	assert.NotContains(t, out, `"elseBlock"`, "while has no else field at all")
}

func TestMarshalTokenOrdinals(t *testing.T) {
	doc, err := emitter.Marshal(parseSource(t, `x = "s"`))
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"type": 18`) // STRING ordinal
}
