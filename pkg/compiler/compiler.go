// Package compiler ties the front-end pipeline together: source text in,
// serialized syntax-tree document out.
package compiler

import (
	"bytes"

	"github.com/agenthands/minilang/pkg/compiler/emitter"
	"github.com/agenthands/minilang/pkg/compiler/lexer"
	"github.com/agenthands/minilang/pkg/compiler/parser"
)

// Generate runs lexer, parser and emitter over src and returns the document.
// It allocates a fresh buffer per call and is safe for concurrent use.
func Generate(src []byte) ([]byte, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	return emitter.Marshal(prog)
}

// Frontend is the embeddable form of the pipeline. It keeps one output
// buffer that is truncated at the start of every Generate call and handed
// to the caller at the end, so hosts that generate many documents avoid
// re-allocating the output each time.
//
// The returned slice aliases the internal buffer and is only valid until
// the next call. A Frontend is not safe for concurrent use; callers must
// serialize access or use the package-level Generate.
type Frontend struct {
	buf bytes.Buffer
}

// New creates a Frontend with an empty output buffer.
func New() *Frontend {
	return &Frontend{}
}

// Generate runs the pipeline over src, reusing the output buffer.
func (f *Frontend) Generate(src []byte) ([]byte, error) {
	f.buf.Reset()

	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	if err := emitter.Emit(&f.buf, prog); err != nil {
		return nil, err
	}
	return f.buf.Bytes(), nil
}
