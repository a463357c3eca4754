// Package compiler translates a restricted, indentation-sensitive
// Python-like source language into 32-bit x86 assembly text via a
// three-stage pipeline: scan, parse, generate.
package compiler

import (
	"github.com/urbancheese/py-to-asm/pkg/compiler/lexer"
	"github.com/urbancheese/py-to-asm/pkg/compiler/parser"
	"github.com/urbancheese/py-to-asm/pkg/compiler/x86"
)

// Compile runs the full pipeline over source and returns the assembly
// listing. Every call uses fresh compilation state, so outputs of
// independent calls never share variable slots or labels.
func Compile(source string) (string, error) {
	tokens := lexer.Tokenize(source)

	p := parser.NewParser(tokens)
	nodes, err := p.Parse()
	if err != nil {
		return "", err
	}

	return x86.New().Generate(nodes)
}
