package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/urbancheese/py-to-asm/pkg/compiler/ast"
	"github.com/urbancheese/py-to-asm/pkg/compiler/lexer"
	"github.com/urbancheese/py-to-asm/pkg/compiler/parser"
)

func parseSource(t *testing.T, src string) []ast.Node {
	t.Helper()
	p := parser.NewParser(lexer.Tokenize(src))
	nodes, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return nodes
}

func TestPrecedence(t *testing.T) {
	nodes := parseSource(t, "z = x + y * 2\n")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(nodes))
	}

	assign, ok := nodes[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", nodes[0])
	}
	if assign.Name != "z" {
		t.Errorf("assignment target = %q, want z", assign.Name)
	}

	add, ok := assign.Value.(*ast.BinaryOp)
	if !ok || add.Operator != "+" {
		t.Fatalf("expected top-level '+', got %#v", assign.Value)
	}
	if v, ok := add.Left.(*ast.Variable); !ok || v.Name != "x" {
		t.Errorf("left of '+' = %#v, want Variable(x)", add.Left)
	}

	mul, ok := add.Right.(*ast.BinaryOp)
	if !ok || mul.Operator != "*" {
		t.Fatalf("right of '+' should be '*', got %#v", add.Right)
	}
	if v, ok := mul.Left.(*ast.Variable); !ok || v.Name != "y" {
		t.Errorf("left of '*' = %#v, want Variable(y)", mul.Left)
	}
	if n, ok := mul.Right.(*ast.NumberLiteral); !ok || n.Value != 2 {
		t.Errorf("right of '*' = %#v, want NumberLiteral(2)", mul.Right)
	}
}

func TestLeftAssociativity(t *testing.T) {
	nodes := parseSource(t, "x = 1 - 2 - 3\n")
	assign := nodes[0].(*ast.Assignment)

	outer, ok := assign.Value.(*ast.BinaryOp)
	if !ok || outer.Operator != "-" {
		t.Fatalf("expected outer '-', got %#v", assign.Value)
	}
	inner, ok := outer.Left.(*ast.BinaryOp)
	if !ok || inner.Operator != "-" {
		t.Fatalf("expected (1-2) on the left, got %#v", outer.Left)
	}
	if n := inner.Left.(*ast.NumberLiteral); n.Value != 1 {
		t.Errorf("innermost left = %d, want 1", n.Value)
	}
	if n := outer.Right.(*ast.NumberLiteral); n.Value != 3 {
		t.Errorf("outer right = %d, want 3", n.Value)
	}
}

func TestComparisonOperators(t *testing.T) {
	for _, op := range []string{"<", ">", "<=", ">=", "==", "!="} {
		t.Run(op, func(t *testing.T) {
			nodes := parseSource(t, "r = a "+op+" b\n")
			assign := nodes[0].(*ast.Assignment)
			cmp, ok := assign.Value.(*ast.BinaryOp)
			if !ok || cmp.Operator != op {
				t.Fatalf("expected BinaryOp(%s), got %#v", op, assign.Value)
			}
		})
	}
}

func TestConditional(t *testing.T) {
	src := "x = 1\ny = 2\nif x < y:\n    z = 1\n    w = 2\n"
	nodes := parseSource(t, src)
	if len(nodes) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(nodes))
	}

	cond, ok := nodes[2].(*ast.Conditional)
	if !ok {
		t.Fatalf("expected *ast.Conditional, got %T", nodes[2])
	}
	cmp, ok := cond.Condition.(*ast.BinaryOp)
	if !ok || cmp.Operator != "<" {
		t.Fatalf("condition = %#v, want BinaryOp(<)", cond.Condition)
	}
	if len(cond.Body) != 2 {
		t.Fatalf("body has %d statements, want 2", len(cond.Body))
	}
	if a, ok := cond.Body[0].(*ast.Assignment); !ok || a.Name != "z" {
		t.Errorf("body[0] = %#v, want Assignment(z)", cond.Body[0])
	}
}

func TestConditionalBodyAfterCommentLine(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"CommentLine", "if x:\n    # note\n    y = 1\n"},
		{"BlankLine", "if x:\n\n    y = 1\n"},
		{"CommentAndBlankLines", "if x:\n    # note\n\n    y = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "x = 0\n" + tt.src
			nodes := parseSource(t, src)
			cond, ok := nodes[1].(*ast.Conditional)
			if !ok {
				t.Fatalf("expected *ast.Conditional, got %T", nodes[1])
			}
			if len(cond.Body) != 1 {
				t.Fatalf("body has %d statements, want 1", len(cond.Body))
			}
			if a, ok := cond.Body[0].(*ast.Assignment); !ok || a.Name != "y" {
				t.Errorf("body[0] = %#v, want Assignment(y)", cond.Body[0])
			}
		})
	}
}

func TestConditionalAtEndOfInput(t *testing.T) {
	// Block ends exactly at end of input, no trailing newline.
	nodes := parseSource(t, "x = 1\nif x:\n    y = 2")
	cond := nodes[1].(*ast.Conditional)
	if len(cond.Body) != 1 {
		t.Fatalf("body has %d statements, want 1", len(cond.Body))
	}
}

func TestBareExpressionStatement(t *testing.T) {
	nodes := parseSource(t, "x = 1\nx + 2\n")
	if len(nodes) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(nodes))
	}
	if _, ok := nodes[1].(*ast.BinaryOp); !ok {
		t.Errorf("expected bare *ast.BinaryOp statement, got %T", nodes[1])
	}
}

func TestTrailingNewlineOptional(t *testing.T) {
	with := parseSource(t, "x = 5\n")
	without := parseSource(t, "x = 5")
	if len(with) != 1 || len(without) != 1 {
		t.Errorf("statement counts = %d and %d, want 1 and 1", len(with), len(without))
	}
}

func TestBlankSources(t *testing.T) {
	for _, src := range []string{"", "\n", "\n\n\n", "# only a comment\n"} {
		nodes := parseSource(t, src)
		if len(nodes) != 0 {
			t.Errorf("Parse(%q) produced %d statements, want 0", src, len(nodes))
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"MissingIndent", "if x:\ny = 1\n"},
		{"OperatorInPrimaryPosition", "x = * 2\n"},
		{"DanglingOperator", "x = 1 +\n"},
		{"KeywordInExpression", "x = while\n"},
		{"BareDedentBody", "if x:\n"},
		{"LiteralOverflowsInt", "x = 99999999999999999999\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parser.NewParser(lexer.Tokenize(tt.src))
			_, err := p.Parse()
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error is %T, want *parser.ParseError", err)
			}
			if perr.Token.Line == 0 {
				t.Errorf("ParseError carries no position: %v", perr)
			}
		})
	}
}

func TestParseErrorNamesToken(t *testing.T) {
	p := parser.NewParser(lexer.Tokenize("x = while\n"))
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "while") {
		t.Errorf("error %q does not name the offending token", err.Error())
	}
}
