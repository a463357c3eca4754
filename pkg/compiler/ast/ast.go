package ast

import "github.com/urbancheese/py-to-asm/pkg/compiler/lexer"

// Node represents any node in the Abstract Syntax Tree. The variant is
// closed: every concrete node lives in this package and carries either
// the exprNode or stmtNode marker.
type Node interface {
	Pos() lexer.Token
}

// Expr represents an expression that yields a value.
type Expr interface {
	Node
	exprNode()
}

// Statement represents a standalone unit of execution.
type Statement interface {
	Node
	stmtNode()
}

// NumberLiteral is a decimal integer constant.
type NumberLiteral struct {
	Token lexer.Token
	Value int
}

func (n *NumberLiteral) Pos() lexer.Token { return n.Token }
func (n *NumberLiteral) exprNode()        {}

// Variable references a name by its stack slot.
type Variable struct {
	Token lexer.Token
	Name  string
}

func (v *Variable) Pos() lexer.Token { return v.Token }
func (v *Variable) exprNode()        {}

// BinaryOp applies Operator to the values of Left and Right. Both
// subtrees are owned exclusively by this node.
type BinaryOp struct {
	Token    lexer.Token // the operator token
	Operator string
	Left     Expr
	Right    Expr
}

func (b *BinaryOp) Pos() lexer.Token { return b.Token }
func (b *BinaryOp) exprNode()        {}

// Assignment: NAME = EXPR
type Assignment struct {
	Token lexer.Token // the name token
	Name  string
	Value Expr
}

func (a *Assignment) Pos() lexer.Token { return a.Token }
func (a *Assignment) stmtNode()        {}

// Conditional: "if" EXPR ":" followed by an indented body.
type Conditional struct {
	Token     lexer.Token // the "if" keyword
	Condition Expr
	Body      []Node
}

func (c *Conditional) Pos() lexer.Token { return c.Token }
func (c *Conditional) stmtNode()        {}
