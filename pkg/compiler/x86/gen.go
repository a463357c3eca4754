// Package x86 lowers the syntax tree to 32-bit Intel-syntax assembly
// text. Every variable gets a fixed 4-byte slot below ebp; expressions
// evaluate into eax with the machine stack as spill space.
package x86

import (
	"fmt"
	"strings"

	"github.com/urbancheese/py-to-asm/pkg/compiler/ast"
)

// CodegenError reports an expression referencing a name that has no
// stack slot in the current compilation.
type CodegenError struct {
	Name string
}

func (e *CodegenError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

// Generator holds the mutable state of one compilation: the variable
// table, the label counter, and the emitted lines. A Generator must
// not be reused across compilations; stale slots and labels would
// alias fresh ones.
type Generator struct {
	vars       map[string]int
	nextOffset int
	labelCount int
	out        []string
}

func New() *Generator {
	return &Generator{
		vars:       make(map[string]int),
		nextOffset: 4,
	}
}

// setcc maps each comparison operator to the instruction that
// materializes its flag into al.
var setcc = map[string]string{
	"<":  "setl",
	">":  "setg",
	"<=": "setle",
	">=": "setge",
	"==": "sete",
	"!=": "setne",
}

// Generate walks the statement sequence depth-first and returns the
// newline-joined assembly listing, wrapped in a fixed prologue and an
// exit-syscall epilogue.
func (g *Generator) Generate(nodes []ast.Node) (string, error) {
	g.emit("global _start")
	g.emit("section .text")
	g.emit("_start:")
	g.emit("push ebp")
	g.emit("mov ebp, esp")

	for _, node := range nodes {
		if err := g.genNode(node); err != nil {
			return "", err
		}
	}

	g.emit("mov esp, ebp")
	g.emit("pop ebp")
	g.emit("mov eax, 1")
	g.emit("xor ebx, ebx")
	g.emit("int 0x80")

	return strings.Join(g.out, "\n"), nil
}

func (g *Generator) genNode(node ast.Node) error {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		g.emit(fmt.Sprintf("mov eax, %d", n.Value))
	case *ast.Variable:
		offset, ok := g.vars[n.Name]
		if !ok {
			return &CodegenError{Name: n.Name}
		}
		g.emit(fmt.Sprintf("mov eax, [ebp-%d]", offset))
	case *ast.BinaryOp:
		return g.genBinaryOp(n)
	case *ast.Assignment:
		return g.genAssignment(n)
	case *ast.Conditional:
		return g.genConditional(n)
	default:
		return fmt.Errorf("unsupported node type: %T", node)
	}
	return nil
}

// genBinaryOp evaluates the right operand first and parks it on the
// machine stack, evaluates the left into eax, then pops the right into
// ebx and applies the operator. The order is fixed for all operators.
func (g *Generator) genBinaryOp(n *ast.BinaryOp) error {
	if err := g.genNode(n.Right); err != nil {
		return err
	}
	g.emit("push eax")
	if err := g.genNode(n.Left); err != nil {
		return err
	}
	g.emit("pop ebx")

	switch n.Operator {
	case "+":
		g.emit("add eax, ebx")
	case "-":
		g.emit("sub eax, ebx")
	case "*":
		g.emit("imul eax, ebx")
	case "/":
		g.emit("cdq") // sign-extend eax into edx:eax
		g.emit("idiv ebx")
	default:
		set, ok := setcc[n.Operator]
		if !ok {
			return fmt.Errorf("unsupported operator: %s", n.Operator)
		}
		g.emit("cmp eax, ebx")
		g.emit(set + " al")
		g.emit("movzx eax, al")
	}
	return nil
}

func (g *Generator) genAssignment(n *ast.Assignment) error {
	if err := g.genNode(n.Value); err != nil {
		return err
	}
	offset, ok := g.vars[n.Name]
	if !ok {
		offset = g.nextOffset
		g.vars[n.Name] = offset
		g.nextOffset += 4
	}
	g.emit(fmt.Sprintf("mov [ebp-%d], eax", offset))
	return nil
}

func (g *Generator) genConditional(n *ast.Conditional) error {
	end := g.newLabel()

	if err := g.genNode(n.Condition); err != nil {
		return err
	}
	g.emit("test eax, eax")
	g.emit("jz " + end)

	for _, stmt := range n.Body {
		if err := g.genNode(stmt); err != nil {
			return err
		}
	}
	g.emit(end + ":")
	return nil
}

func (g *Generator) newLabel() string {
	label := fmt.Sprintf("L%d", g.labelCount)
	g.labelCount++
	return label
}

func (g *Generator) emit(line string) {
	g.out = append(g.out, line)
}
