package lexer

import "fmt"

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF        Kind = iota // sentinel, always the final token
	KindNumber                 // decimal integer literal
	KindIdentifier             // variable name
	KindOperator               // + - * / < > = <= >= == !=
	KindKeyword                // if while for def return
	KindNewline                // end of a source line
	KindIndent                 // block opened by deeper indentation
	KindDedent                 // block closed by shallower indentation
)

var kindNames = [...]string{
	KindEOF:        "EOF",
	KindNumber:     "NUMBER",
	KindIdentifier: "IDENTIFIER",
	KindOperator:   "OPERATOR",
	KindKeyword:    "KEYWORD",
	KindNewline:    "NEWLINE",
	KindIndent:     "INDENT",
	KindDedent:     "DEDENT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is one lexical unit. Text is empty for the synthetic
// Indent/Dedent/EOF tokens. Line and Column are 1-based; Column points
// at the first character of the lexeme.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Text == "" || t.Text == "\n" {
		return fmt.Sprintf("%s at %d:%d", t.Kind, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Kind, t.Text, t.Line, t.Column)
}
