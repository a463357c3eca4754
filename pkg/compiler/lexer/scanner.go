package lexer

// Scanner performs a single left-to-right pass over source text,
// tracking an indentation stack for the off-side rule.
type Scanner struct {
	source  string
	cursor  int
	line    int
	column  int
	indents []int
	tokens  []Token
}

// reserved maps identifier text to its keyword status. Only "if" is
// honored by the parser; the rest are reserved and otherwise inert.
var reserved = map[string]bool{
	"if":     true,
	"while":  true,
	"for":    true,
	"def":    true,
	"return": true,
}

// Tokenize scans source into a complete token sequence ending in an
// EOF token. It never fails: bytes outside the language are skipped.
func Tokenize(source string) []Token {
	s := &Scanner{source: source, line: 1, column: 1, indents: []int{0}}
	return s.run()
}

func (s *Scanner) run() []Token {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		switch {
		case ch == '\n':
			s.emit(Token{Kind: KindNewline, Text: "\n", Line: s.line, Column: s.column})
			s.line++
			s.column = 1
			s.cursor++
			s.measureIndent()
		case ch == ' ' || ch == '\t' || ch == '\r':
			s.cursor++
			s.column++
		case ch == '#':
			s.skipComment()
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch) || ch == '_':
			s.scanIdentifier()
		case isOperatorStart(ch):
			s.scanOperator()
		default:
			// Anything else is outside the language and absorbed.
			s.cursor++
			s.column++
		}
	}

	// Close any indentation levels still open so a source ending
	// inside a block produces matching Dedent tokens.
	for len(s.indents) > 1 {
		s.indents = s.indents[:len(s.indents)-1]
		s.emit(Token{Kind: KindDedent, Line: s.line, Column: 1})
	}

	s.emit(Token{Kind: KindEOF, Line: s.line, Column: s.column})
	return s.tokens
}

// measureIndent applies the off-side rule to the line the cursor now
// sits at: a space widens the indentation by 1, a tab by 4. Wider than
// the stack top pushes and emits one Indent; narrower pops and emits
// one Dedent per level closed. Lines holding nothing, or only a
// comment, do not take part in the rule.
func (s *Scanner) measureIndent() {
	width := 0
	i := s.cursor
	for i < len(s.source) && (s.source[i] == ' ' || s.source[i] == '\t') {
		if s.source[i] == '\t' {
			width += 4
		} else {
			width++
		}
		i++
	}
	if i >= len(s.source) || s.source[i] == '\n' || s.source[i] == '\r' || s.source[i] == '#' {
		return
	}

	s.column += i - s.cursor
	s.cursor = i

	if width > s.indents[len(s.indents)-1] {
		s.indents = append(s.indents, width)
		s.emit(Token{Kind: KindIndent, Line: s.line, Column: 1})
	}
	for width < s.indents[len(s.indents)-1] {
		s.indents = s.indents[:len(s.indents)-1]
		s.emit(Token{Kind: KindDedent, Line: s.line, Column: 1})
	}
}

func (s *Scanner) skipComment() {
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' {
		s.cursor++
		s.column++
	}
}

func (s *Scanner) scanNumber() {
	start := s.cursor
	startCol := s.column
	for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
		s.cursor++
		s.column++
	}
	s.emit(Token{Kind: KindNumber, Text: s.source[start:s.cursor], Line: s.line, Column: startCol})
}

func (s *Scanner) scanIdentifier() {
	start := s.cursor
	startCol := s.column
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if !isAlpha(ch) && !isDigit(ch) && ch != '_' {
			break
		}
		s.cursor++
		s.column++
	}
	text := s.source[start:s.cursor]
	kind := KindIdentifier
	if reserved[text] {
		kind = KindKeyword
	}
	s.emit(Token{Kind: kind, Text: text, Line: s.line, Column: startCol})
}

// scanOperator reads one operator with maximal munch, so <= >= == !=
// come out as single two-character tokens. A '!' not followed by '='
// is outside the language and skipped.
func (s *Scanner) scanOperator() {
	ch := s.source[s.cursor]
	startCol := s.column

	if (ch == '<' || ch == '>' || ch == '=' || ch == '!') && s.peek() == '=' {
		s.emit(Token{Kind: KindOperator, Text: s.source[s.cursor : s.cursor+2], Line: s.line, Column: startCol})
		s.cursor += 2
		s.column += 2
		return
	}
	if ch == '!' {
		s.cursor++
		s.column++
		return
	}

	s.emit(Token{Kind: KindOperator, Text: string(ch), Line: s.line, Column: startCol})
	s.cursor++
	s.column++
}

func (s *Scanner) emit(tok Token) {
	s.tokens = append(s.tokens, tok)
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isOperatorStart(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '<', '>', '=', '!':
		return true
	}
	return false
}
