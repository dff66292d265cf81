// Package parser is the construction front end: it turns one line of
// formula text plus a symbol-resolution context into a formula tree.
//
// The grammar is context sensitive: an identifier only tokenizes into a
// formula symbol if the symbol context knows it (or a surrounding binder
// bound it), which is why the context travels with the lexer and parser
// instead of being applied in a later pass.
package parser

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokOp
	tokErr
)

type token struct {
	kind tokenKind
	// for tokOp this is the canonical spelling, with ascii aliases
	// already normalized
	text string
	line int
	col  int
}

// Ascii aliases and unicode spellings, mapped to one canonical spelling.
// Ordered longest lexeme first so e.g. "/<:" wins over "/" and "<:".
var operators = []struct{ lexeme, canon string }{
	{">->>", "⤖"},
	{"/<:", "⊈"},
	{"<=>", "⇔"},
	{"|->", "↦"},
	{"+->", "⇸"},
	{"-->", "→"},
	{">+>", "⤔"},
	{">->", "↣"},
	{"->>", "↠"},
	{"<->", "↔"},
	{"=>", "⇒"},
	{"/=", "≠"},
	{"<=", "≤"},
	{">=", "≥"},
	{"/:", "∉"},
	{"<:", "⊆"},
	{"\\/", "∪"},
	{"/\\", "∩"},
	{"..", "‥"},
	{"=", "="},
	{"<", "<"},
	{">", ">"},
	{":", "∈"},
	{"!", "∀"},
	{"#", "∃"},
	{".", "·"},
	{"|", "|"},
	{"%", "λ"},
	{"&", "∧"},
	{"+", "+"},
	{"-", "-"},
	{"*", "∗"},
	{"/", "÷"},
	{"^", "^"},
	{"\\", "∖"},
	{"(", "("},
	{")", ")"},
	{"{", "{"},
	{"}", "}"},
	{",", ","},
	{"⇔", "⇔"},
	{"⇒", "⇒"},
	{"∨", "∨"},
	{"∧", "∧"},
	{"¬", "¬"},
	{"∀", "∀"},
	{"∃", "∃"},
	{"·", "·"},
	{"≠", "≠"},
	{"≤", "≤"},
	{"≥", "≥"},
	{"∈", "∈"},
	{"∉", "∉"},
	{"⊆", "⊆"},
	{"⊈", "⊈"},
	{"↔", "↔"},
	{"⇸", "⇸"},
	{"→", "→"},
	{"⤔", "⤔"},
	{"↣", "↣"},
	{"↠", "↠"},
	{"⤖", "⤖"},
	{"↦", "↦"},
	{"∪", "∪"},
	{"∩", "∩"},
	{"∖", "∖"},
	{"‥", "‥"},
	{"∗", "∗"},
	{"÷", "÷"},
	{"−", "-"},
	{"λ", "λ"},
	{"ℙ", "ℙ"},
	{"ℕ", "ℕ"},
	{"ℤ", "ℤ"},
	{"∅", "∅"},
	{"⊤", "⊤"},
	{"⊥", "⊥"},
}

// Word-shaped spellings. These never become identifiers.
var keywords = map[string]string{
	"or":    "∨",
	"not":   "¬",
	"mod":   "mod",
	"POW":   "ℙ",
	"NAT":   "ℕ",
	"INT":   "ℤ",
	"true":  "⊤",
	"false": "⊥",
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1}
}

func (l *lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) hasPrefix(s string) bool {
	runes := []rune(s)
	if l.pos+len(runes) > len(l.src) {
		return false
	}
	for i, r := range runes {
		if l.src[l.pos+i] != r {
			return false
		}
	}
	return true
}

func (l *lexer) next() token {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.advance(1)
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, col: l.col}
	}
	line, col := l.line, l.col
	r := l.src[l.pos]

	if unicode.IsDigit(r) {
		var sb strings.Builder
		for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
			sb.WriteRune(l.src[l.pos])
			l.advance(1)
		}
		return token{kind: tokNumber, text: sb.String(), line: line, col: col}
	}

	// operators first: some spellings (ℕ, ℙ, λ, ...) are letters to unicode
	for _, op := range operators {
		if l.hasPrefix(op.lexeme) {
			l.advance(len([]rune(op.lexeme)))
			return token{kind: tokOp, text: op.canon, line: line, col: col}
		}
	}

	if unicode.IsLetter(r) || r == '_' {
		var sb strings.Builder
		for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			sb.WriteRune(l.src[l.pos])
			l.advance(1)
		}
		word := sb.String()
		if canon, ok := keywords[word]; ok {
			return token{kind: tokOp, text: canon, line: line, col: col}
		}
		return token{kind: tokIdent, text: word, line: line, col: col}
	}

	l.advance(1)
	return token{kind: tokErr, text: string(r), line: line, col: col}
}
