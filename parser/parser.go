package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/evbt/fml/fmlerr"
	"github.com/evbt/fml/formula"
	"github.com/evbt/fml/util"
)

type infixOp struct {
	node       formula.Node
	prec       int
	rightAssoc bool
}

// Canonical spelling to operator. Precedence and associativity must agree
// with the render tables so that default rendering reparses to an equal tree.
var infixOps = map[string]infixOp{
	"⇔":   {formula.Equivalence, 10, false},
	"⇒":   {formula.Implication, 20, true},
	"∨":   {formula.Or, 30, false},
	"∧":   {formula.And, 40, false},
	"=":   {formula.Equals, 60, false},
	"≠":   {formula.NotEquals, 60, false},
	"<":   {formula.LessThan, 60, false},
	">":   {formula.GreaterThan, 60, false},
	"≤":   {formula.LessThanOrEqual, 60, false},
	"≥":   {formula.GreaterThanOrEqual, 60, false},
	"∈":   {formula.Membership, 60, false},
	"∉":   {formula.NotMembership, 60, false},
	"⊆":   {formula.Subset, 60, false},
	"⊈":   {formula.NotSubset, 60, false},
	"↔":   {formula.Relation, 70, true},
	"⇸":   {formula.PartialFunction, 70, true},
	"→":   {formula.TotalFunction, 70, true},
	"⤔":   {formula.PartialInjection, 70, true},
	"↣":   {formula.TotalInjection, 70, true},
	"↠":   {formula.Surjection, 70, true},
	"⤖":   {formula.Bijection, 70, true},
	"↦":   {formula.Mapsto, 80, false},
	"∪":   {formula.Union, 90, false},
	"∖":   {formula.SetMinus, 90, false},
	"∩":   {formula.Intersection, 100, false},
	"‥":   {formula.UpTo, 110, false},
	"+":   {formula.Addition, 120, false},
	"-":   {formula.Subtraction, 120, false},
	"∗":   {formula.Multiplication, 130, false},
	"÷":   {formula.Division, 130, false},
	"mod": {formula.Modulo, 130, false},
	"^":   {formula.Exponentiation, 140, true},
}

const (
	notPrec        = 50
	unaryMinusPrec = 150
)

// bailout aborts the walk after the first recorded syntax error. Anything
// else escaping the parser is an engine fault.
type bailout struct{}

type parser struct {
	lex    *lexer
	toks   []token
	st     formula.SymbolContext
	scopes util.Stack[util.MSet[string]]
	errs   *fmlerr.Errors
}

func (p *parser) fail(t token, format string, args ...any) {
	p.errs = p.errs.With(fmlerr.New(fmlerr.NewSyntax{
		Line:          t.line,
		Column:        t.col,
		ParserMessage: fmt.Sprintf(format, args...),
	}))
	panic(bailout{})
}

func (p *parser) peek(i int) token {
	for len(p.toks) <= i {
		p.toks = append(p.toks, p.lex.next())
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.peek(0)
	p.toks = p.toks[1:]
	return t
}

func (p *parser) accept(op string) bool {
	t := p.peek(0)
	if t.kind == tokOp && t.text == op {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(op string) {
	if !p.accept(op) {
		p.fail(p.peek(0), "expected %q, found %s", op, describe(p.peek(0)))
	}
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return fmt.Sprintf("identifier %q", t.text)
	case tokNumber:
		return fmt.Sprintf("number %q", t.text)
	default:
		return strconv.Quote(t.text)
	}
}

func (p *parser) parseFormula(minPrec int) *formula.Formula {
	left := p.parsePrefix()
	for {
		t := p.peek(0)
		if t.kind != tokOp {
			break
		}
		op, ok := infixOps[t.text]
		if !ok || op.prec < minPrec {
			break
		}
		p.next()
		nextMin := op.prec + 1
		if op.rightAssoc {
			nextMin = op.prec
		}
		left = formula.NewBinary(op.node, left, p.parseFormula(nextMin))
	}
	return left
}

func (p *parser) parsePrefix() *formula.Formula {
	t := p.peek(0)
	switch t.kind {
	case tokNumber:
		p.next()
		return p.number(t)
	case tokIdent:
		p.next()
		sym := p.classify(t)
		if nxt := p.peek(0); nxt.kind == tokOp && nxt.text == "(" {
			return p.application(sym)
		}
		return sym
	case tokOp:
		switch t.text {
		case "¬":
			p.next()
			return formula.NewUnary(formula.Not, p.parseFormula(notPrec))
		case "-":
			p.next()
			return formula.NewUnary(formula.UnaryMinus, p.parseFormula(unaryMinusPrec))
		case "∀":
			return p.quantifier(formula.Forall)
		case "∃":
			return p.quantifier(formula.Exists)
		case "λ":
			return p.lambda()
		case "(":
			p.next()
			f := p.parseFormula(0)
			p.expect(")")
			return f
		case "{":
			p.next()
			return p.braces()
		case "⊤":
			p.next()
			return formula.NewLeaf(formula.BTrue)
		case "⊥":
			p.next()
			return formula.NewLeaf(formula.BFalse)
		case "∅":
			p.next()
			return formula.NewLeaf(formula.EmptySet)
		case "ℕ":
			p.next()
			return formula.NewLeaf(formula.Nat)
		case "ℤ":
			p.next()
			return formula.NewLeaf(formula.Int)
		case "ℙ":
			p.next()
			p.expect("(")
			inner := p.parseFormula(0)
			p.expect(")")
			return formula.NewUnary(formula.Powerset, inner)
		}
	}
	p.fail(t, "unexpected %s", describe(t))
	return nil
}

func (p *parser) number(t token) *formula.Formula {
	v, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		p.fail(t, "number %q does not fit 64 bits", t.text)
	}
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return formula.NewNumber(int32(v))
	}
	return formula.NewNumber64(v)
}

// classify resolves an identifier to its symbol kind. Binder-bound names
// win over the symbol context; anything neither bound nor known is a syntax
// error, since the tree cannot record an unresolved name.
func (p *parser) classify(t token) *formula.Formula {
	name := t.text
	switch {
	case p.isBound(name):
		return formula.NewSymbol(formula.BoundSymbol, name)
	case p.st.IsParameter(name):
		return formula.NewSymbol(formula.ParameterSymbol, name)
	case p.st.IsVariable(name):
		return formula.NewSymbol(formula.VariableSymbol, name)
	case p.st.IsConstant(name):
		return formula.NewSymbol(formula.ConstantSymbol, name)
	case p.st.IsSet(name):
		return formula.NewSymbol(formula.SetSymbol, name)
	}
	p.fail(t, "unknown symbol %q", name)
	return nil
}

func (p *parser) application(fn *formula.Formula) *formula.Formula {
	p.expect("(")
	args := []*formula.Formula{p.parseFormula(0)}
	for p.accept(",") {
		args = append(args, p.parseFormula(0))
	}
	p.expect(")")
	arg := args[0]
	if len(args) > 1 {
		arg = formula.NewNary(formula.ListOfExpressions, args)
	}
	return formula.NewBinary(formula.Application, fn, arg)
}

func (p *parser) quantifier(node formula.Node) *formula.Formula {
	p.next()
	names := p.identList()
	p.expect("·")
	p.pushScope(names)
	body := p.parseFormula(0)
	p.popScope()
	return formula.NewBinary(node, varList(names), body)
}

func (p *parser) lambda() *formula.Formula {
	p.next()
	names := p.identList()
	p.expect("·")
	p.pushScope(names)
	pred := p.parseFormula(0)
	p.expect("|")
	expr := p.parseFormula(0)
	p.popScope()
	return formula.NewTernary(formula.Lambda, varList(names), pred, expr)
}

// braces is entered with the opening brace consumed: empty set, set
// comprehension, or set literal.
func (p *parser) braces() *formula.Formula {
	if p.accept("}") {
		return formula.NewLeaf(formula.EmptySet)
	}
	if p.bracesAreComprehension() {
		names := p.identList()
		p.expect("·")
		p.pushScope(names)
		pred := p.parseFormula(0)
		p.expect("|")
		expr := p.parseFormula(0)
		p.popScope()
		p.expect("}")
		return formula.NewTernary(formula.SetComprehension, varList(names), pred, expr)
	}
	elems := []*formula.Formula{p.parseFormula(0)}
	for p.accept(",") {
		elems = append(elems, p.parseFormula(0))
	}
	p.expect("}")
	return formula.NewNary(formula.SetLiteral, elems)
}

// bracesAreComprehension peeks for ident (, ident)* '·' without consuming.
func (p *parser) bracesAreComprehension() bool {
	i := 0
	for {
		if p.peek(i).kind != tokIdent {
			return false
		}
		nxt := p.peek(i + 1)
		if nxt.kind != tokOp {
			return false
		}
		switch nxt.text {
		case ",":
			i += 2
		case "·":
			return true
		default:
			return false
		}
	}
}

func (p *parser) identList() []string {
	t := p.peek(0)
	if t.kind != tokIdent {
		p.fail(t, "expected a bound variable name, found %s", describe(t))
	}
	p.next()
	names := []string{t.text}
	for p.accept(",") {
		t := p.peek(0)
		if t.kind != tokIdent {
			p.fail(t, "expected a bound variable name, found %s", describe(t))
		}
		p.next()
		names = append(names, t.text)
	}
	return names
}

func varList(names []string) *formula.Formula {
	vars := make([]*formula.Formula, len(names))
	for i, n := range names {
		vars[i] = formula.NewSymbol(formula.BoundSymbol, n)
	}
	return formula.NewNary(formula.ListOfVariables, vars)
}

func (p *parser) pushScope(names []string) {
	p.scopes.Push(util.NewSetOf(names))
}

func (p *parser) popScope() {
	p.scopes.Pop()
}

func (p *parser) isBound(name string) bool {
	for s := range p.scopes.All() {
		if s.Contains(name) {
			return true
		}
	}
	return false
}
