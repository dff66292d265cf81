package formula

import (
	"strconv"

	"github.com/evbt/fml/fmlerr"
)

// Renderer is the walk contract: dispatch on node kind, emit target syntax,
// recurse into children in positional order. The set of renderers is closed,
// one per render target family.
type Renderer interface {
	Cnvs() *Canvas
	visit(f *Formula)
}

// Walk renders f depth first through the given renderer. The walk only
// reads the tree.
func Walk(r Renderer, f *Formula) {
	r.visit(f)
}

type fixity int

const (
	fixNone fixity = iota
	fixAtom
	fixPrefix
	fixInfix
	fixQuantifier
	fixBinder
	fixComprehension
	fixSetLiteral
	fixList
	fixFunction
	fixApplication
)

type column int

const (
	colPlain column = iota
	colTex
	colHtmq
)

type opInfo struct {
	fix   fixity
	prec  int
	spell [3]string // plain, tex, htmq
}

// Operator metadata shared by all renderers. Precedence drives
// parenthesization; zero means self-delimiting, never wrapped. The TeX
// column follows the bsymb macro names.
var renderTable = map[Node]opInfo{
	BTrue:    {fixAtom, 0, [3]string{"⊤", "\\btrue ", "⊤"}},
	BFalse:   {fixAtom, 0, [3]string{"⊥", "\\bfalse ", "⊥"}},
	EmptySet: {fixAtom, 0, [3]string{"∅", "\\emptyset ", "∅"}},
	Nat:      {fixAtom, 0, [3]string{"ℕ", "\\nat ", "ℕ"}},
	Int:      {fixAtom, 0, [3]string{"ℤ", "\\intg ", "ℤ"}},

	Equivalence:        {fixInfix, 10, [3]string{"⇔", "\\Leftrightarrow ", "⇔"}},
	Implication:        {fixInfix, 20, [3]string{"⇒", "\\Rightarrow ", "⇒"}},
	Or:                 {fixInfix, 30, [3]string{"∨", "\\lor ", "∨"}},
	And:                {fixInfix, 40, [3]string{"∧", "\\land ", "∧"}},
	Not:                {fixPrefix, 50, [3]string{"¬", "\\lnot ", "¬"}},
	Equals:             {fixInfix, 60, [3]string{"=", "=", "="}},
	NotEquals:          {fixInfix, 60, [3]string{"≠", "\\neq ", "≠"}},
	LessThan:           {fixInfix, 60, [3]string{"<", "<", "&lt;"}},
	GreaterThan:        {fixInfix, 60, [3]string{">", ">", "&gt;"}},
	LessThanOrEqual:    {fixInfix, 60, [3]string{"≤", "\\leq ", "≤"}},
	GreaterThanOrEqual: {fixInfix, 60, [3]string{"≥", "\\geq ", "≥"}},
	Membership:         {fixInfix, 60, [3]string{"∈", "\\in ", "∈"}},
	NotMembership:      {fixInfix, 60, [3]string{"∉", "\\notin ", "∉"}},
	Subset:             {fixInfix, 60, [3]string{"⊆", "\\subseteq ", "⊆"}},
	NotSubset:          {fixInfix, 60, [3]string{"⊈", "\\notsubseteq ", "⊈"}},

	Relation:         {fixInfix, 70, [3]string{"↔", "\\rel ", "↔"}},
	PartialFunction:  {fixInfix, 70, [3]string{"⇸", "\\pfun ", "⇸"}},
	TotalFunction:    {fixInfix, 70, [3]string{"→", "\\tfun ", "→"}},
	PartialInjection: {fixInfix, 70, [3]string{"⤔", "\\pinj ", "⤔"}},
	TotalInjection:   {fixInfix, 70, [3]string{"↣", "\\tinj ", "↣"}},
	Surjection:       {fixInfix, 70, [3]string{"↠", "\\tsur ", "↠"}},
	Bijection:        {fixInfix, 70, [3]string{"⤖", "\\tbij ", "⤖"}},

	Mapsto:       {fixInfix, 80, [3]string{"↦", "\\mapsto ", "↦"}},
	Union:        {fixInfix, 90, [3]string{"∪", "\\cup ", "∪"}},
	SetMinus:     {fixInfix, 90, [3]string{"∖", "\\setminus ", "∖"}},
	Intersection: {fixInfix, 100, [3]string{"∩", "\\cap ", "∩"}},
	UpTo:         {fixInfix, 110, [3]string{"‥", "\\upto ", "‥"}},

	Addition:       {fixInfix, 120, [3]string{"+", "+", "+"}},
	Subtraction:    {fixInfix, 120, [3]string{"-", "-", "-"}},
	Multiplication: {fixInfix, 130, [3]string{"∗", "\\cdot ", "∗"}},
	Division:       {fixInfix, 130, [3]string{"÷", "\\div ", "÷"}},
	Modulo:         {fixInfix, 130, [3]string{" mod ", "\\bmod ", " mod "}},
	Exponentiation: {fixInfix, 140, [3]string{"^", "^", "^"}},
	UnaryMinus:     {fixPrefix, 150, [3]string{"-", "-", "-"}},

	Forall: {fixQuantifier, 5, [3]string{"∀", "\\forall ", "∀"}},
	Exists: {fixQuantifier, 5, [3]string{"∃", "\\exists ", "∃"}},
	Lambda: {fixBinder, 5, [3]string{"λ", "\\lambda ", "λ"}},

	SetComprehension: {fixComprehension, 0, [3]string{"", "", ""}},
	SetLiteral:       {fixSetLiteral, 0, [3]string{"", "", ""}},
	Powerset:         {fixFunction, 0, [3]string{"ℙ", "\\pow ", "ℙ"}},
	Application:      {fixApplication, 0, [3]string{"", "", ""}},

	ListOfVariables:   {fixList, 0, [3]string{"", "", ""}},
	ListOfExpressions: {fixList, 0, [3]string{"", "", ""}},
}

// rightAssoc lists the infix kinds whose equal-precedence chains extend to
// the right without parentheses. Must agree with the parser.
var rightAssoc = map[Node]bool{
	Implication:      true,
	Exponentiation:   true,
	Relation:         true,
	PartialFunction:  true,
	TotalFunction:    true,
	PartialInjection: true,
	TotalInjection:   true,
	Surjection:       true,
	Bijection:        true,
}

type renderBase struct {
	cnvs  *Canvas
	col   column
	types TypeResolver
}

func (r *renderBase) Cnvs() *Canvas {
	return r.cnvs
}

// AddTypes switches the walk into type-annotated mode.
func (r *renderBase) AddTypes(types TypeResolver) {
	r.types = types
}

func (r *renderBase) spell(n Node) string {
	return renderTable[n].spell[r.col]
}

func (r *renderBase) punct(plain, tex string) string {
	if r.col == colTex {
		return tex
	}
	return plain
}

func (r *renderBase) visit(f *Formula) {
	if f.IsSymbol() {
		r.cnvs.Symbol(f.Symbol())
		if r.types != nil {
			if t, ok := r.types.TypeOf(f.Symbol()); ok {
				r.cnvs.Operator(":")
				r.cnvs.Type(t)
			}
		}
		return
	}
	if f.Is(Number) {
		r.cnvs.Number(strconv.FormatInt(f.Int64Data(), 10))
		return
	}
	info := renderTable[f.Node()]
	switch info.fix {
	case fixAtom:
		r.cnvs.Keyword(r.spell(f.Node()))
	case fixPrefix:
		r.cnvs.Operator(r.spell(f.Node()))
		r.sub(f, f.Inner(), false)
	case fixInfix:
		r.sub(f, f.Left(), false)
		r.cnvs.Operator(r.spell(f.Node()))
		r.sub(f, f.Right(), true)
	case fixQuantifier:
		r.cnvs.Operator(r.spell(f.Node()))
		r.visit(f.Left())
		r.cnvs.Operator(r.punct("·", "\\qdot "))
		r.visit(f.Right())
	case fixBinder:
		r.cnvs.Operator(r.spell(f.Node()))
		r.visit(f.Child(0))
		r.cnvs.Operator(r.punct("·", "\\qdot "))
		r.visit(f.Child(1))
		r.cnvs.Operator(r.punct("|", "\\mid "))
		r.visit(f.Child(2))
	case fixComprehension:
		r.cnvs.Operator(r.punct("{", "\\{"))
		r.visit(f.Child(0))
		r.cnvs.Operator(r.punct("·", "\\qdot "))
		r.visit(f.Child(1))
		r.cnvs.Operator(r.punct("|", "\\mid "))
		r.visit(f.Child(2))
		r.cnvs.Operator(r.punct("}", "\\}"))
	case fixSetLiteral:
		r.cnvs.Operator(r.punct("{", "\\{"))
		r.list(f)
		r.cnvs.Operator(r.punct("}", "\\}"))
	case fixList:
		r.list(f)
	case fixFunction:
		r.cnvs.Keyword(r.spell(f.Node()))
		r.cnvs.Operator("(")
		r.visit(f.Inner())
		r.cnvs.Operator(")")
	case fixApplication:
		r.visit(f.Left())
		r.cnvs.Operator("(")
		r.visit(f.Right())
		r.cnvs.Operator(")")
	default:
		panic(fmlerr.New(fmlerr.NewConfiguration{
			Detail: "no rendering rule for node " + f.Node().String(),
		}))
	}
}

func (r *renderBase) list(f *Formula) {
	for i := 0; i < f.NumChildren(); i++ {
		if i > 0 {
			r.cnvs.Operator(",")
		}
		r.visit(f.Child(i))
	}
}

func (r *renderBase) sub(parent, child *Formula, right bool) {
	if needsParens(parent, child, right) {
		r.cnvs.Operator("(")
		r.visit(child)
		r.cnvs.Operator(")")
	} else {
		r.visit(child)
	}
}

func needsParens(parent, child *Formula, right bool) bool {
	cp := renderTable[child.Node()].prec
	if cp == 0 {
		return false
	}
	pp := renderTable[parent.Node()].prec
	if cp != pp {
		return cp < pp
	}
	if rightAssoc[parent.Node()] {
		return !right
	}
	return right
}

// RenderUnicode serves both the PLAIN and TERMINAL targets; the canvas
// decides whether styling applies.
type RenderUnicode struct{ renderBase }

func NewRenderUnicode(c *Canvas) *RenderUnicode {
	return &RenderUnicode{renderBase{cnvs: c, col: colPlain}}
}

type RenderTeX struct{ renderBase }

func NewRenderTeX(c *Canvas) *RenderTeX {
	return &RenderTeX{renderBase{cnvs: c, col: colTex}}
}

type RenderHtmq struct{ renderBase }

func NewRenderHtmq(c *Canvas) *RenderHtmq {
	return &RenderHtmq{renderBase{cnvs: c, col: colHtmq}}
}
