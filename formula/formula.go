package formula

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/evbt/fml/fmlerr"
)

// Formula is one immutable node of a formula tree. After construction no
// field changes, except the render cache which goes from empty to a single
// fixed value. Trees can therefore be shared and read concurrently without
// locking, and a child subtree may be aliased into several parents.
type Formula struct {
	node     Node
	data     []int32    // a symbol index, or a number as one or two 32 bit words
	children []*Formula // owned child slots, in positional order
	cache    atomic.Pointer[string]
}

// TypeResolver resolves the display type of a named symbol, if it has one.
// Used by the type-annotated render mode.
type TypeResolver interface {
	TypeOf(symbol string) (string, bool)
}

// SymbolContext is the symbol-resolution context consumed by the parser: it
// classifies known identifiers, resolves their types, and can dump itself in
// human-readable form for error reports.
type SymbolContext interface {
	TypeResolver
	IsVariable(name string) bool
	IsConstant(name string) bool
	IsSet(name string) bool
	IsParameter(name string) bool
	Dump() string
}

// NewLeaf builds a payload-free leaf. Symbol kinds must go through
// NewSymbol, which carries the interned name the leaf would otherwise lack.
func NewLeaf(node Node) *Formula {
	if node.IsSymbol() {
		panic(fmlerr.New(fmlerr.NewKindMismatch{Op: "NewLeaf", Kind: node.String()}))
	}
	return &Formula{node: node}
}

// NewSymbol builds a symbol leaf. The name is interned and becomes the
// node's canonical rendered text.
func NewSymbol(node Node, name string) *Formula {
	if !node.IsSymbol() {
		panic(fmlerr.New(fmlerr.NewKindMismatch{Op: "NewSymbol", Kind: node.String()}))
	}
	if name == "" {
		panic(fmlerr.New(fmlerr.NewInvalidAccess{Op: "NewSymbol", Detail: "symbol name must not be empty"}))
	}
	return &Formula{node: node, data: []int32{internSymbol(name)}}
}

func NewNumber(v int32) *Formula {
	return &Formula{node: Number, data: []int32{v}}
}

// NewNumber64 stores a wide literal as two 32 bit words, low word first.
func NewNumber64(v int64) *Formula {
	return &Formula{node: Number, data: []int32{int32(v & 0xffffffff), int32(v >> 32)}}
}

func NewUnary(node Node, inner *Formula) *Formula {
	mustNonNil("NewUnary", inner)
	return &Formula{node: node, children: []*Formula{inner}}
}

func NewBinary(node Node, left *Formula, right *Formula) *Formula {
	mustNonNil("NewBinary", left, right)
	return &Formula{node: node, children: []*Formula{left, right}}
}

// NewTernary builds the binder shape: bound variables, guard predicate, body.
func NewTernary(node Node, vars *Formula, pred *Formula, expr *Formula) *Formula {
	mustNonNil("NewTernary", vars, pred, expr)
	return &Formula{node: node, children: []*Formula{vars, pred, expr}}
}

func NewNary(node Node, inners []*Formula) *Formula {
	mustNonNil("NewNary", inners...)
	return &Formula{node: node, children: slices.Clone(inners)}
}

func mustNonNil(op string, fs ...*Formula) {
	for _, f := range fs {
		if f == nil {
			panic(fmlerr.New(fmlerr.NewInvalidAccess{Op: op, Detail: "child formula must never be nil"}))
		}
	}
}

func (f *Formula) Node() Node {
	return f.node
}

func (f *Formula) Is(n Node) bool {
	return f.node == n
}

func (f *Formula) dataSize() int {
	return len(f.data)
}

// IntData returns the 32 bit payload of a literal leaf.
func (f *Formula) IntData() int32 {
	if f.dataSize() < 1 {
		panic(fmlerr.New(fmlerr.NewInvalidAccess{Op: "IntData", Detail: "node " + f.node.String() + " carries no payload"}))
	}
	return f.data[0]
}

// Int64Data reassembles a wide payload from its two words. A narrow payload
// is sign extended.
func (f *Formula) Int64Data() int64 {
	if f.dataSize() < 1 {
		panic(fmlerr.New(fmlerr.NewInvalidAccess{Op: "Int64Data", Detail: "node " + f.node.String() + " carries no payload"}))
	}
	if f.dataSize() == 1 {
		return int64(f.data[0])
	}
	return int64(uint32(f.data[0])) | int64(f.data[1])<<32
}

func (f *Formula) NumChildren() int {
	return len(f.children)
}

func (f *Formula) Child(i int) *Formula {
	if i >= f.NumChildren() {
		panic(fmlerr.New(fmlerr.NewInvalidAccess{
			Op:     "Child",
			Detail: fmt.Sprintf("child %d does not exist, node has %d children", i, f.NumChildren()),
		}))
	}
	return f.children[i]
}

// Inner returns the only child of a unary node.
func (f *Formula) Inner() *Formula {
	if f.NumChildren() != 1 {
		panic(fmlerr.New(fmlerr.NewArityMismatch{Op: "Inner", Want: 1, Got: f.NumChildren()}))
	}
	return f.children[0]
}

// Children returns a copy of the child slice; mutating it does not affect
// the formula.
func (f *Formula) Children() []*Formula {
	return slices.Clone(f.children)
}

func (f *Formula) Left() *Formula {
	if f.NumChildren() != 2 {
		panic(fmlerr.New(fmlerr.NewArityMismatch{Op: "Left", Want: 2, Got: f.NumChildren()}))
	}
	return f.children[0]
}

func (f *Formula) Right() *Formula {
	if f.NumChildren() != 2 {
		panic(fmlerr.New(fmlerr.NewArityMismatch{Op: "Right", Want: 2, Got: f.NumChildren()}))
	}
	return f.children[1]
}

// Domain is the left side of a relation type constructor.
func (f *Formula) Domain() *Formula {
	if !f.node.IsRelation() {
		panic(fmlerr.New(fmlerr.NewKindMismatch{Op: "Domain", Kind: f.node.String()}))
	}
	return f.Left()
}

// Range is the right side of a relation type constructor.
func (f *Formula) Range() *Formula {
	if !f.node.IsRelation() {
		panic(fmlerr.New(fmlerr.NewKindMismatch{Op: "Range", Kind: f.node.String()}))
	}
	return f.Right()
}

func (f *Formula) IsSymbol() bool     { return f.node.IsSymbol() }
func (f *Formula) IsPredicate() bool  { return f.node.IsPredicate() }
func (f *Formula) IsExpression() bool { return f.node.IsExpression() }
func (f *Formula) IsSet() bool        { return f.node.IsSet() }
func (f *Formula) IsVariable() bool   { return f.node.IsVariable() }
func (f *Formula) IsConstant() bool   { return f.node.IsConstant() }

func (f *Formula) IsNumber() bool {
	return f.node == Number
}

// Symbol returns the canonical identifier of a symbol leaf.
func (f *Formula) Symbol() string {
	if !f.IsSymbol() {
		panic(fmlerr.New(fmlerr.NewKindMismatch{Op: "Symbol", Kind: f.node.String()}))
	}
	return symbolName(f.data[0])
}

// Equals is structural equality. Symbols are atoms identified by name, so
// two symbol leaves with the same tag compare by their interned name index
// regardless of provenance. Worst case O(tree size), with early exit on the
// first mismatching child.
func (f *Formula) Equals(o *Formula) bool {
	if f == o {
		return true
	}
	if o == nil {
		return false
	}
	if f.node != o.node {
		return false
	}
	if f.node.IsSymbol() {
		return f.data[0] == o.data[0]
	}
	if f.NumChildren() != o.NumChildren() {
		return false
	}
	for i := range f.children {
		if !f.children[i].Equals(o.children[i]) {
			return false
		}
	}
	return true
}

// This canvas is the template for caching renders and internal types.
var rawUnicodeCanvas = func() *Canvas {
	c := NewCanvas()
	c.SetRenderTarget(Plain)
	c.UseRaw(true)
	return c
}()

// String renders the formula as plain raw unicode and caches the result.
// A race on first access is safe: recomputation is deterministic, so both
// writers install equal values.
func (f *Formula) String() string {
	if s := f.cache.Load(); s != nil {
		return *s
	}
	gen := NewRenderUnicode(rawUnicodeCanvas.Copy())
	Walk(gen, f)
	s := gen.Cnvs().Render()
	f.cache.Store(&s)
	return s
}

// ToString renders onto the given canvas, never touching the cache.
func (f *Formula) ToString(c *Canvas) string {
	var gen Renderer
	switch c.RenderTarget() {
	case Plain, Terminal:
		gen = NewRenderUnicode(c)
	case Tex:
		gen = NewRenderTeX(c)
	case Htmq:
		gen = NewRenderHtmq(c)
	default:
		panic(fmlerr.New(fmlerr.NewConfiguration{
			Detail: fmt.Sprintf("unknown render target %d when translating a formula into a string", c.RenderTarget()),
		}))
	}
	Walk(gen, f)
	return gen.Cnvs().Render()
}

// ToStringWithTypes renders plain raw unicode with each symbol's resolved
// type interleaved after its name. Never cached.
func (f *Formula) ToStringWithTypes(types TypeResolver) string {
	return f.ToStringWithTypesOn(rawUnicodeCanvas.Copy(), types)
}

func (f *Formula) ToStringWithTypesOn(c *Canvas, types TypeResolver) string {
	gen := NewRenderUnicode(c)
	gen.AddTypes(types)
	Walk(gen, f)
	return gen.Cnvs().Render()
}
