package formula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evbt/fml/formula"
)

func num(v int32) *formula.Formula {
	return formula.NewNumber(v)
}

func variable(name string) *formula.Formula {
	return formula.NewSymbol(formula.VariableSymbol, name)
}

func TestEqualsIsReflexive(t *testing.T) {
	trees := []*formula.Formula{
		num(3),
		variable("x"),
		formula.NewBinary(formula.Addition, num(3), num(4)),
		formula.NewBinary(formula.Forall,
			formula.NewNary(formula.ListOfVariables, []*formula.Formula{formula.NewSymbol(formula.BoundSymbol, "x")}),
			formula.NewBinary(formula.GreaterThan, formula.NewSymbol(formula.BoundSymbol, "x"), num(0))),
	}
	for _, f := range trees {
		assert.True(t, f.Equals(f))
	}
}

func TestEqualsDiscriminatesTags(t *testing.T) {
	a := formula.NewBinary(formula.Addition, num(1), num(2))
	b := formula.NewBinary(formula.Subtraction, num(1), num(2))
	assert.False(t, a.Equals(b))
	assert.False(t, b.Equals(a))
}

func TestSymbolsAreEqualByName(t *testing.T) {
	// two independently constructed occurrences of the same name
	a := variable("counter")
	b := variable("counter")
	assert.True(t, a.Equals(b))

	c := variable("other")
	assert.False(t, a.Equals(c))

	// same name but a different symbol kind stays distinct
	d := formula.NewSymbol(formula.ConstantSymbol, "counter")
	assert.False(t, a.Equals(d))
}

func TestEqualsRecursesInOrder(t *testing.T) {
	a := formula.NewBinary(formula.Addition, num(1), num(2))
	b := formula.NewBinary(formula.Addition, num(2), num(1))
	assert.False(t, a.Equals(b))

	c := formula.NewNary(formula.SetLiteral, []*formula.Formula{num(1), num(2)})
	d := formula.NewNary(formula.SetLiteral, []*formula.Formula{num(1), num(2), num(3)})
	assert.False(t, c.Equals(d))
}

func TestDomainAndRangeDelegateToChildren(t *testing.T) {
	dom := variable("S")
	ran := variable("T")
	for _, n := range []formula.Node{formula.Relation, formula.TotalFunction, formula.PartialFunction, formula.Bijection} {
		r := formula.NewBinary(n, dom, ran)
		assert.Same(t, r.Left(), r.Domain())
		assert.Same(t, r.Right(), r.Range())
		assert.Same(t, dom, r.Domain())
		assert.Same(t, ran, r.Range())
	}
}

func TestDomainOnNonRelationPanics(t *testing.T) {
	f := formula.NewBinary(formula.Addition, num(1), num(2))
	assert.Panics(t, func() { f.Domain() })
	assert.Panics(t, func() { f.Range() })
}

func TestChildOutOfRangePanics(t *testing.T) {
	f := formula.NewBinary(formula.And, variable("p"), variable("q"))
	assert.NotPanics(t, func() { f.Child(1) })
	assert.Panics(t, func() { f.Child(2) })
	assert.Panics(t, func() { num(1).Child(0) })
}

func TestFixedArityAccessorsPanicOnWrongShape(t *testing.T) {
	unary := formula.NewUnary(formula.Not, variable("p"))
	binary := formula.NewBinary(formula.And, variable("p"), variable("q"))

	assert.NotPanics(t, func() { unary.Inner() })
	assert.Panics(t, func() { binary.Inner() })
	assert.Panics(t, func() { unary.Left() })
	assert.Panics(t, func() { unary.Right() })
}

func TestPayloadAccess(t *testing.T) {
	assert.Equal(t, int32(42), num(42).IntData())
	assert.Equal(t, int64(42), num(42).Int64Data())
	assert.Equal(t, int64(-7), num(-7).Int64Data())

	wide := formula.NewNumber64(1 << 40)
	assert.Equal(t, int64(1<<40), wide.Int64Data())
	negWide := formula.NewNumber64(-(1 << 40))
	assert.Equal(t, int64(-(1 << 40)), negWide.Int64Data())

	assert.Panics(t, func() { variable("x").IntData() })
	assert.Panics(t, func() { formula.NewLeaf(formula.BTrue).Int64Data() })
}

func TestSymbolAccessor(t *testing.T) {
	assert.Equal(t, "x", variable("x").Symbol())
	assert.Panics(t, func() { num(1).Symbol() })
}

func TestClassificationFollowsTheTag(t *testing.T) {
	v := variable("x")
	assert.True(t, v.IsSymbol())
	assert.True(t, v.IsVariable())
	assert.True(t, v.IsExpression())
	assert.False(t, v.IsPredicate())
	assert.False(t, v.IsNumber())

	c := formula.NewSymbol(formula.ConstantSymbol, "k")
	assert.True(t, c.IsConstant())
	assert.False(t, c.IsVariable())

	n := num(12)
	assert.True(t, n.IsNumber())
	assert.True(t, n.IsExpression())
	assert.False(t, n.IsSymbol())

	and := formula.NewBinary(formula.And, variable("p"), variable("q"))
	assert.True(t, and.IsPredicate())
	assert.False(t, and.IsExpression())

	union := formula.NewBinary(formula.Union, variable("S"), variable("T"))
	assert.True(t, union.IsSet())
	assert.False(t, union.IsPredicate())

	rel := formula.NewBinary(formula.TotalFunction, variable("S"), variable("T"))
	assert.True(t, rel.Node().IsRelation())
	assert.False(t, and.Node().IsRelation())
}

func TestChildrenReturnsACopy(t *testing.T) {
	f := formula.NewBinary(formula.And, variable("p"), variable("q"))
	kids := f.Children()
	assert.Len(t, kids, 2)
	kids[0] = nil
	assert.NotNil(t, f.Child(0))
}

func TestNilChildPanicsAtConstruction(t *testing.T) {
	assert.Panics(t, func() { formula.NewUnary(formula.Not, nil) })
	assert.Panics(t, func() { formula.NewBinary(formula.And, variable("p"), nil) })
	assert.Panics(t, func() { formula.NewSymbol(formula.Number, "x") })
}

func TestLeafOfSymbolKindPanicsAtConstruction(t *testing.T) {
	assert.Panics(t, func() { formula.NewLeaf(formula.VariableSymbol) })
	assert.Panics(t, func() { formula.NewLeaf(formula.BoundSymbol) })
	assert.NotPanics(t, func() { formula.NewLeaf(formula.EmptySet) })
}

func TestFreeIdentifiers(t *testing.T) {
	// ∀x·x>y ∧ x>y: y free twice, x bound
	x := formula.NewSymbol(formula.BoundSymbol, "x")
	y := variable("y")
	gt := formula.NewBinary(formula.GreaterThan, x, y)
	body := formula.NewBinary(formula.And, gt, gt)
	all := formula.NewBinary(formula.Forall,
		formula.NewNary(formula.ListOfVariables, []*formula.Formula{x}), body)

	assert.Equal(t, []string{"y"}, formula.FreeIdentifiers(all))

	set := formula.FreeIdentifierSet(all)
	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Has("y"))
}
