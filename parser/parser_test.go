package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evbt/fml/formula"
	"github.com/evbt/fml/parser"
	"github.com/evbt/fml/symbols"
)

func testTable(t *testing.T) *symbols.SymbolTable {
	t.Helper()
	st := symbols.NewSymbolTable("test")
	st.AddVariables("x", "y", "counter")
	st.AddConstants("k")
	st.AddSets("S", "T")
	return st
}

func testParse(t *testing.T, input string, st *symbols.SymbolTable) *formula.Formula {
	t.Helper()
	f, errs := parser.Parse(input, st)
	require.False(t, errs.HasError(), "input %q: %v", input, errs.Errors())
	require.NotNil(t, f)
	return f
}

func TestParseAddition(t *testing.T) {
	// numeric literals and + are grammar builtins, no symbols needed
	f := testParse(t, "3 + 4", symbols.NewSymbolTable("empty"))

	assert.True(t, f.Is(formula.Addition))
	require.Equal(t, 2, f.NumChildren())
	assert.True(t, f.Left().Is(formula.Number))
	assert.True(t, f.Right().Is(formula.Number))
	assert.Equal(t, int32(3), f.Left().IntData())
	assert.Equal(t, int32(4), f.Right().IntData())
}

func TestParsePrecedence(t *testing.T) {
	f := testParse(t, "1 + 2 * 3", symbols.NewSymbolTable("empty"))
	assert.True(t, f.Is(formula.Addition))
	assert.True(t, f.Right().Is(formula.Multiplication))

	g := testParse(t, "(1 + 2) * 3", symbols.NewSymbolTable("empty"))
	assert.True(t, g.Is(formula.Multiplication))
	assert.True(t, g.Left().Is(formula.Addition))
}

func TestParseClassifiesIdentifiers(t *testing.T) {
	st := testTable(t)

	assert.True(t, testParse(t, "x", st).Is(formula.VariableSymbol))
	assert.True(t, testParse(t, "k", st).Is(formula.ConstantSymbol))
	assert.True(t, testParse(t, "S", st).Is(formula.SetSymbol))

	p := symbols.NewVariable("out_result", "")
	p.MarkAsParameter()
	st.AddVariable(p)
	assert.True(t, testParse(t, "out_result", st).Is(formula.ParameterSymbol))
}

func TestParseQuantifierBindsNames(t *testing.T) {
	// z is not in the table, only the binder makes it known
	f := testParse(t, "!z . z > 0", symbols.NewSymbolTable("empty"))

	assert.True(t, f.Is(formula.Forall))
	vars := f.Left()
	assert.True(t, vars.Is(formula.ListOfVariables))
	require.Equal(t, 1, vars.NumChildren())
	assert.True(t, vars.Child(0).Is(formula.BoundSymbol))
	assert.Equal(t, "z", vars.Child(0).Symbol())
	assert.True(t, f.Right().Is(formula.GreaterThan))
}

func TestParseUnknownSymbolFails(t *testing.T) {
	f, errs := parser.Parse("z > 0", symbols.NewSymbolTable("empty"))
	assert.Nil(t, f)
	assert.True(t, errs.HasError())
}

func TestAsciiAndUnicodeSpellingsAgree(t *testing.T) {
	st := testTable(t)
	cases := [][2]string{
		{"x |-> y", "x ↦ y"},
		{"x : S", "x ∈ S"},
		{"x /= y", "x ≠ y"},
		{"S \\/ T", "S ∪ T"},
		{"S /\\ T", "S ∩ T"},
		{"x <= y & y <= k", "x ≤ y ∧ y ≤ k"},
		{"not x = y", "¬ x = y"},
		{"S --> T", "S → T"},
		{"#z . z : S", "∃z · z ∈ S"},
		{"POW(S)", "ℙ(S)"},
		{"1 .. 9", "1 ‥ 9"},
	}
	for _, c := range cases {
		a := testParse(t, c[0], st)
		b := testParse(t, c[1], st)
		assert.True(t, a.Equals(b), "%q and %q should build equal trees", c[0], c[1])
	}
}

func TestParseWideNumber(t *testing.T) {
	f := testParse(t, "5000000000", symbols.NewSymbolTable("empty"))
	assert.True(t, f.Is(formula.Number))
	assert.Equal(t, int64(5000000000), f.Int64Data())
}

func TestParseSetForms(t *testing.T) {
	st := testTable(t)

	empty := testParse(t, "{}", st)
	assert.True(t, empty.Is(formula.EmptySet))

	lit := testParse(t, "{1, 2, k}", st)
	assert.True(t, lit.Is(formula.SetLiteral))
	assert.Equal(t, 3, lit.NumChildren())

	compr := testParse(t, "{z . z : S | z}", st)
	assert.True(t, compr.Is(formula.SetComprehension))
	require.Equal(t, 3, compr.NumChildren())
	assert.True(t, compr.Child(0).Is(formula.ListOfVariables))
	assert.True(t, compr.Child(1).Is(formula.Membership))
	assert.True(t, compr.Child(2).Is(formula.BoundSymbol))
}

func TestParseLambda(t *testing.T) {
	f := testParse(t, "%z . z : INT | z + 1", symbols.NewSymbolTable("empty"))
	assert.True(t, f.Is(formula.Lambda))
	require.Equal(t, 3, f.NumChildren())
	assert.True(t, f.Child(2).Is(formula.Addition))
}

func TestParseApplication(t *testing.T) {
	st := testTable(t)
	f := testParse(t, "counter(3)", st)
	assert.True(t, f.Is(formula.Application))
	assert.True(t, f.Left().Is(formula.VariableSymbol))
	assert.True(t, f.Right().Is(formula.Number))
}

func TestRoundTripThroughDefaultRendering(t *testing.T) {
	st := testTable(t)
	inputs := []string{
		"3 + 4",
		"x + y * k",
		"(x + y) * k",
		"x - y - k",
		"x - (y - k)",
		"-x ^ 2",
		"x : S & y : T => x |-> y : S <-> T",
		"!z . z : S => z : T",
		"#z . z : S & z /= x",
		"{1, 2, 3}",
		"{z . z : S | z |-> z}",
		"%z . z : INT | z mod 2",
		"S \\/ T \\ {x}",
		"POW(S \\/ T)",
		"x : NAT & x < 10",
		"0 .. 9",
		"counter(3) = 4",
		"not (x = y or x < y)",
		"true or false",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			f := testParse(t, input, st)
			rendered := f.String()
			again := testParse(t, rendered, st)
			assert.True(t, f.Equals(again), "%q rendered as %q which reparsed differently", input, rendered)
			assert.Equal(t, rendered, again.String())
		})
	}
}

func TestLenientParseOfBadInput(t *testing.T) {
	st := testTable(t)
	for _, input := range []string{
		"(x + 1",
		"x +",
		"{1, 2",
		"!z z > 0",
		"3 @ 4",
		"",
	} {
		f, errs := parser.Parse(input, st)
		assert.Nil(t, f, "input %q", input)
		assert.True(t, errs.HasError(), "input %q", input)
	}
}

func TestStrictParsePanicsOnBadInput(t *testing.T) {
	st := testTable(t)
	assert.Panics(t, func() { parser.MustParse("(x + 1", st) })
	assert.NotPanics(t, func() {
		f := parser.MustParse("x + 1", st)
		assert.NotNil(t, f)
	})
}

func TestTrailingInputIsAnError(t *testing.T) {
	f, errs := parser.Parse("1 + 2 3", symbols.NewSymbolTable("empty"))
	assert.Nil(t, f)
	assert.True(t, errs.HasError())
}
