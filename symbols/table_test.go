package symbols_test

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/evbt/fml/symbols"
)

func TestLookupWalksParents(t *testing.T) {
	ctx := symbols.NewSymbolTable("ctx")
	ctx.AddConstants("max")
	ctx.AddSets("COLOUR")

	machine := symbols.NewSymbolTable("machine", ctx)
	machine.AddVariables("current")

	assert.Assert(t, machine.IsVariable("current"))
	assert.Assert(t, machine.IsConstant("max"))
	assert.Assert(t, machine.IsSet("COLOUR"))
	assert.Assert(t, !machine.IsVariable("max"))
	assert.Assert(t, !machine.IsConstant("unknown"))

	assert.Assert(t, machine.GetConstant("max") == ctx.GetConstant("max"))
}

func TestIsParameter(t *testing.T) {
	st := symbols.NewSymbolTable("st")
	p := symbols.NewVariable("amount", "")
	p.MarkAsParameter()
	st.AddVariable(p)
	st.AddVariables("x")

	assert.Assert(t, st.IsParameter("amount"))
	assert.Assert(t, !st.IsParameter("x"))
	assert.Assert(t, !st.IsParameter("unknown"))
}

func TestTypeOfFollowsRefinement(t *testing.T) {
	abstract := symbols.NewSymbolTable("m0")
	b := symbols.NewVariable("speed", "")
	b.SetType(symbols.NewType("ℤ"))
	abstract.AddVariable(b)

	refined := symbols.NewSymbolTable("m1", abstract)
	a := symbols.NewVariable("speed", "")
	a.SetRefines(b)
	refined.AddVariable(a)

	got, ok := refined.TypeOf("speed")
	assert.Assert(t, ok)
	assert.Equal(t, "ℤ", got)

	_, ok = refined.TypeOf("unknown")
	assert.Assert(t, !ok)

	refined.AddVariables("untyped")
	_, ok = refined.TypeOf("untyped")
	assert.Assert(t, !ok)
}

func TestDumpListsSymbols(t *testing.T) {
	ctx := symbols.NewSymbolTable("ctx")
	ctx.AddConstants("max")

	st := symbols.NewSymbolTable("machine", ctx)
	v := symbols.NewVariable("speed", "")
	v.SetType(symbols.NewType("ℤ"))
	st.AddVariable(v)
	p := symbols.NewVariable("amount", "")
	p.MarkAsParameter()
	st.AddVariable(p)

	dump := st.Dump()
	for _, want := range []string{"machine", "speed", "ℤ", "amount", "(parameter)", "ctx", "max"} {
		assert.Assert(t, strings.Contains(dump, want), "dump is missing %q:\n%s", want, dump)
	}
}
