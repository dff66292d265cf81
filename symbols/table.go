package symbols

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evbt/fml/formula"
)

var _ formula.SymbolContext = &SymbolTable{}

// SymbolTable resolves identifiers for the parser and for typed rendering.
// Tables nest: a lookup that misses locally continues through the parent
// tables, so a machine's table can extend the tables of the contexts it
// sees.
type SymbolTable struct {
	name      string
	parents   []*SymbolTable
	variables map[string]*Variable
	constants map[string]*Constant
	sets      map[string]*Constant // carrier sets, typed ℙ(themselves) by convention
}

func NewSymbolTable(name string, parents ...*SymbolTable) *SymbolTable {
	return &SymbolTable{
		name:      name,
		parents:   parents,
		variables: make(map[string]*Variable),
		constants: make(map[string]*Constant),
		sets:      make(map[string]*Constant),
	}
}

func (t *SymbolTable) Name() string {
	return t.name
}

func (t *SymbolTable) AddVariable(v *Variable) {
	t.variables[v.Name()] = v
}

// AddVariables creates and adds uncommented variables, one per name.
func (t *SymbolTable) AddVariables(names ...string) {
	for _, n := range names {
		t.AddVariable(NewVariable(n, ""))
	}
}

func (t *SymbolTable) AddConstant(c *Constant) {
	t.constants[c.Name()] = c
}

func (t *SymbolTable) AddConstants(names ...string) {
	for _, n := range names {
		t.AddConstant(NewConstant(n, ""))
	}
}

func (t *SymbolTable) AddSet(c *Constant) {
	t.sets[c.Name()] = c
}

func (t *SymbolTable) AddSets(names ...string) {
	for _, n := range names {
		t.AddSet(NewConstant(n, ""))
	}
}

func (t *SymbolTable) GetVariable(name string) *Variable {
	if v, ok := t.variables[name]; ok {
		return v
	}
	for _, p := range t.parents {
		if v := p.GetVariable(name); v != nil {
			return v
		}
	}
	return nil
}

func (t *SymbolTable) GetConstant(name string) *Constant {
	if c, ok := t.constants[name]; ok {
		return c
	}
	for _, p := range t.parents {
		if c := p.GetConstant(name); c != nil {
			return c
		}
	}
	return nil
}

func (t *SymbolTable) GetSet(name string) *Constant {
	if c, ok := t.sets[name]; ok {
		return c
	}
	for _, p := range t.parents {
		if c := p.GetSet(name); c != nil {
			return c
		}
	}
	return nil
}

func (t *SymbolTable) IsVariable(name string) bool {
	return t.GetVariable(name) != nil
}

func (t *SymbolTable) IsConstant(name string) bool {
	return t.GetConstant(name) != nil
}

func (t *SymbolTable) IsSet(name string) bool {
	return t.GetSet(name) != nil
}

func (t *SymbolTable) IsParameter(name string) bool {
	v := t.GetVariable(name)
	return v != nil && v.IsParameter()
}

// TypeOf resolves the display type of a known symbol, walking variable
// refinement chains.
func (t *SymbolTable) TypeOf(name string) (string, bool) {
	if v := t.GetVariable(name); v != nil {
		if ty := v.Type(); ty != nil {
			return ty.Name(), true
		}
		return "", false
	}
	if c := t.GetConstant(name); c != nil {
		if ty := c.Type(); ty != nil {
			return ty.Name(), true
		}
	}
	return "", false
}

// Dump lists the table contents in human-readable form. Used only for
// error reports.
func (t *SymbolTable) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "symbol table %q\n", t.name)
	dumpSection(&sb, "variables", sortedKeys(t.variables), func(n string) string {
		v := t.variables[n]
		tail := ""
		if v.IsParameter() {
			tail += " (parameter)"
		}
		if ty := v.Type(); ty != nil {
			tail += " : " + ty.Name()
		}
		return n + tail
	})
	dumpSection(&sb, "constants", sortedKeys(t.constants), func(n string) string {
		c := t.constants[n]
		if ty := c.Type(); ty != nil {
			return n + " : " + ty.Name()
		}
		return n
	})
	dumpSection(&sb, "sets", sortedKeys(t.sets), func(n string) string { return n })
	for _, p := range t.parents {
		sb.WriteString(p.Dump())
	}
	return sb.String()
}

func dumpSection(sb *strings.Builder, header string, names []string, show func(string) string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(sb, "  %s:\n", header)
	for _, n := range names {
		fmt.Fprintf(sb, "    %s\n", show(n))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
