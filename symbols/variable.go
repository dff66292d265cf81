package symbols

import (
	"strings"

	"github.com/evbt/fml/formula"
)

// outParameterPrefix marks parameters that carry results out of an event.
const outParameterPrefix = "out_"

// Variable is a named entity of one refinement layer. It is mutated only
// while the surrounding model is constructed and linked; afterwards it is
// read-only.
type Variable struct {
	Typed
	name        string
	comment     string
	isParameter bool
	isOut       bool
	definition  *formula.Formula
	refines     *Variable // the same variable in the refined machine, not owned
}

func NewVariable(name string, comment string) *Variable {
	return &Variable{name: name, comment: comment}
}

func (v *Variable) String() string {
	return v.name
}

func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) HasComment() bool {
	return len(v.comment) > 0
}

func (v *Variable) Comment() string {
	return v.comment
}

func (v *Variable) IsParameter() bool {
	return v.isParameter
}

func (v *Variable) IsOutParameter() bool {
	return v.isOut
}

// MarkAsParameter flags the variable as an event parameter. Out-parameters
// are recognized purely by the naming convention; names never change, so
// this is decided once.
func (v *Variable) MarkAsParameter() {
	v.isParameter = true
	if strings.HasPrefix(v.name, outParameterPrefix) {
		v.isOut = true
	}
}

func (v *Variable) SetDefinition(f *formula.Formula) {
	v.definition = f
}

func (v *Variable) Definition() *formula.Formula {
	return v.definition
}

func (v *Variable) HasDefinition() bool {
	return v.definition != nil
}

func (v *Variable) SetRefines(r *Variable) {
	v.refines = r
}

func (v *Variable) Refines() *Variable {
	return v.refines
}

// Type resolves the effective type: the own type if there is one, else the
// type of the variable this one refines, transitively. Returns nil when the
// whole chain is untyped.
//
// The refines relation must be acyclic across the model; the walk performs
// no cycle detection and will not terminate on a cyclic chain. Keeping the
// chain acyclic is the responsibility of whoever links the refinement
// layers.
func (v *Variable) Type() *Type {
	if v.typ != nil {
		return v.typ
	}
	if v.refines != nil {
		return v.refines.Type()
	}
	return nil
}
