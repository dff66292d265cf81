// Package symbols holds the named entities of a model (variables,
// constants, carrier sets) and the symbol table that resolves identifiers
// for the parser and typed rendering.
package symbols

// Type is an opaque handle supplied by the surrounding type system.
// Handles compare by pointer identity.
type Type struct {
	name string
}

func NewType(name string) *Type {
	return &Type{name: name}
}

func (t *Type) Name() string {
	return t.name
}

func (t *Type) String() string {
	return t.name
}

// Typed is embedded by entities that may own a type. Entities without an
// own type may still resolve one through a refinement chain, see
// Variable.Type.
type Typed struct {
	typ *Type
}

func (t *Typed) SetType(ty *Type) {
	t.typ = ty
}

func (t *Typed) HasType() bool {
	return t.typ != nil
}
